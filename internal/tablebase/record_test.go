package tablebase

import (
	"errors"
	"testing"

	. "github.com/cricklet/dobutsugo/internal/fingerprint"
	. "github.com/cricklet/dobutsugo/internal/helpers"
	"github.com/stretchr/testify/assert"
)

func TestDecodeRecord(t *testing.T) {
	r := DecodeRecord([]byte{0x05, 0x04, 0x03, 0x02, 0x01, 0x37, 0x01, 0x00})
	assert.Equal(t, Fingerprint(0x0102030405), r.Fingerprint)
	assert.Equal(t, Score(-201), r.Score)
	assert.Equal(t, uint8(0), r.RequiredChildReportCount)
	assert.Equal(t, Score(-201), r.EffectiveScore())

	r = DecodeRecord([]byte{0, 0, 0, 0, 0, 0xc8, 0x00, 0xff})
	assert.Equal(t, Score(200), r.Score)

	r = DecodeRecord([]byte{0, 0, 0, 0, 0, 0xff, 0x01, 0x00})
	assert.Equal(t, Score(-1), r.Score)
}

func TestProvisionalRecordsAreDraws(t *testing.T) {
	r := DecodeRecord([]byte{0, 0, 0, 0, 0, 0x37, 0x05, 0x00})
	assert.Equal(t, Score(-201), r.Score)
	assert.Equal(t, uint8(2), r.RequiredChildReportCount)
	assert.True(t, r.IsProvisional())
	assert.Equal(t, Draw, r.EffectiveScore())
}

func TestEncodeRecord(t *testing.T) {
	for _, r := range []Record{
		{Fingerprint: 185228352541, Score: -201},
		{Fingerprint: MaxFingerprint, Score: 200, RequiredChildReportCount: 127},
		{Fingerprint: 0, Score: 0, RequiredChildReportCount: 1},
		{Fingerprint: 12345, Score: -1},
	} {
		assert.Equal(t, r, DecodeRecord(EncodeRecord(r)))
	}
}

func TestDecodeRecords(t *testing.T) {
	records := []Record{
		{Fingerprint: 1, Score: 5},
		{Fingerprint: 2, Score: -7, RequiredChildReportCount: 3},
	}
	decoded, err := DecodeRecords(EncodeRecords(records))
	assert.True(t, IsNil(err))
	assert.Equal(t, records, decoded)

	_, err = DecodeRecords(make([]byte, 12))
	assert.True(t, errors.Is(err, ErrMalformedShard))
}

func TestScoreString(t *testing.T) {
	assert.Equal(t, "win in 1", Score(200).String())
	assert.Equal(t, "win in 200", Score(1).String())
	assert.Equal(t, "loss in 1", Score(-200).String())
	assert.Equal(t, "loss in 0", WinInOne.String())
	assert.Equal(t, "draw", Draw.String())
	assert.True(t, Score(3).IsWin())
	assert.True(t, Score(-3).IsLoss())
}
