package tablebase

import (
	. "github.com/cricklet/dobutsugo/internal/fingerprint"
	. "github.com/cricklet/dobutsugo/internal/helpers"
)

const RecordWidth = 8

// Record is one shard entry: the solved score of the position with the given
// fingerprint. A nonzero RequiredChildReportCount marks a score the solver
// never finalized.
type Record struct {
	Fingerprint              Fingerprint
	Score                    Score
	RequiredChildReportCount uint8
}

func (r Record) IsProvisional() bool {
	return r.RequiredChildReportCount != 0
}

// EffectiveScore treats provisional scores as draws.
func (r Record) EffectiveScore() Score {
	if r.IsProvisional() {
		return Draw
	}
	return r.Score
}

// DecodeRecord reads an 8 byte record: a 40 bit little endian fingerprint, a
// 9 bit two's complement score (byte 5 low, bit 0 of byte 6 high), the report
// count in the upper 7 bits of byte 6 and one byte of padding.
func DecodeRecord(b []byte) Record {
	raw := int(b[5]) | int(b[6]&1)<<8
	if raw&0x100 != 0 {
		raw -= 0x200
	}
	return Record{
		Fingerprint:              decodeUint40(b[0:5]),
		Score:                    Score(raw),
		RequiredChildReportCount: b[6] >> 1,
	}
}

func EncodeRecord(r Record) []byte {
	result := make([]byte, RecordWidth)
	encodeUint40(r.Fingerprint, result[0:5])
	raw := uint16(r.Score) & 0x1ff
	result[5] = byte(raw)
	result[6] = byte(raw>>8) | r.RequiredChildReportCount<<1
	return result
}

func checkShard(shard []byte) Error {
	if len(shard)%RecordWidth != 0 {
		return Errorf("%w: length %v is not a multiple of %v", ErrMalformedShard, len(shard), RecordWidth)
	}
	return NilError
}

func DecodeRecords(shard []byte) ([]Record, Error) {
	err := checkShard(shard)
	if !IsNil(err) {
		return nil, err
	}
	result := make([]Record, 0, len(shard)/RecordWidth)
	for i := 0; i < len(shard); i += RecordWidth {
		result = append(result, DecodeRecord(shard[i:i+RecordWidth]))
	}
	return result, NilError
}

func EncodeRecords(records []Record) []byte {
	result := make([]byte, 0, len(records)*RecordWidth)
	for _, r := range records {
		result = append(result, EncodeRecord(r)...)
	}
	return result
}
