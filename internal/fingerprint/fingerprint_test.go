package fingerprint

import (
	"testing"

	. "github.com/cricklet/dobutsugo/internal/game"
	. "github.com/cricklet/dobutsugo/internal/helpers"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
)

func pp(t any) string {
	return spew.Sdump(t)
}

func TestInitialFingerprint(t *testing.T) {
	f := Compress(InitialState())
	assert.Equal(t, Fingerprint(185228352541), f)

	assert.Equal(t, uint64(13), f.field(PassiveLionOffset, lionBits))
	assert.Equal(t, uint64(1), f.field(ActiveLionOffset, lionBits))
	assert.Equal(t, uint64(28), f.field(GiraffeHiOffset, pieceBits))
	assert.Equal(t, uint64(2), f.field(GiraffeLoOffset, pieceBits))
	assert.Equal(t, uint64(30), f.field(ElephantHiOffset, pieceBits))
	assert.Equal(t, uint64(0), f.field(ElephantLoOffset, pieceBits))
	assert.Equal(t, uint64(50), f.field(ChickHiOffset, chickBits))
	assert.Equal(t, uint64(10), f.field(ChickLoOffset, chickBits))
}

func TestHandSentinels(t *testing.T) {
	g := Apply(InitialState(), Move(4, 7))
	f := Compress(g)

	// sky to move: the forest chick in hand belongs to the passive side
	assert.Equal(t, uint64(0b111110), f.field(ChickHiOffset, chickBits))
	assert.Equal(t, uint64(0b111110), Compress(g.Inverted()).field(ChickHiOffset, chickBits))

	g = Apply(Apply(g, Move(9, 6)), Drop(Chick, 3))
	assert.Equal(t, Forest, g.Enemy())
	assert.Equal(t, Compress(g), Compress(g.Inverted()))
}

func TestSkyIsCanonicalized(t *testing.T) {
	g := InitialState()
	mirrored := g.Inverted()

	assert.Equal(t, Compress(g), Compress(mirrored))
}

func TestDecompressRejectsBadInput(t *testing.T) {
	_, err := Decompress(MaxFingerprint + 1)
	assert.True(t, err.HasError())

	// column 3 does not exist
	_, err = Decompress(Compress(InitialState())&^0b1111 | 0b0011)
	assert.True(t, err.HasError())

	// both lions on a1
	_, err = Decompress(Compress(InitialState()) &^ 0b11111111)
	assert.True(t, err.HasError())
}

func walk(t *testing.T, g GameState, n int, seen map[Fingerprint]string) {
	f := Compress(g)
	assert.LessOrEqual(t, f, MaxFingerprint)

	canonical := g
	if g.Player == Sky {
		canonical = g.Inverted()
	}
	positionString := PositionString(canonical)
	if previous, ok := seen[f]; ok {
		assert.Equal(t, previous, positionString, "collision for %v", f)
	}
	seen[f] = positionString

	decompressed, err := Decompress(f)
	assert.True(t, IsNil(err), err.Error())
	assert.Equal(t, canonical, decompressed, pp(g))

	if n == 0 {
		return
	}
	for _, a := range LegalActions(g) {
		walk(t, Apply(g, a), n-1, seen)
	}
}

func TestRoundTripOverReachablePositions(t *testing.T) {
	seen := map[Fingerprint]string{}
	walk(t, InitialState(), 5, seen)
	assert.Greater(t, len(seen), 100)
}
