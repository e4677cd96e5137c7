package fingerprint

import (
	"fmt"

	. "github.com/cricklet/dobutsugo/internal/game"
	. "github.com/cricklet/dobutsugo/internal/helpers"
)

// Fingerprint packs a position, seen from the side to move, into 40 bits.
// It is the key of every tablebase record.
type Fingerprint uint64

const NumBits = 40

const MaxFingerprint Fingerprint = 1<<NumBits - 1

// Bit offsets of each field. Two pieces of the same species are written as a
// pair: the larger code sits at the lower offset.
const (
	PassiveLionOffset = 0
	ActiveLionOffset  = 4
	GiraffeHiOffset   = 8
	GiraffeLoOffset   = 13
	ElephantHiOffset  = 18
	ElephantLoOffset  = 23
	ChickHiOffset     = 28
	ChickLoOffset     = 34
)

const (
	lionBits  = 4
	pieceBits = 5
	chickBits = 6
)

// HandCoords replaces the square coordinates of a piece held in hand.
const HandCoords = 0b1111

func (f Fingerprint) String() string {
	return fmt.Sprintf("%010x", uint64(f))
}

func coordsForIndex(index int) uint64 {
	return uint64(RowOf(index)<<2 | ColumnOf(index))
}

func indexForCoords(coords uint64) (int, bool) {
	row := int(coords >> 2)
	column := int(coords & 0b11)
	if !IsOnBoard(row, column) {
		return 0, false
	}
	return IndexOf(row, column), true
}

func pieceCode(passive bool, coords uint64) uint64 {
	code := coords
	if passive {
		code |= 1 << 4
	}
	return code
}

func chickCode(passive bool, coords uint64, promoted bool) uint64 {
	code := coords << 1
	if passive {
		code |= 1 << 5
	}
	if promoted {
		code |= 1
	}
	return code
}

type pair struct {
	codes [2]uint64
	n     int
}

func (p *pair) add(code uint64) {
	if p.n < 2 {
		p.codes[p.n] = code
	}
	p.n++
}

func (p *pair) hiLo() (uint64, uint64) {
	if p.codes[0] >= p.codes[1] {
		return p.codes[0], p.codes[1]
	}
	return p.codes[1], p.codes[0]
}

// Compress returns the fingerprint of g. When Sky is to move the position is
// inverted first, so a fingerprint always describes a Forest-to-move board.
func Compress(g GameState) Fingerprint {
	if g.Player == Sky {
		g = g.Inverted()
	}

	activeLion := uint64(HandCoords)
	passiveLion := uint64(HandCoords)
	chicks := pair{}
	elephants := pair{}
	giraffes := pair{}

	for i, p := range g.Board {
		if p == XX {
			continue
		}
		passive := p.Side() != g.Player
		coords := coordsForIndex(i)
		switch p.Species() {
		case Lion:
			if passive {
				passiveLion = coords
			} else {
				activeLion = coords
			}
		case Chick:
			chicks.add(chickCode(passive, coords, p.IsPromoted()))
		case Elephant:
			elephants.add(pieceCode(passive, coords))
		case Giraffe:
			giraffes.add(pieceCode(passive, coords))
		}
	}

	for _, side := range AllSides {
		passive := side != g.Player
		hand := g.Hands[side]
		for n := uint8(0); n < hand[Chick]; n++ {
			chicks.add(chickCode(passive, HandCoords, false))
		}
		for n := uint8(0); n < hand[Elephant]; n++ {
			elephants.add(pieceCode(passive, HandCoords))
		}
		for n := uint8(0); n < hand[Giraffe]; n++ {
			giraffes.add(pieceCode(passive, HandCoords))
		}
	}

	giraffeHi, giraffeLo := giraffes.hiLo()
	elephantHi, elephantLo := elephants.hiLo()
	chickHi, chickLo := chicks.hiLo()

	return Fingerprint(passiveLion<<PassiveLionOffset |
		activeLion<<ActiveLionOffset |
		giraffeHi<<GiraffeHiOffset |
		giraffeLo<<GiraffeLoOffset |
		elephantHi<<ElephantHiOffset |
		elephantLo<<ElephantLoOffset |
		chickHi<<ChickHiOffset |
		chickLo<<ChickLoOffset)
}

func (f Fingerprint) field(offset int, bits int) uint64 {
	return (uint64(f) >> offset) & (1<<bits - 1)
}

// Decompress rebuilds the Forest-to-move position a fingerprint describes.
func Decompress(f Fingerprint) (GameState, Error) {
	if f > MaxFingerprint {
		return GameState{}, Errorf("fingerprint %v is wider than %v bits", f, NumBits)
	}

	g := GameState{Player: Forest}
	place := func(side Side, species Species, promoted bool, coords uint64) Error {
		if coords == HandCoords {
			holder := side
			if species == Lion {
				// a captured lion is held by its captor
				holder = side.Other()
			}
			g.Hands[holder][species]++
			return NilError
		}
		index, ok := indexForCoords(coords)
		if !ok {
			return Errorf("fingerprint %v has invalid coords %04b for %v", f, coords, species)
		}
		if g.Board[index] != XX {
			return Errorf("fingerprint %v places two pieces on %v", f, StringFromBoardIndex(index))
		}
		g.Board[index] = PieceFor(side, species, promoted)
		return NilError
	}

	sideFor := func(passive bool) Side {
		if passive {
			return Sky
		}
		return Forest
	}

	errs := []Error{
		place(Sky, Lion, false, f.field(PassiveLionOffset, lionBits)),
		place(Forest, Lion, false, f.field(ActiveLionOffset, lionBits)),
	}

	for _, offset := range []int{GiraffeHiOffset, GiraffeLoOffset} {
		code := f.field(offset, pieceBits)
		errs = append(errs, place(sideFor(code>>4 == 1), Giraffe, false, code&0b1111))
	}
	for _, offset := range []int{ElephantHiOffset, ElephantLoOffset} {
		code := f.field(offset, pieceBits)
		errs = append(errs, place(sideFor(code>>4 == 1), Elephant, false, code&0b1111))
	}
	for _, offset := range []int{ChickHiOffset, ChickLoOffset} {
		code := f.field(offset, chickBits)
		promoted := code&1 == 1
		coords := (code >> 1) & 0b1111
		if promoted && coords == HandCoords {
			errs = append(errs, Errorf("fingerprint %v holds a promoted chick in hand", f))
			continue
		}
		errs = append(errs, place(sideFor(code>>5 == 1), Chick, promoted, coords))
	}

	err := Join(errs...)
	if !IsNil(err) {
		return GameState{}, err
	}
	return g, NilError
}
