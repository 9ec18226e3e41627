package sha3

import (
	"encoding/binary"
	"math/bits"
)

// rc holds the round constants for the ι step.
var rc = [24]uint64{
	0x0000000000000001,
	0x0000000000008082,
	0x800000000000808A,
	0x8000000080008000,
	0x000000000000808B,
	0x0000000080000001,
	0x8000000080008081,
	0x8000000000008009,
	0x000000000000008A,
	0x0000000000000088,
	0x0000000080008009,
	0x000000008000000A,
	0x000000008000808B,
	0x800000000000008B,
	0x8000000000008089,
	0x8000000000008003,
	0x8000000000008002,
	0x8000000000000080,
	0x000000000000800A,
	0x800000008000000A,
	0x8000000080008081,
	0x8000000000008080,
	0x0000000080000001,
	0x8000000080008008,
}

// rotc holds the ρ rotation offset of lane (x, y) at index x+5*y.
var rotc = [25]int{
	0, 1, 62, 28, 27,
	36, 44, 6, 55, 20,
	3, 10, 43, 25, 39,
	41, 45, 15, 21, 8,
	18, 2, 61, 56, 14,
}

// Rounds is the number of rounds of Keccak-f[1600].
const Rounds = len(rc)

// State is the 1600-bit Keccak-f state as a 5x5 matrix of 64-bit lanes.
// Lane (x, y) is stored at index x+5*y, which is also the order of the
// lanes in the little-endian byte view returned by Bytes.
type State [25]uint64

// Lane returns lane (x, y).
func (a *State) Lane(x, y int) uint64 {
	return a[x+5*y]
}

// Permute applies all rounds of Keccak-f[1600] to a in place.
func (a *State) Permute() {
	for _, k := range rc {
		a.round(k)
	}
}

// Round applies round i (0 <= i < Rounds) of Keccak-f[1600] to a in place.
func (a *State) Round(i int) {
	a.round(rc[i])
}

func (a *State) round(k uint64) {
	var c, d [5]uint64

	// θ
	for x := 0; x < 5; x++ {
		c[x] = a[x] ^ a[x+5] ^ a[x+10] ^ a[x+15] ^ a[x+20]
	}
	for x := 0; x < 5; x++ {
		d[x] = c[(x+4)%5] ^ bits.RotateLeft64(c[(x+1)%5], 1)
	}
	for i := range a {
		a[i] ^= d[i%5]
	}

	// ρ and π: lane (x, y) moves to (y, 2x+3y).
	var b State
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			i := x + 5*y
			b[y+5*((2*x+3*y)%5)] = bits.RotateLeft64(a[i], rotc[i])
		}
	}

	// χ
	for y := 0; y < 25; y += 5 {
		for x := 0; x < 5; x++ {
			a[y+x] = b[y+x] ^ (^b[y+(x+1)%5] & b[y+(x+2)%5])
		}
	}

	// ι
	a[0] ^= k
}

// Bytes returns the 200-byte little-endian view of a.
func (a *State) Bytes() (b [200]byte) {
	a.store(&b)
	return b
}

// StateFromBytes interprets b as the byte view of a state.
func StateFromBytes(b *[200]byte) (a State) {
	a.load(b)
	return a
}

func (a *State) load(b *[200]byte) {
	for i := range a {
		a[i] = binary.LittleEndian.Uint64(b[8*i:])
	}
}

func (a *State) store(b *[200]byte) {
	for i, lane := range a {
		binary.LittleEndian.PutUint64(b[8*i:], lane)
	}
}

// keccakF1600 permutes the byte view of a state.
func keccakF1600(b *[200]byte) {
	var a State
	a.load(b)
	a.Permute()
	a.store(b)
}

// xorIn XORs data into the beginning of state, eight bytes at a time where possible.
func xorIn(state *[200]byte, data []byte) {
	n := len(data) >> 3
	for i := 0; i < n; i++ {
		j := i << 3
		binary.LittleEndian.PutUint64(state[j:], binary.LittleEndian.Uint64(state[j:])^binary.LittleEndian.Uint64(data[j:]))
	}
	// Handle remaining bytes (< 8).
	for i := n << 3; i < len(data); i++ {
		state[i] ^= data[i]
	}
}
