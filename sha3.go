// Package sha3 implements the Keccak-f[1600] permutation and the sponge
// construction built on it, providing the SHA3-224, SHA3-256, SHA3-384 and
// SHA3-512 hash functions of FIPS 202 and the legacy Keccak-256/512 hashes.
//
// The permutation is a portable scalar implementation. The state is kept as
// 200 bytes while absorbing and squeezing and converted to little-endian
// lanes around each permutation, so no unsafe reinterpretation is needed.
//
// Each hash function is a row of the Variant table. Sponge implements
// hash.Hash, io.Writer and io.Reader, and the SumXXX helpers compute a
// digest in one shot without heap allocations.
package sha3

// NewSHA3_224 returns a new SHA3-224 sponge.
func NewSHA3_224() *Sponge { return New(SHA3_224) }

// NewSHA3_256 returns a new SHA3-256 sponge.
func NewSHA3_256() *Sponge { return New(SHA3_256) }

// NewSHA3_384 returns a new SHA3-384 sponge.
func NewSHA3_384() *Sponge { return New(SHA3_384) }

// NewSHA3_512 returns a new SHA3-512 sponge.
func NewSHA3_512() *Sponge { return New(SHA3_512) }

// NewKeccak256 returns a new legacy Keccak-256 sponge.
func NewKeccak256() *Sponge { return New(Keccak256) }

// NewKeccak512 returns a new legacy Keccak-512 sponge.
func NewKeccak512() *Sponge { return New(Keccak512) }

// Sum224 computes the SHA3-224 digest of data.
func Sum224(data []byte) (digest [28]byte) {
	sum(&SHA3_224, data, digest[:])
	return digest
}

// Sum256 computes the SHA3-256 digest of data. Zero heap allocations.
func Sum256(data []byte) (digest [32]byte) {
	sum(&SHA3_256, data, digest[:])
	return digest
}

// Sum384 computes the SHA3-384 digest of data.
func Sum384(data []byte) (digest [48]byte) {
	sum(&SHA3_384, data, digest[:])
	return digest
}

// Sum512 computes the SHA3-512 digest of data.
func Sum512(data []byte) (digest [64]byte) {
	sum(&SHA3_512, data, digest[:])
	return digest
}

// SumKeccak256 computes the legacy Keccak-256 digest of data.
func SumKeccak256(data []byte) (digest [32]byte) {
	sum(&Keccak256, data, digest[:])
	return digest
}

// SumKeccak512 computes the legacy Keccak-512 digest of data.
func SumKeccak512(data []byte) (digest [64]byte) {
	sum(&Keccak512, data, digest[:])
	return digest
}

// Sum computes the digest of data for any variant.
func Sum(v Variant, data []byte) []byte {
	if !v.valid() {
		panic("sha3: invalid variant")
	}
	digest := make([]byte, v.size)
	sum(&v, data, digest)
	return digest
}

// sum hashes data on a stack-allocated state. Every variant's digest fits in
// one rate-sized block, so no squeeze permutation is needed.
func sum(v *Variant, data []byte, digest []byte) {
	var state [stateSize]byte

	// Absorb full blocks.
	for len(data) >= v.rate {
		xorIn(&state, data[:v.rate])
		keccakF1600(&state)
		data = data[v.rate:]
	}

	// Absorb remaining bytes + padding.
	xorIn(&state, data)
	state[len(data)] ^= v.dsbyte
	// pad10*1 end bit.
	state[v.rate-1] ^= 0x80
	keccakF1600(&state)

	copy(digest, state[:v.size])
}
