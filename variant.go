package sha3

import (
	"strings"

	"github.com/pkg/errors"
)

const (
	// dsSHA3 is the SHA-3 domain separation bits "01" followed by the first
	// padding bit, in little-endian bit order: 00000110b.
	dsSHA3 = byte(0x06)

	// dsKeccak is the original Keccak submission padding with no domain bits.
	dsKeccak = byte(0x01)

	// stateSize is the Keccak-f[1600] width in bytes.
	stateSize = 200

	// maxRate is the largest rate in the variant table (SHA3-224).
	maxRate = 144
)

// ErrUnknownVariant is returned by LookupVariant for names that match no table row.
var ErrUnknownVariant = errors.New("unknown hash variant")

// Variant is the immutable parameter set of one fixed-output sponge hash.
// The capacity is derived from the rate and is never stored.
type Variant struct {
	name   string
	rate   int  // bytes of state XORed with each input block
	size   int  // digest length in bytes
	dsbyte byte // domain separator, including the first padding bit
}

// The FIPS 202 fixed-output hashes. Each has capacity twice its digest size.
var (
	SHA3_224 = Variant{name: "SHA3-224", rate: 144, size: 28, dsbyte: dsSHA3}
	SHA3_256 = Variant{name: "SHA3-256", rate: 136, size: 32, dsbyte: dsSHA3}
	SHA3_384 = Variant{name: "SHA3-384", rate: 104, size: 48, dsbyte: dsSHA3}
	SHA3_512 = Variant{name: "SHA3-512", rate: 72, size: 64, dsbyte: dsSHA3}
)

var (
	// Keccak256 and Keccak512 are the pre-standard Keccak hashes, still used by
	// Ethereum. They differ from SHA3-256 and SHA3-512 only in the domain byte.
	Keccak256 = Variant{name: "Keccak-256", rate: 136, size: 32, dsbyte: dsKeccak}
	Keccak512 = Variant{name: "Keccak-512", rate: 72, size: 64, dsbyte: dsKeccak}
)

var variants = []Variant{SHA3_224, SHA3_256, SHA3_384, SHA3_512, Keccak256, Keccak512}

// Variants returns every row of the variant table.
func Variants() []Variant {
	out := make([]Variant, len(variants))
	copy(out, variants)
	return out
}

// LookupVariant resolves a variant by name. Matching ignores case, '-' and
// '_', so "sha3-256", "SHA3_256" and "sha3256" are equivalent.
func LookupVariant(name string) (Variant, error) {
	key := normalizeName(name)
	for _, v := range variants {
		if normalizeName(v.name) == key {
			return v, nil
		}
	}
	return Variant{}, errors.Wrapf(ErrUnknownVariant, "%q", name)
}

func normalizeName(name string) string {
	return strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(name))
}

// Name returns the display name of v, such as "SHA3-256".
func (v Variant) Name() string { return v.name }

// String returns the display name of v.
func (v Variant) String() string { return v.name }

// Rate returns the sponge rate in bytes, which is also the hash block size.
func (v Variant) Rate() int { return v.rate }

// RateBits returns the sponge rate in bits.
func (v Variant) RateBits() int { return 8 * v.rate }

// Capacity returns the capacity in bytes. Rate and capacity always sum to
// the 200-byte state.
func (v Variant) Capacity() int { return stateSize - v.rate }

// CapacityBits returns the capacity in bits, 1600 - RateBits().
func (v Variant) CapacityBits() int { return 8 * v.Capacity() }

// Size returns the digest length in bytes.
func (v Variant) Size() int { return v.size }

// DomainSeparator returns the byte XORed in right after the message. It holds
// the domain bits and the first bit of pad10*1.
func (v Variant) DomainSeparator() byte { return v.dsbyte }

func (v Variant) valid() bool {
	return v.rate > 0 && v.rate <= maxRate && v.size > 0 && v.size <= v.rate
}
