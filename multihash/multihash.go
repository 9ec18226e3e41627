/*
Package multihash registers the sponge-based SHA3 and Keccak hashers of
github.com/Giulio2002/sha3 with go-multihash, replacing the defaults for the
codes it covers.

It may be used as a side-effecting import:

	import (
		_ "github.com/Giulio2002/sha3/multihash"
	)

or directly through Sum and Verify.
*/
package multihash

import (
	"bytes"
	"hash"

	mh "github.com/multiformats/go-multihash"
	mhcore "github.com/multiformats/go-multihash/core"
	"github.com/pkg/errors"

	"github.com/Giulio2002/sha3"
)

var (
	// ErrUnsupportedCode is returned for multihash codes with no sponge variant.
	ErrUnsupportedCode = errors.New("unsupported multihash code")

	// ErrDigestMismatch is returned by Verify when the data does not hash to the multihash.
	ErrDigestMismatch = errors.New("digest mismatch")

	// ErrDigestTooShort is returned by Verify for multihashes truncated below
	// half of the full digest.
	ErrDigestTooShort = errors.New("digest too short")
)

var codes = map[uint64]sha3.Variant{
	mhcore.SHA3_224:   sha3.SHA3_224,
	mhcore.SHA3_256:   sha3.SHA3_256,
	mhcore.SHA3_384:   sha3.SHA3_384,
	mhcore.SHA3_512:   sha3.SHA3_512,
	mhcore.KECCAK_256: sha3.Keccak256,
	mhcore.KECCAK_512: sha3.Keccak512,
}

func init() {
	for code, v := range codes {
		mhcore.Register(code, func() hash.Hash { return sha3.New(v) })
	}
}

// Variant returns the sponge variant registered for code.
func Variant(code uint64) (sha3.Variant, error) {
	v, ok := codes[code]
	if !ok {
		return sha3.Variant{}, errors.Wrapf(ErrUnsupportedCode, "0x%x", code)
	}
	return v, nil
}

// Code returns the multihash code of v.
func Code(v sha3.Variant) (uint64, bool) {
	for code, cv := range codes {
		if cv == v {
			return code, true
		}
	}
	return 0, false
}

// Sum hashes data with the variant registered for code and returns the
// full-length multihash.
func Sum(data []byte, code uint64) (mh.Multihash, error) {
	v, err := Variant(code)
	if err != nil {
		return nil, err
	}
	return Encode(v, sha3.Sum(v, data))
}

// Encode wraps a digest produced by v in a multihash.
func Encode(v sha3.Variant, digest []byte) (mh.Multihash, error) {
	code, ok := Code(v)
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedCode, "variant %s", v)
	}
	if len(digest) != v.Size() {
		return nil, errors.Errorf("%s digest is %d bytes, want %d", v, len(digest), v.Size())
	}
	return mh.Encode(digest, code)
}

// MinDigestLength is the shortest truncation of a v digest that Verify accepts.
func MinDigestLength(v sha3.Variant) int {
	return v.Size() / 2
}

// Verify checks that data hashes to m. Truncated multihashes are compared
// against the same prefix of the digest and must keep at least half of it.
func Verify(m mh.Multihash, data []byte) error {
	dec, err := mh.Decode(m)
	if err != nil {
		return errors.Wrap(err, "decode multihash")
	}
	v, err := Variant(dec.Code)
	if err != nil {
		return err
	}
	if dec.Length > v.Size() {
		return errors.Errorf("%s multihash claims %d digest bytes, max %d", v, dec.Length, v.Size())
	}
	if least := MinDigestLength(v); dec.Length < least {
		return errors.Wrapf(ErrDigestTooShort, "%s multihash has %d digest bytes, min %d", v, dec.Length, least)
	}
	if !bytes.Equal(sha3.Sum(v, data)[:dec.Length], dec.Digest) {
		return errors.Wrapf(ErrDigestMismatch, "%s", v)
	}
	return nil
}
