package sha3

// Sponge is a streaming sponge over Keccak-f[1600] configured by a Variant.
// It absorbs input with Absorb or Write and produces output with
// FinalizeAndSqueeze, Read or Sum. Once output has been squeezed the sponge is
// consumed: absorbing more input panics.
//
// The zero value is not usable; create sponges with New or one of the
// per-variant constructors. Every field of a Sponge is a value or an
// immutable string, so copying it by value yields an independent sponge, and
// separate sponges may be used from separate goroutines.
type Sponge struct {
	state    [stateSize]byte
	buf      [maxRate]byte
	absorbed int
	v        Variant

	squeezing bool
	readIdx   int // index into state for next Read byte
}

// New returns a fresh sponge with a zeroed state for v.
func New(v Variant) *Sponge {
	if !v.valid() {
		panic("sha3: invalid variant")
	}
	return &Sponge{v: v}
}

// Reset resets the sponge to its initial state.
func (s *Sponge) Reset() {
	s.state = [stateSize]byte{}
	s.absorbed = 0
	s.squeezing = false
	s.readIdx = 0
}

// Variant returns the parameters the sponge was created with.
func (s *Sponge) Variant() Variant { return s.v }

// Size returns the digest length in bytes.
func (s *Sponge) Size() int { return s.v.size }

// BlockSize returns the sponge rate in bytes.
func (s *Sponge) BlockSize() int { return s.v.rate }

// Clone returns an independent copy of the sponge in its current state.
func (s *Sponge) Clone() *Sponge {
	dup := *s
	return &dup
}

// Absorb appends p to the message. The result does not depend on how the
// message is split across calls.
// Panics if called after output has been squeezed.
func (s *Sponge) Absorb(p []byte) {
	if s.squeezing {
		panic("sha3: absorb after finalize")
	}
	rate := s.v.rate

	if s.absorbed > 0 {
		n := copy(s.buf[s.absorbed:rate], p)
		s.absorbed += n
		p = p[n:]
		if s.absorbed == rate {
			xorIn(&s.state, s.buf[:rate])
			keccakF1600(&s.state)
			s.absorbed = 0
		}
	}

	for len(p) >= rate {
		xorIn(&s.state, p[:rate])
		keccakF1600(&s.state)
		p = p[rate:]
	}

	if len(p) > 0 {
		s.absorbed = copy(s.buf[:], p)
	}
}

// Write absorbs p. It never returns an error.
func (s *Sponge) Write(p []byte) (int, error) {
	s.Absorb(p)
	return len(p), nil
}

// FinalizeAndSqueeze pads the message, permutes and returns the Size()-byte
// digest. It consumes the sponge; calling it again panics.
func (s *Sponge) FinalizeAndSqueeze() []byte {
	if s.squeezing {
		panic("sha3: sponge already finalized")
	}
	digest := make([]byte, s.v.size)
	s.Read(digest)
	return digest
}

// Read squeezes len(out) bytes from the sponge. The first call pads and
// finalizes the message; output continues across calls, permuting whenever a
// rate-sized block has been consumed. It never returns an error.
func (s *Sponge) Read(out []byte) (int, error) {
	if !s.squeezing {
		s.padAndPermute()
	}

	n := len(out)
	for len(out) > 0 {
		if s.readIdx == s.v.rate {
			keccakF1600(&s.state)
			s.readIdx = 0
		}
		x := copy(out, s.state[s.readIdx:s.v.rate])
		s.readIdx += x
		out = out[x:]
	}
	return n, nil
}

// Sum appends the digest of the message absorbed so far to b.
// Does not modify the sponge state, so more input may be absorbed afterwards.
func (s *Sponge) Sum(b []byte) []byte {
	if s.squeezing {
		panic("sha3: Sum after finalize")
	}
	dup := *s
	return append(b, dup.FinalizeAndSqueeze()...)
}

// padAndPermute applies pad10*1 with the variant's domain separator. The
// tail is shorter than the rate, so state[absorbed] and state[rate-1] are
// both inside the block; when they coincide the two XORs combine into one
// byte because the domain separator never has its top bit set.
func (s *Sponge) padAndPermute() {
	xorIn(&s.state, s.buf[:s.absorbed])
	s.state[s.absorbed] ^= s.v.dsbyte
	s.state[s.v.rate-1] ^= 0x80
	keccakF1600(&s.state)
	s.squeezing = true
	s.readIdx = 0
}
