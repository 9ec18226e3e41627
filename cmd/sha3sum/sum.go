package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/multiformats/go-multibase"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Giulio2002/sha3"
	mhsha3 "github.com/Giulio2002/sha3/multihash"
)

// job is one file to hash with the given variant.
type job struct {
	path    string
	variant sha3.Variant
}

type result struct {
	digest []byte
	size   int64
	err    error
}

// digestFile hashes the file at path, or stdin when path is "-".
func digestFile(v sha3.Variant, path string, stdin io.Reader) ([]byte, int64, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, 0, err
		}
		defer f.Close()
		r = f
	}
	s := sha3.New(v)
	n, err := io.Copy(s, r)
	if err != nil {
		return nil, n, errors.Wrapf(err, "read %s", path)
	}
	return s.FinalizeAndSqueeze(), n, nil
}

// digestFiles hashes every job with its own sponge, at most limit at a time.
// Results are in job order; a failed file does not stop the others. Jobs
// reading stdin run one after another in job order on the calling
// goroutine, so the first "-" consumes the stream and later ones see it empty.
func digestFiles(ctx context.Context, log zerolog.Logger, jobs []job, limit int, stdin io.Reader) []result {
	results := make([]result, len(jobs))
	hash := func(i int, j job) {
		if err := ctx.Err(); err != nil {
			results[i].err = err
			return
		}
		digest, n, err := digestFile(j.variant, j.path, stdin)
		if err != nil {
			log.Debug().Err(err).Str("file", j.path).Msg("Hashing failed")
			results[i].err = err
			return
		}
		log.Trace().Str("file", j.path).Str("algorithm", j.variant.Name()).Int64("bytes", n).Msg("Hashed file")
		results[i] = result{digest: digest, size: n}
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i, j := range jobs {
		if j.path == "-" {
			hash(i, j)
			continue
		}
		g.Go(func() error {
			hash(i, j)
			return nil
		})
	}
	g.Wait()
	return results
}

// wrap returns the bytes that are printed for digest: the digest itself or
// its multihash.
func (o *options) wrap(v sha3.Variant, digest []byte) ([]byte, error) {
	if !o.multihash {
		return digest, nil
	}
	return mhsha3.Encode(v, digest)
}

func (o *options) format(b []byte) string {
	if o.encoding == hexEncoding {
		return hex.EncodeToString(b)
	}
	return o.encoder.Encode(b)
}

// parse decodes a printed digest. Anything other than bare hex must be a
// multibase string; its prefix names the encoding.
func (o *options) parse(s string) ([]byte, error) {
	if o.encoding == hexEncoding {
		return hex.DecodeString(s)
	}
	_, b, err := multibase.Decode(s)
	return b, err
}

func printSums(ctx context.Context, log zerolog.Logger, opts *options, paths []string, stdin io.Reader, out io.Writer) error {
	jobs := make([]job, len(paths))
	for i, path := range paths {
		jobs[i] = job{path: path, variant: opts.variant}
	}

	var failed int
	for i, res := range digestFiles(ctx, log, jobs, opts.jobs, stdin) {
		if res.err != nil {
			log.Error().Err(res.err).Str("file", paths[i]).Msg("Cannot hash file")
			failed++
			continue
		}
		b, err := opts.wrap(opts.variant, res.digest)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s  %s\n", opts.format(b), paths[i])
	}
	if failed > 0 {
		return errors.Errorf("%d of %d files could not be hashed", failed, len(paths))
	}
	return nil
}
