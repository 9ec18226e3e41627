package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	mh "github.com/multiformats/go-multihash"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	mhsha3 "github.com/Giulio2002/sha3/multihash"
)

// entry is one "<digest>  <path>" line of a checksum list.
type entry struct {
	job
	want []byte
}

// parseLine splits a checksum line. A '*' before the path marks binary
// mode in coreutils output and is ignored.
func parseLine(line string) (digest, path string, ok bool) {
	digest, path, ok = strings.Cut(line, " ")
	if !ok || digest == "" {
		return "", "", false
	}
	path = strings.TrimPrefix(path, " ")
	path = strings.TrimPrefix(path, "*")
	return digest, path, path != ""
}

// readEntries parses a checksum list. Blank lines and '#' comments are
// skipped; the number of malformed lines is returned alongside the entries.
func readEntries(r io.Reader, opts *options) ([]entry, int, error) {
	var (
		entries []entry
		bad     int
	)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		digest, path, ok := parseLine(line)
		if !ok {
			bad++
			continue
		}
		e, err := opts.newEntry(digest, path)
		if err != nil {
			bad++
			continue
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, err
	}
	return entries, bad, nil
}

// newEntry decodes a printed digest. Multihash digests carry their own
// algorithm, otherwise the configured one is used.
func (o *options) newEntry(digest, path string) (entry, error) {
	want, err := o.parse(digest)
	if err != nil {
		return entry{}, err
	}
	e := entry{job: job{path: path, variant: o.variant}, want: want}
	if o.multihash {
		dec, err := mh.Decode(want)
		if err != nil {
			return entry{}, err
		}
		if e.variant, err = mhsha3.Variant(dec.Code); err != nil {
			return entry{}, err
		}
		return e, nil
	}
	if len(want) != o.variant.Size() {
		return entry{}, errors.Errorf("%s digest must be %d bytes, have %d", o.variant, o.variant.Size(), len(want))
	}
	return e, nil
}

func openList(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(stdin), nil
	}
	return os.Open(path)
}

func check(ctx context.Context, log zerolog.Logger, opts *options, lists []string, stdin io.Reader, out io.Writer) error {
	var (
		entries []entry
		bad     int
	)
	for _, list := range lists {
		f, err := openList(list, stdin)
		if err != nil {
			return err
		}
		es, n, err := readEntries(f, opts)
		f.Close()
		if err != nil {
			return errors.Wrapf(err, "read %s", list)
		}
		if n > 0 {
			log.Warn().Str("file", list).Int("lines", n).Msg("Improperly formatted checksum lines")
		}
		entries = append(entries, es...)
		bad += n
	}
	if len(entries) == 0 {
		return errors.New("no properly formatted checksum lines found")
	}

	jobs := make([]job, len(entries))
	for i, e := range entries {
		jobs[i] = e.job
	}

	var unreadable, mismatched int
	for i, res := range digestFiles(ctx, log, jobs, opts.jobs, stdin) {
		e := entries[i]
		if res.err != nil {
			log.Error().Err(res.err).Str("file", e.path).Msg("Cannot hash file")
			fmt.Fprintf(out, "%s: FAILED open or read\n", e.path)
			unreadable++
			continue
		}
		got, err := opts.wrap(e.variant, res.digest)
		if err != nil {
			return err
		}
		if !bytes.Equal(got, e.want) {
			fmt.Fprintf(out, "%s: FAILED\n", e.path)
			mismatched++
			continue
		}
		fmt.Fprintf(out, "%s: OK\n", e.path)
	}

	log.Info().
		Int("checked", len(entries)).
		Int("mismatched", mismatched).
		Int("unreadable", unreadable).
		Int("malformed", bad).
		Msg("Check finished")

	switch {
	case unreadable > 0 && mismatched > 0:
		return errors.Errorf("%d listed files could not be read, %d computed checksums did NOT match", unreadable, mismatched)
	case unreadable > 0:
		return errors.Errorf("%d listed files could not be read", unreadable)
	case mismatched > 0:
		return errors.Errorf("%d computed checksums did NOT match", mismatched)
	}
	return nil
}
