package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/multiformats/go-multibase"
	mh "github.com/multiformats/go-multihash"
	"github.com/stretchr/testify/require"

	"github.com/Giulio2002/sha3"
)

func runApp(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	var out, errOut strings.Builder
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &errOut
	app.Reader = stdin
	err := app.Run(append([]string{"sha3sum"}, args...))
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestPrintSums(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "abc")
	b := writeFile(t, dir, "b.txt", strings.Repeat("A", 2000))

	out, err := runApp(t, strings.NewReader(""), a, b)
	require.NoError(t, err)

	da, db := sha3.Sum256([]byte("abc")), sha3.Sum256([]byte(strings.Repeat("A", 2000)))
	want := fmt.Sprintf("%x  %s\n%x  %s\n", da, a, db, b)
	require.Equal(t, want, out)
	require.True(t, strings.HasPrefix(out, "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532  "))
}

func TestPrintSumsAlgorithm(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "hello")

	for _, v := range sha3.Variants() {
		out, err := runApp(t, nil, "--algorithm", v.Name(), "--jobs", "1", a)
		require.NoError(t, err)
		require.Equal(t, fmt.Sprintf("%x  %s\n", sha3.Sum(v, []byte("hello")), a), out, v.Name())
	}
}

func TestAlgorithmFromEnv(t *testing.T) {
	t.Setenv("SHA3SUM_ALGORITHM", "keccak-256")
	out, err := runApp(t, strings.NewReader("hello"))
	require.NoError(t, err)
	require.Equal(t, "1c8aff950685c2ed4bc3174f3472287b56d9517b9c948127319a09a7a36deac8  -\n", out)
}

func TestEnvDoesNotLeakBetweenApps(t *testing.T) {
	t.Run("keccak from env", func(t *testing.T) {
		t.Setenv("SHA3SUM_ALGORITHM", "keccak-256")
		t.Setenv("SHA3SUM_ENCODING", "base32")
		out, err := runApp(t, strings.NewReader("abc"))
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(out, "b"), out)
	})

	out, err := runApp(t, strings.NewReader("abc"))
	require.NoError(t, err)
	require.Equal(t, "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532  -\n", out)
}

func TestStdinReadOnce(t *testing.T) {
	out, err := runApp(t, strings.NewReader("abc"), "-j", "4", "-", "-", "-")
	require.NoError(t, err)

	full, empty := sha3.Sum256([]byte("abc")), sha3.Sum256(nil)
	require.Equal(t, fmt.Sprintf("%x  -\n%x  -\n%x  -\n", full, empty, empty), out)
}

func TestStdin(t *testing.T) {
	out, err := runApp(t, strings.NewReader(""), "-a", "sha3-224")
	require.NoError(t, err)
	require.Equal(t, "6b4e03423667dbb73b6e15454f0eb1abd4597f9a1b078e3f5b5a6bc7  -\n", out)
}

func TestMultibaseMultihash(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "abc")

	out, err := runApp(t, nil, "-e", "base58btc", "-m", a)
	require.NoError(t, err)

	digest, path, ok := parseLine(strings.TrimSuffix(out, "\n"))
	require.True(t, ok)
	require.Equal(t, a, path)

	enc, raw, err := multibase.Decode(digest)
	require.NoError(t, err)
	require.Equal(t, multibase.Encoding(multibase.Base58BTC), enc)

	dec, err := mh.Decode(raw)
	require.NoError(t, err)
	require.Equal(t, uint64(mh.SHA3_256), dec.Code)
	want := sha3.Sum256([]byte("abc"))
	require.Equal(t, want[:], dec.Digest)
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "first")
	b := writeFile(t, dir, "b.txt", "second")

	sums, err := runApp(t, nil, "-a", "sha3-384", a, b)
	require.NoError(t, err)
	list := writeFile(t, dir, "SHA3SUMS", "# checksums\n"+sums+"\n")

	out, err := runApp(t, nil, "-a", "sha3-384", "-c", list)
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("%s: OK\n%s: OK\n", a, b), out)

	// Wrong algorithm: every digest has the wrong length.
	_, err = runApp(t, nil, "-a", "sha3-256", "-c", list)
	require.Error(t, err)

	require.NoError(t, os.WriteFile(b, []byte("changed"), 0o644))
	out, err = runApp(t, nil, "-a", "sha3-384", "-c", list)
	require.EqualError(t, err, "1 computed checksums did NOT match")
	require.Equal(t, fmt.Sprintf("%s: OK\n%s: FAILED\n", a, b), out)

	require.NoError(t, os.Remove(a))
	out, err = runApp(t, nil, "-a", "sha3-384", "-c", list)
	require.Error(t, err)
	require.Contains(t, out, a+": FAILED open or read\n")
}

func TestCheckMultihashSelectsAlgorithm(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "first")
	b := writeFile(t, dir, "b.txt", "second")

	s512, err := runApp(t, nil, "-a", "sha3-512", "-m", "-e", "base32", a)
	require.NoError(t, err)
	k256, err := runApp(t, nil, "-a", "keccak-256", "-m", "-e", "base32", b)
	require.NoError(t, err)

	out, err := runApp(t, strings.NewReader(s512+k256), "-m", "-e", "base32", "-c")
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("%s: OK\n%s: OK\n", a, b), out)
}

func TestCheckNoValidLines(t *testing.T) {
	_, err := runApp(t, strings.NewReader("not a checksum\n\n"), "-c")
	require.EqualError(t, err, "no properly formatted checksum lines found")
}

func TestMissingFile(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "abc")

	out, err := runApp(t, nil, a, filepath.Join(dir, "missing"))
	require.EqualError(t, err, "1 of 2 files could not be hashed")
	d := sha3.Sum256([]byte("abc"))
	require.Equal(t, hex.EncodeToString(d[:])+"  "+a+"\n", out)
}

func TestInvalidOptions(t *testing.T) {
	_, err := runApp(t, nil, "-a", "sha2-256")
	require.ErrorIs(t, err, sha3.ErrUnknownVariant)

	_, err = runApp(t, nil, "-e", "base1000")
	require.ErrorContains(t, err, "invalid --encoding")

	_, err = runApp(t, nil, "-j", "0")
	require.ErrorContains(t, err, "invalid --jobs")

	_, err = runApp(t, nil, "--verbosity", "loud")
	require.ErrorContains(t, err, "invalid --verbosity")
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		line         string
		digest, path string
		ok           bool
	}{
		{"abcd  file.txt", "abcd", "file.txt", true},
		{"abcd *file.txt", "abcd", "file.txt", true},
		{"abcd  dir/with space.txt", "abcd", "dir/with space.txt", true},
		{"abcd", "", "", false},
		{" file.txt", "", "", false},
		{"abcd  ", "", "", false},
	}
	for _, tt := range tests {
		digest, path, ok := parseLine(tt.line)
		require.Equal(t, tt.ok, ok, tt.line)
		if ok {
			require.Equal(t, tt.digest, digest)
			require.Equal(t, tt.path, path)
		}
	}
}
