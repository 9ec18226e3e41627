// sha3sum prints or checks SHA3 and Keccak checksums.
//
// Usage:
//
//	sha3sum [-a sha3-256] [-e base16] [-m] [FILE]...
//	sha3sum -c [FILE]...
//
// With no FILE, or when FILE is -, standard input is read.
package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/multiformats/go-multibase"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/Giulio2002/sha3"
)

// hexEncoding prints digests as bare lowercase hex, the format read by the
// coreutils *sum tools.
const hexEncoding = "base16"

// Flag names. The flags themselves are built per app by newFlags: urfave/cli
// stores values read from the environment on the flag, so sharing flag
// values between apps leaks configuration from one run into the next.
const (
	algorithmFlag = "algorithm"
	encodingFlag  = "encoding"
	multihashFlag = "multihash"
	checkFlag     = "check"
	jobsFlag      = "jobs"
	verbosityFlag = "verbosity"
)

func newFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    algorithmFlag,
			Aliases: []string{"a"},
			Usage:   "Hash `NAME`: sha3-224, sha3-256, sha3-384, sha3-512, keccak-256 or keccak-512",
			Value:   "sha3-256",
			EnvVars: []string{"SHA3SUM_ALGORITHM"},
		},
		&cli.StringFlag{
			Name:    encodingFlag,
			Aliases: []string{"e"},
			Usage:   "Multibase `ENCODING` of printed digests (base16 prints bare hex)",
			Value:   hexEncoding,
			EnvVars: []string{"SHA3SUM_ENCODING"},
		},
		&cli.BoolFlag{
			Name:    multihashFlag,
			Aliases: []string{"m"},
			Usage:   "Wrap digests in a multihash before encoding",
		},
		&cli.BoolFlag{
			Name:    checkFlag,
			Aliases: []string{"c"},
			Usage:   "Read checksums from the FILEs and check them",
		},
		&cli.IntFlag{
			Name:    jobsFlag,
			Aliases: []string{"j"},
			Usage:   "Number of files hashed concurrently",
			Value:   runtime.NumCPU(),
			EnvVars: []string{"SHA3SUM_JOBS"},
		},
		&cli.StringFlag{
			Name:  verbosityFlag,
			Usage: "Log `LEVEL`: trace, debug, info, warn, error",
			Value: "warn",
		},
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "sha3sum",
		Usage:     "print or check SHA3 checksums",
		ArgsUsage: "[FILE]...",
		Flags:     newFlags(),
		Action:    run,
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "sha3sum:", err)
		os.Exit(1)
	}
}

// options is the configuration of one invocation.
type options struct {
	variant   sha3.Variant
	encoding  string
	encoder   multibase.Encoder
	multihash bool
	jobs      int
}

func newOptions(ctx *cli.Context) (*options, error) {
	v, err := sha3.LookupVariant(ctx.String(algorithmFlag))
	if err != nil {
		return nil, errors.Wrap(err, "invalid --algorithm")
	}
	opts := &options{
		variant:   v,
		encoding:  ctx.String(encodingFlag),
		multihash: ctx.Bool(multihashFlag),
		jobs:      ctx.Int(jobsFlag),
	}
	if opts.encoding != hexEncoding {
		if opts.encoder, err = multibase.EncoderByName(opts.encoding); err != nil {
			return nil, errors.Wrap(err, "invalid --encoding")
		}
	}
	if opts.jobs < 1 {
		return nil, errors.Errorf("invalid --jobs %d, must be at least 1", opts.jobs)
	}
	return opts, nil
}

func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), errors.Wrap(err, "invalid --verbosity")
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: zerolog.SyncWriter(w), NoColor: true}).
		Level(lvl).
		With().
		Timestamp().
		Logger(), nil
}

func run(ctx *cli.Context) error {
	log, err := newLogger(ctx.App.ErrWriter, ctx.String(verbosityFlag))
	if err != nil {
		return err
	}
	opts, err := newOptions(ctx)
	if err != nil {
		return err
	}

	paths := ctx.Args().Slice()
	if len(paths) == 0 {
		paths = []string{"-"}
	}
	log.Debug().
		Str("algorithm", opts.variant.Name()).
		Str("encoding", opts.encoding).
		Bool("multihash", opts.multihash).
		Int("jobs", opts.jobs).
		Int("files", len(paths)).
		Msg("Starting")

	if ctx.Bool(checkFlag) {
		return check(ctx.Context, log, opts, paths, ctx.App.Reader, ctx.App.Writer)
	}
	return printSums(ctx.Context, log, opts, paths, ctx.App.Reader, ctx.App.Writer)
}
