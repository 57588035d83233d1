// Command wordpack encodes a text file with the wordpack codec, or decodes
// it if it is already encoded.
//
//	wordpack [flags] <input> [output]
//
// The input is encoded unless it starts with the marker character or is
// wrapped in a recognized container, in which case it is decoded. "-" stands
// for stdin or stdout.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/textpack/wordpack"
	"github.com/textpack/wordpack/container"
	"github.com/textpack/wordpack/internal/check"
	cfgpkg "github.com/textpack/wordpack/internal/config"
	"github.com/textpack/wordpack/internal/diag"
	"github.com/textpack/wordpack/internal/fsio"
)

const (
	exitOK     = 0
	exitCodec  = 1
	exitUsage  = 2
	exitConfig = 3
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Environ(), os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	config     string
	initConfig string
	decode     bool
	explain    bool
	over       cfgpkg.Config
	input      string
	output     string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	var o options
	fs := flag.NewFlagSet("wordpack", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: wordpack [flags] <input> [output]")
		fs.PrintDefaults()
	}
	fs.StringVar(&o.config, "config", "", "JSON config file (default $WORDPACK_CONFIG)")
	fs.StringVar(&o.initConfig, "init-config", "", "write a config template to this path and exit")
	fs.BoolVar(&o.decode, "d", false, "decode even if the input does not look encoded")
	fs.BoolVar(&o.explain, "explain", false, "print the encoded body with references resolved inline")
	fs.StringVar(&o.over.Order, "order", "", "dictionary order: frequency or first-seen")
	minCount := fs.Int("min-count", 0, "minimum occurrences of a dictionary word")
	minLength := fs.Int("min-length", 0, "minimum length of a dictionary word")
	fs.StringVar(&o.over.Container, "container", "", "wrap output in none, gzip, zstd, snappy, brotli or lz4")
	level := fs.Int("level", 0, "container compression level (0 = default)")
	checkFlag := fs.Bool("check", true, "decode the output again and compare it with the input")
	atomicFlag := fs.Bool("atomic", true, "write the output through a temporary file")
	fs.StringVar(&o.over.Logging.Level, "log-level", "", "debug, info, warn or error")
	fs.StringVar(&o.over.Logging.Format, "log-format", "", "text or json")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	// Numbers and booleans only override the config when given explicitly.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "min-count":
			o.over.MinCount = minCount
		case "min-length":
			o.over.MinLength = minLength
		case "level":
			o.over.Level = level
		case "check":
			o.over.Check = checkFlag
		case "atomic":
			o.over.Atomic = atomicFlag
		}
	})

	if o.initConfig != "" {
		return &o, nil
	}
	switch fs.NArg() {
	case 1:
		o.input = fs.Arg(0)
	case 2:
		o.input, o.output = fs.Arg(0), fs.Arg(1)
	default:
		fs.Usage()
		return nil, errors.New("expected an input path and an optional output path")
	}
	return &o, nil
}

func loadConfig(o *options, environ []string) (cfgpkg.Config, error) {
	cfg := cfgpkg.Defaults()
	path := o.config
	if path == "" {
		path = lookupEnv(environ, cfgpkg.EnvPrefix+"CONFIG")
	}
	if path != "" {
		base, err := cfgpkg.LoadJSON(path, nil)
		if err != nil {
			return cfg, err
		}
		cfg = cfgpkg.Merge(cfg, base)
	}
	env, err := cfgpkg.EnvOverlay(environ)
	if err != nil {
		return cfg, err
	}
	cfg = cfgpkg.Merge(cfgpkg.Merge(cfg, env), o.over)
	return cfg, cfgpkg.Validate(cfg)
}

func lookupEnv(environ []string, key string) string {
	for _, kv := range environ {
		if strings.HasPrefix(kv, key+"=") {
			return kv[len(key)+1:]
		}
	}
	return ""
}

func run(ctx context.Context, args, environ []string, stdout, stderr io.Writer) int {
	o, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if o.initConfig != "" {
		if err := cfgpkg.WriteTemplate(o.initConfig); err != nil {
			fmt.Fprintf(stderr, "writing config template: %v\n", err)
			return exitConfig
		}
		return exitOK
	}

	cfg, err := loadConfig(o, environ)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return exitConfig
	}
	logger := diag.New(stderr, cfg.Logging.Level, cfg.Logging.Format).With("file", o.input)

	t := logger.Start("read", "reading input")
	data, err := fsio.ReadFile(ctx, o.input)
	if err != nil {
		logger.Error("read", "reading input failed", err)
		return exitConfig
	}
	t.Finish("input read", int64(len(data)))

	kind := container.Detect(data)
	if kind == container.None && o.decode && !wordpack.IsEncoded(data) {
		kind = cfg.ContainerKind()
	}
	if kind != container.None {
		t := logger.Start("container", "unwrapping", "container", string(kind))
		data, err = container.Unwrap(kind, data)
		if err != nil {
			logger.Error("container", "unwrapping failed", err)
			fmt.Fprintln(stderr, "decoding failed")
			return exitCodec
		}
		t.Finish("unwrapped", int64(len(data)))
	}

	var out []byte
	var in int
	if o.decode || kind != container.None || wordpack.IsEncoded(data) {
		in = len(data)
		out, err = decode(ctx, logger, data)
	} else {
		text := wordpack.Normalize(string(data))
		in = len(text)
		out, err = encode(ctx, logger, cfg, text, o.explain, stdout)
	}
	if err != nil {
		code := exitCodec
		if errors.Is(err, context.Canceled) {
			code = exitConfig
		}
		fmt.Fprintln(stderr, failureMessage(err))
		return code
	}

	if o.output != "" {
		t := logger.Start("write", "writing output", "path", o.output)
		if err := fsio.WriteFile(ctx, o.output, out, fsio.Options{Atomic: cfg.AtomicEnabled(), Stdout: stdout}); err != nil {
			logger.Error("write", "writing output failed", err)
			return exitConfig
		}
		t.Finish("output written", int64(len(out)))
	}

	report := stdout
	if o.output == fsio.Stdio {
		report = stderr
	}
	fmt.Fprintf(report, "%s compression ratio: %.2f\n", o.input, ratio(in, len(out)))
	return exitOK
}

func decode(ctx context.Context, logger *diag.Logger, data []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	misses := 0
	dec := wordpack.Decoder{OnMiss: func(int) { misses++ }}
	t := logger.Start("decode", "decoding")
	out, err := dec.Decode(nil, data)
	if err != nil {
		logger.Error("decode", "decoding failed", err)
		return nil, err
	}
	t.Finish("decoded", int64(len(out)))
	if misses > 0 {
		logger.Warn("decode", "unresolved references decoded as empty words", "misses", misses)
	}
	return out, nil
}

func encode(ctx context.Context, logger *diag.Logger, cfg cfgpkg.Config, text string, explain bool, stdout io.Writer) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	enc := wordpack.Encoder{Selector: cfg.Selector()}
	t := logger.Start("encode", "encoding", "order", cfg.Order)
	encoded := enc.Encode(nil, []byte(text))
	t.Finish("encoded", int64(len(encoded)))

	if cfg.CheckEnabled() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t := logger.Start("check", "verifying")
		r, err := check.Verify(text, encoded)
		if err != nil {
			logger.Error("check", "encoded output does not decode to the input", err)
			return nil, err
		}
		t.Finish("encoding correct", int64(r.Lines), "xxh32", fmt.Sprintf("%08x", r.Checksum))
	}

	if explain {
		s, err := wordpack.Annotate(string(encoded))
		if err != nil {
			return nil, err
		}
		fmt.Fprintln(stdout, s)
	}

	kind := cfg.ContainerKind()
	if kind == container.None {
		return encoded, nil
	}
	t = logger.Start("container", "wrapping", "container", string(kind))
	out, err := container.Wrap(kind, cfg.ContainerLevel(), encoded)
	if err != nil {
		logger.Error("container", "wrapping failed", err)
		return nil, err
	}
	t.Finish("wrapped", int64(len(out)))
	return out, nil
}

func failureMessage(err error) string {
	switch diag.Classify(err) {
	case diag.CodeFraming:
		return "decoding failed"
	case diag.CodeMismatch:
		return "encoding check failed"
	case diag.CodeCancel:
		return "interrupted"
	}
	return fmt.Sprintf("failed: %v", err)
}

// ratio is 1 - out/in, the share of the input saved. Empty input saves
// nothing.
func ratio(in, out int) float64 {
	if in == 0 {
		return 0
	}
	return 1 - float64(out)/float64(in)
}
