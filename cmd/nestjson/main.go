// nestjson rewrites double-encoded JSON fields in a stream of JSON Lines.
//
//	nestjson --unnest payload --unnest 'events[]' < app.log
//	nestjson --config rules.yaml --keep-going < app.log
//
// Each input line is one document; rewritten documents go to stdout, logs go
// to stderr.
package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/unkn0wn-root/nestedjson/internal/config"
	logruslog "github.com/unkn0wn-root/nestedjson/log/logrus"
	zaplog "github.com/unkn0wn-root/nestedjson/log/zap"
	"github.com/unkn0wn-root/nestedjson/transform"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var (
		configPath    string
		unnest        []string
		nest          []string
		keepGoing     bool
		logLevel      string
		loggerName    string
		maxInnerBytes int
	)

	flagSet := pflag.NewFlagSet("nestjson", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&configPath, "config", "", "rule file (.yaml, .yml, .json, .jsonc)")
	flagSet.StringArrayVar(&unnest, "unnest", nil, "path whose string value is decoded into a nested document (repeatable)")
	flagSet.StringArrayVar(&nest, "nest", nil, "path whose value is encoded into a JSON string (repeatable)")
	flagSet.BoolVar(&keepGoing, "keep-going", false, "pass failing lines through unchanged instead of stopping")
	flagSet.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	flagSet.StringVar(&loggerName, "logger", "zap", "logging backend: zap or logrus")
	flagSet.IntVar(&maxInnerBytes, "max-inner-bytes", 0, "reject inner documents larger than this (0 = unlimited)")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	// Flag rules run after file rules; other flags override only when set.
	for _, p := range unnest {
		cfg.Rules = append(cfg.Rules, config.Rule{Path: p, Mode: transform.Unnest.String()})
	}
	for _, p := range nest {
		cfg.Rules = append(cfg.Rules, config.Rule{Path: p, Mode: transform.Nest.String()})
	}
	if flagSet.Changed("keep-going") {
		cfg.KeepGoing = keepGoing
	}
	if flagSet.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flagSet.Changed("logger") {
		cfg.Logger = loggerName
	}
	if flagSet.Changed("max-inner-bytes") {
		cfg.MaxInnerBytes = maxInnerBytes
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, sync, err := newLogger(cfg, stderr)
	if err != nil {
		return err
	}
	defer sync()

	rules, err := cfg.TransformRules()
	if err != nil {
		return err
	}
	rw, err := transform.New(rules, transform.Options{Logger: logger, MaxInnerBytes: cfg.MaxInnerBytes})
	if err != nil {
		return err
	}
	return process(rw, logger, cfg.KeepGoing, stdin, stdout)
}

func process(rw *transform.Rewriter, logger transform.Logger, keepGoing bool, in io.Reader, out io.Writer) error {
	r := bufio.NewReader(in)
	w := bufio.NewWriter(out)
	defer w.Flush()

	var lines, failed int
	for {
		line, readErr := r.ReadBytes('\n')
		if readErr != nil && readErr != io.EOF {
			return fmt.Errorf("reading input: %w", readErr)
		}
		line = bytes.TrimRight(line, "\r\n")
		if len(bytes.TrimSpace(line)) > 0 {
			lines++
			doc, err := rw.Apply(line)
			if err != nil {
				if !keepGoing {
					return fmt.Errorf("line %d: %w", lines, err)
				}
				failed++
				logger.Warn("line passed through unchanged", transform.Fields{"line": lines, "err": err.Error()})
				doc = line
			}
			if _, err := w.Write(doc); err != nil {
				return err
			}
			if err := w.WriteByte('\n'); err != nil {
				return err
			}
		}
		if readErr == io.EOF {
			break
		}
	}
	logger.Info("done", transform.Fields{"lines": lines, "failed": failed})
	return nil
}

func newLogger(cfg *config.Config, stderr io.Writer) (transform.Logger, func(), error) {
	switch cfg.Logger {
	case "logrus":
		lvl, err := logrus.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, nil, err
		}
		l := logrus.New()
		l.SetOutput(stderr)
		l.SetFormatter(&logrus.JSONFormatter{})
		l.SetLevel(lvl)
		return logruslog.New(l), func() {}, nil
	default:
		lvl, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, nil, err
		}
		core := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(stderr),
			zap.NewAtomicLevelAt(lvl),
		)
		l := zap.New(core)
		return zaplog.New(l), func() { _ = l.Sync() }, nil
	}
}
