package cli

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/IljaManakov/cryostasis/internal/config"
	"github.com/IljaManakov/cryostasis/internal/engine"
	"github.com/IljaManakov/cryostasis/internal/loader"
	"github.com/IljaManakov/cryostasis/internal/object"
)

// session is what every command works with: the output formatter, the
// effective config and an engine logging to stderr.
type session struct {
	opts   *RootOptions
	out    *OutputFormatter
	cfg    *config.Config
	logger *slog.Logger
	engine *engine.Engine
}

// newSession loads the config and builds the engine. Errors are already
// written to the formatter when returned.
func newSession(opts *RootOptions, cmd *cobra.Command) (*session, error) {
	s := &session{
		opts: opts,
		out: &OutputFormatter{
			Format:    opts.Format,
			Writer:    cmd.OutOrStdout(),
			ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
			Verbose:   opts.Verbose,
			TraceID:   opts.traceID(),
		},
	}

	cfg := config.Default()
	if opts.ConfigPath != "" {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			return nil, s.fail(ErrCodeConfig, "failed to load config", ExitCommandError, err)
		}
		cfg = loaded
		s.out.VerboseLog("Loaded config from %s", opts.ConfigPath)
	}
	if opts.MetricsFile != "" {
		cfg.Metrics.Enabled = true
	}
	s.cfg = cfg

	level := cfg.SlogLevel()
	if opts.Verbose {
		level = slog.LevelDebug
	}
	s.logger = slog.New(slog.NewTextHandler(s.out.GetErrWriter(), &slog.HandlerOptions{Level: level}))

	eng, err := engine.NewFromConfig(cfg, engine.WithSink(s.logger))
	if err != nil {
		return nil, s.fail(ErrCodeConfig, "invalid config", ExitCommandError, err)
	}
	s.engine = eng
	return s, nil
}

// fail reports an error through the formatter and returns the matching
// ExitError.
func (s *session) fail(code, message string, exitCode int, err error) error {
	var details interface{}
	if err != nil {
		details = err.Error()
	}
	var de *loader.DecodeError
	if errors.As(err, &de) {
		details = de
	}
	_ = s.out.Error(code, message, details)
	return WrapExitError(exitCode, code+": "+message, err)
}

// loadDocument decodes the document at path into an object graph.
func (s *session) loadDocument(path string) (object.Object, error) {
	doc, err := loader.LoadFile(path)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, s.fail(ErrCodeNotFound, "document not found: "+path, ExitCommandError, err)
		default:
			return nil, s.fail(ErrCodeLoadFailed, "failed to load "+path, ExitCommandError, err)
		}
	}
	s.out.VerboseLog("Loaded %s as %s", path, doc.Shape().Name())
	s.logger.Debug("document loaded", "path", path, "shape", doc.Shape().Name())
	return doc, nil
}

// finish writes the metrics textfile when one was requested.
func (s *session) finish() error {
	if s.opts.MetricsFile == "" {
		return nil
	}
	if err := s.engine.Metrics().WriteTextfile(s.opts.MetricsFile); err != nil {
		return s.fail(ErrCodeWriteFailed, "failed to write metrics", ExitFailure, err)
	}
	s.out.VerboseLog("Wrote metrics to %s", s.opts.MetricsFile)
	return nil
}
