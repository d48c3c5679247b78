package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/davecgh/go-spew/spew"
	"gopkg.in/yaml.v3"

	"datamix-tools/internal/ctxlog"
	"datamix-tools/internal/diagnostic"
	"datamix-tools/internal/document"
	"datamix-tools/internal/emit"
	"datamix-tools/internal/mixture"
	"datamix-tools/internal/quantize"
)

// App runs one compilation.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
}

// NewApp builds an App writing results to outW and logs to logW.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	return &App{
		outW:   outW,
		logger: newLogger(cfg.LogLevel, cfg.LogFormat, logW),
		config: cfg,
	}
}

// Run executes the pipeline. Every failure comes back as a *PhaseError and
// nothing is written before quantization has succeeded.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("Run started.", "mixture", a.config.MixturePath, "paths", a.config.PathsPath)

	mixDoc, err := document.LoadFile(a.config.MixturePath)
	if err != nil {
		return &PhaseError{Phase: PhaseLoading, File: a.config.MixturePath, Err: err}
	}

	pathsDoc, err := document.LoadFile(a.config.PathsPath)
	if err != nil {
		return &PhaseError{Phase: PhaseLoading, File: a.config.PathsPath, Err: err}
	}
	a.logger.Debug("Documents loaded.")

	rows, err := a.compile(ctx, mixDoc, pathsDoc)
	if err != nil {
		return err
	}

	if err := a.emit(rows); err != nil {
		return &PhaseError{Phase: PhaseOutput, Err: err}
	}

	a.logger.Debug("Run finished.", "rows", len(rows))
	return nil
}

// compile validates both documents and turns them into quantized rows.
func (a *App) compile(ctx context.Context, mixDoc, pathsDoc *yaml.Node) ([]quantize.Row, error) {
	logger := ctxlog.FromContext(ctx)

	paths, err := mixture.DecodePaths(pathsDoc)
	if err != nil {
		return nil, &PhaseError{Phase: PhaseValidating, File: a.config.PathsPath, Err: err}
	}
	logger.Debug("Paths validated.", "entries", paths.Len())

	tree, diags, err := mixture.Decode(mixDoc, paths)
	logDiagnostics(logger, a.config.MixturePath, diags)
	if err != nil {
		return nil, &PhaseError{Phase: PhaseValidating, File: a.config.MixturePath, Err: err}
	}
	logger.Debug("Mixture validated.", "leaves", tree.Leaves())

	weights := mixture.Flatten(tree)
	if logger.Enabled(ctx, slog.LevelDebug) {
		logger.Debug("Mixture flattened.", "total", weights.Total(), "weights", spew.Sdump(weights.Items()))
	}

	rows, err := quantize.Quantize(weights, paths, a.config.Precision)
	if err != nil {
		return nil, &PhaseError{Phase: PhaseOutput, Err: err}
	}
	logger.Debug("Proportions quantized.", "rows", len(rows), "precision", a.config.Precision)

	return rows, nil
}

func (a *App) emit(rows []quantize.Row) error {
	if a.config.OutputPath == "" {
		return emit.New(a.outW, emit.ModeLines).Emit(rows)
	}

	if err := emit.WriteFile(a.config.OutputPath, rows); err != nil {
		return err
	}

	_, err := fmt.Fprintf(a.outW, "The datapath: %s\n", a.config.OutputPath)
	return err
}

func logDiagnostics(logger *slog.Logger, file string, diags *diagnostic.Diagnostics) {
	if diags == nil {
		return
	}

	for _, w := range diags.Warnings {
		logger.Warn(w.String(), "file", file, "code", w.Code)
	}

	for _, i := range diags.Infos {
		logger.Info(i.String(), "file", file, "code", i.Code)
	}
}
