// Package emit writes quantized rows in the formats a data loader consumes.
package emit

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"datamix-tools/internal/quantize"
)

// Mode selects the output layout.
type Mode int

const (
	// ModeLine writes every "<proportion> <path>" pair on one line, separated
	// by single spaces, without a trailing newline.
	ModeLine Mode = iota
	// ModeLines writes one "<proportion> <path>" pair per line.
	ModeLines
)

// Emitter formats rows onto a sink.
type Emitter struct {
	w    io.Writer
	mode Mode
}

// New returns an Emitter writing to w.
func New(w io.Writer, mode Mode) *Emitter {
	return &Emitter{w: w, mode: mode}
}

// Emit writes rows in the order given.
func (e *Emitter) Emit(rows []quantize.Row) error {
	bw := bufio.NewWriter(e.w)

	for i, r := range rows {
		if e.mode == ModeLine && i > 0 {
			if err := bw.WriteByte(' '); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintf(bw, "%s %s", r.Decimal(), r.Path); err != nil {
			return err
		}

		if e.mode == ModeLines {
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

// WriteFile writes rows to path as a single line. The content goes to a
// temporary file in the same directory first and is renamed into place, so
// path is either left untouched or fully written.
func WriteFile(path string, rows []quantize.Row) (err error) {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create output file in %s: %w", dir, err)
	}

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = New(tmp, ModeLine).Emit(rows); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}

	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}

	return nil
}
