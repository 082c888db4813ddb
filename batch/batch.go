// Package batch processes a directory of PDF files and writes one JSON
// result per input.
package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tsawler/pdfoutline/format"
	"github.com/tsawler/pdfoutline/model"
	"github.com/tsawler/pdfoutline/pipeline"
)

// OutlineFunc produces the result for the PDF at path.
type OutlineFunc func(ctx context.Context, path string) model.Result

// Summary counts what a run did.
type Summary struct {
	Files       int
	Succeeded   int
	Failed      int
	WriteErrors int
}

// Runner processes every PDF in an input directory, one document at a time.
type Runner struct {
	inputDir  string
	outputDir string
	outline   OutlineFunc
	logger    *zap.Logger
}

// NewRunner creates a runner. A nil logger disables logging.
func NewRunner(inputDir, outputDir string, outline OutlineFunc, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{inputDir: inputDir, outputDir: outputDir, outline: outline, logger: logger}
}

// Run processes the whole input directory. The error is non-nil only when
// the input directory cannot be listed or the output directory cannot be
// created; per-file failures are written to that file's JSON.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	var sum Summary

	files, err := Discover(r.inputDir)
	if err != nil {
		return sum, err
	}
	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return sum, fmt.Errorf("failed to create output directory: %w", err)
	}

	r.logger.Info("batch started",
		zap.String("input", r.inputDir),
		zap.String("output", r.outputDir),
		zap.Int("files", len(files)))

	for _, path := range files {
		sum.Files++
		res, werr := r.ProcessFile(ctx, path)
		if res.OK() {
			sum.Succeeded++
		} else {
			sum.Failed++
		}
		if werr != nil {
			sum.WriteErrors++
		}
	}

	r.logger.Info("batch finished",
		zap.Int("files", sum.Files),
		zap.Int("succeeded", sum.Succeeded),
		zap.Int("failed", sum.Failed),
		zap.Int("write_errors", sum.WriteErrors))
	return sum, nil
}

// ProcessFile produces and writes the result for a single input file. The
// returned error reports only a failure to write the output.
func (r *Runner) ProcessFile(ctx context.Context, path string) (model.Result, error) {
	start := time.Now()
	log := r.logger.With(zap.String("file", filepath.Base(path)))

	res := r.process(ctx, path)
	if res.OK() {
		log.Info("document processed",
			zap.Int("entries", len(res.Outline.Entries)),
			zap.Duration("duration", time.Since(start)))
	} else {
		log.Warn("document failed",
			zap.Error(res.Err),
			zap.Duration("duration", time.Since(start)))
	}

	out := OutputPath(r.outputDir, path)
	if err := WriteResult(out, res); err != nil {
		log.Error("failed to write result", zap.String("output", out), zap.Error(err))
		return res, err
	}
	return res, nil
}

func (r *Runner) process(ctx context.Context, path string) (res model.Result) {
	defer func() {
		if p := recover(); p != nil {
			res = model.Failure(fmt.Errorf("internal error: %v", p))
		}
	}()

	f, err := format.DetectFile(path)
	if err != nil {
		return model.Failure(fmt.Errorf("%w: %v", pipeline.ErrMalformedDocument, err))
	}
	if f != format.PDF {
		return model.Failure(fmt.Errorf("%w: missing %%PDF- header", pipeline.ErrMalformedDocument))
	}
	return r.outline(ctx, path)
}

// Discover lists the PDF files in dir, matched by extension without regard
// to case, in lexicographic order.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || format.Detect(e.Name()) != format.PDF {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}

// OutputPath maps dir/name.pdf onto outDir/name.json.
func OutputPath(outDir, inputPath string) string {
	base := filepath.Base(inputPath)
	return filepath.Join(outDir, strings.TrimSuffix(base, filepath.Ext(base))+".json")
}

// WriteResult writes res as indented JSON. The file is written to a
// temporary name in the same directory and renamed, so readers never see a
// partial file.
func WriteResult(path string, res model.Result) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	enc := json.NewEncoder(tmp)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to rename %s: %w", tmpName, err)
	}
	return nil
}
