package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/tsawler/pdfoutline/internal/pdftest"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	if err := os.WriteFile(path, []byte("input_dir: /from/file\npipeline:\n  workers: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		flags   flags
		input   string
		workers int
		timeout time.Duration
		wantErr bool
	}{
		{"defaults", flags{}, "/app/input", 0, 10 * time.Second, false},
		{"file", flags{configPath: path}, "/from/file", 2, 10 * time.Second, false},
		{"flags override file", flags{configPath: path, input: "/cli", workers: 5, timeout: time.Second}, "/cli", 5, time.Second, false},
		{"bad level", flags{logLevel: "chatty"}, "", 0, 0, true},
		{"missing file", flags{configPath: filepath.Join(dir, "nope.yaml")}, "", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loadConfig(tt.flags)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("loadConfig failed: %v", err)
			}
			if cfg.InputDir != tt.input {
				t.Errorf("InputDir = %q, want %q", cfg.InputDir, tt.input)
			}
			if tt.workers > 0 && cfg.Pipeline.Workers != tt.workers {
				t.Errorf("Workers = %d, want %d", cfg.Pipeline.Workers, tt.workers)
			}
			if cfg.Pipeline.Timeout != tt.timeout {
				t.Errorf("Timeout = %s, want %s", cfg.Pipeline.Timeout, tt.timeout)
			}
		})
	}
}

func TestRun(t *testing.T) {
	in, out := t.TempDir(), filepath.Join(t.TempDir(), "out")
	pdftest.WriteFile(t, in, "one.pdf", pdftest.Doc{Pages: []pdftest.Page{pdftest.Lines("Hello")}})

	cfg, err := loadConfig(flags{input: in, output: out})
	if err != nil {
		t.Fatal(err)
	}
	if err := run(context.Background(), cfg, "", zap.NewNop()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "one.json")); err != nil {
		t.Errorf("one.json missing: %v", err)
	}

	single := filepath.Join(t.TempDir(), "single")
	cfg.OutputDir = single
	if err := run(context.Background(), cfg, filepath.Join(in, "one.pdf"), zap.NewNop()); err != nil {
		t.Fatalf("single-file run failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(single, "one.json")); err != nil {
		t.Errorf("single/one.json missing: %v", err)
	}
}

func TestRunMissingInput(t *testing.T) {
	cfg, err := loadConfig(flags{input: filepath.Join(t.TempDir(), "missing"), output: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	if err := run(context.Background(), cfg, "", zap.NewNop()); err == nil {
		t.Error("expected error for missing input directory")
	}
}
