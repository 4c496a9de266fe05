package cmd

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/xll-gen/finch/internal/paths"
	"github.com/xll-gen/finch/internal/ui"
)

// setupWorkspace creates an asset tree with a.txt and sub/b.bin, chdirs into a
// fresh output directory and captures ui output.
func setupWorkspace(t *testing.T) (assetsDir string, out *bytes.Buffer) {
	t.Helper()
	tempDir := t.TempDir()

	assetsDir = filepath.Join(tempDir, "assets")
	if err := os.MkdirAll(filepath.Join(assetsDir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(assetsDir, "a.txt"), []byte("hi"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(assetsDir, "sub", "b.bin"), []byte{0x01, 0x02}, 0644); err != nil {
		t.Fatal(err)
	}

	outDir := filepath.Join(tempDir, "out")
	if err := os.Mkdir(outDir, 0755); err != nil {
		t.Fatal(err)
	}
	origWd, _ := os.Getwd()
	if err := os.Chdir(outDir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(origWd) })

	out = &bytes.Buffer{}
	prevOut, prevErr, prevLog := ui.Stdout, ui.Stderr, slog.Default()
	ui.Stdout, ui.Stderr = out, out
	t.Cleanup(func() {
		ui.Stdout, ui.Stderr = prevOut, prevErr
		slog.SetDefault(prevLog)
	})

	return assetsDir, out
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

func TestGenerate_SingleFile(t *testing.T) {
	assetsDir, out := setupWorkspace(t)

	if err := runGenerate(Options{Directory: assetsDir, LogLevel: "warn"}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	header := readFile(t, "assets.h")
	checks := []string{
		"#ifndef ASSETS_H\n",
		"typedef struct {\nconst char a[2 + 1];\nconst size_t a_len;\nstruct {\nconst uint8_t b[2];\nconst size_t b_len;\n} sub;\n} __assets_t;\n",
		"extern const __assets_t assets;\n",
		"#ifdef ASSETS_IMPLEMENTATION\n",
		"const __assets_t assets = {\n\"hi\",\n2,\n{\n{\n0x01, 0x02,\n},\n2,\n},\n};\n",
		"#undef ASSETS_IMPLEMENTATION\n#endif\n",
	}
	for _, want := range checks {
		if !strings.Contains(header, want) {
			t.Errorf("assets.h missing %q\n%s", want, header)
		}
	}

	if _, err := os.Stat("assets.c"); !os.IsNotExist(err) {
		t.Error("assets.c should not exist in single-file mode")
	}
	if !strings.Contains(out.String(), "assets.h") {
		t.Errorf("expected success line for assets.h, got %q", out.String())
	}
}

func TestGenerate_TwoFile(t *testing.T) {
	assetsDir, _ := setupWorkspace(t)

	if err := runGenerate(Options{Directory: assetsDir, CFile: true, LogLevel: "warn"}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	header := readFile(t, "assets.h")
	if strings.Contains(header, "IMPLEMENTATION") || strings.Contains(header, "= {") {
		t.Errorf("assets.h should only contain the declaration:\n%s", header)
	}

	source := readFile(t, "assets.c")
	if !strings.HasPrefix(source, "#include \"assets.h\"\n") {
		t.Errorf("assets.c should start with the header include:\n%s", source)
	}
	if strings.Contains(source, "IMPLEMENTATION") {
		t.Errorf("assets.c should not contain a macro guard:\n%s", source)
	}
	if !strings.Contains(source, "const __assets_t assets = {\n\"hi\",\n2,\n{\n{\n0x01, 0x02,\n},\n2,\n},\n};\n") {
		t.Errorf("unexpected initializer:\n%s", source)
	}
}

func TestGenerate_OutputName(t *testing.T) {
	assetsDir, _ := setupWorkspace(t)

	if err := runGenerate(Options{Directory: assetsDir, Output: "res", LogLevel: "warn"}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	header := readFile(t, "res.h")
	if !strings.Contains(header, "} __res_t;") || !strings.Contains(header, "#ifdef RES_IMPLEMENTATION") {
		t.Errorf("unexpected header:\n%s", header)
	}
}

func TestGenerate_InvalidDirectory(t *testing.T) {
	setupWorkspace(t)

	err := runGenerate(Options{Directory: "does-not-exist", LogLevel: "warn"})
	if !errors.Is(err, paths.ErrInvalidDirectory) {
		t.Fatalf("expected ErrInvalidDirectory, got %v", err)
	}

	entries, _ := os.ReadDir(".")
	if len(entries) != 0 {
		t.Errorf("no output should be created, found %d entries", len(entries))
	}
}

func TestGenerate_NotADirectory(t *testing.T) {
	assetsDir, _ := setupWorkspace(t)

	err := runGenerate(Options{Directory: filepath.Join(assetsDir, "a.txt"), LogLevel: "warn"})
	if !errors.Is(err, paths.ErrNotADirectory) {
		t.Fatalf("expected ErrNotADirectory, got %v", err)
	}
}

func TestGenerate_InvalidUTF8LeavesNoOutput(t *testing.T) {
	assetsDir, _ := setupWorkspace(t)
	if err := os.WriteFile(filepath.Join(assetsDir, "bad.json"), []byte{0xc3, 0x28}, 0644); err != nil {
		t.Fatal(err)
	}

	if err := runGenerate(Options{Directory: assetsDir, LogLevel: "warn"}); err == nil {
		t.Fatal("expected an error for invalid UTF-8")
	}
	if _, err := os.Stat("assets.h"); !os.IsNotExist(err) {
		t.Error("assets.h should not be created when scanning fails")
	}
}

func TestGenerate_Diff(t *testing.T) {
	assetsDir, out := setupWorkspace(t)

	if err := runGenerate(Options{Directory: assetsDir, Diff: true, LogLevel: "warn"}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := os.Stat("assets.h"); !os.IsNotExist(err) {
		t.Error("--diff must not write files")
	}
	if !strings.Contains(out.String(), "new file") {
		t.Errorf("expected new file notice, got %q", out.String())
	}

	if err := runGenerate(Options{Directory: assetsDir, LogLevel: "warn"}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	before := readFile(t, "assets.h")

	out.Reset()
	if err := runGenerate(Options{Directory: assetsDir, Diff: true, LogLevel: "warn"}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(out.String(), "unchanged") {
		t.Errorf("expected unchanged notice, got %q", out.String())
	}
	if readFile(t, "assets.h") != before {
		t.Error("--diff modified assets.h")
	}
}

func TestGenerate_LogFile(t *testing.T) {
	assetsDir, _ := setupWorkspace(t)

	if err := runGenerate(Options{Directory: assetsDir, LogLevel: "debug", LogPath: "finch.log"}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	logs := readFile(t, "finch.log")
	if !strings.Contains(logs, "scanned asset tree") || !strings.Contains(logs, "files=2") {
		t.Errorf("unexpected log content:\n%s", logs)
	}
}

func parseFlags(t *testing.T, argv ...string) (Options, error) {
	t.Helper()
	fs := pflag.NewFlagSet("finch", pflag.ContinueOnError)
	var f flagValues
	bindFlags(fs, &f)
	if err := fs.Parse(argv); err != nil {
		t.Fatalf("flag parse failed: %v", err)
	}
	return resolveOptions(fs, &f, fs.Args())
}

func TestResolveOptions(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "finch.yaml")
	cfg := "output: fromconfig\nc_file: true\nlogging:\n  level: debug\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		argv []string
		want Options
	}{
		{
			name: "defaults",
			argv: []string{"assets"},
			want: Options{Directory: "assets", LogLevel: "warn"},
		},
		{
			name: "short c flag and output",
			argv: []string{"-c", "assets", "res"},
			want: Options{Directory: "assets", Output: "res", CFile: true, LogLevel: "warn"},
		},
		{
			name: "config file",
			argv: []string{"--config", cfgPath, "assets"},
			want: Options{Directory: "assets", Output: "fromconfig", CFile: true, LogLevel: "debug"},
		},
		{
			name: "flags override config",
			argv: []string{"--config", cfgPath, "--c-file=false", "--log-level", "error", "--diff", "assets", "res"},
			want: Options{Directory: "assets", Output: "res", Diff: true, LogLevel: "error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFlags(t, tt.argv...)
			if err != nil {
				t.Fatalf("resolveOptions failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveOptions() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolveOptions_InvalidLevel(t *testing.T) {
	if _, err := parseFlags(t, "--log-level", "loud", "assets"); err == nil || !strings.Contains(err.Error(), "invalid logging level") {
		t.Errorf("expected invalid level error, got %v", err)
	}
}
