package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/xll-gen/finch/internal/asset"
	"github.com/xll-gen/finch/internal/config"
	"github.com/xll-gen/finch/internal/diff"
	"github.com/xll-gen/finch/internal/generator"
	"github.com/xll-gen/finch/internal/paths"
	"github.com/xll-gen/finch/internal/ui"
	"github.com/xll-gen/finch/pkg/log"
)

// flagValues holds the raw command-line flags before they are merged with the config file.
type flagValues struct {
	cFile    bool
	diff     bool
	config   string
	logLevel string
	logFile  string
}

// flags is bound to rootCmd.
var flags flagValues

func bindFlags(fs *pflag.FlagSet, f *flagValues) {
	fs.BoolVarP(&f.cFile, "c-file", "c", false, "Emit a separate {output}.c instead of an inline implementation")
	fs.BoolVar(&f.diff, "diff", false, "Show what would change instead of writing files")
	fs.StringVar(&f.config, "config", "", "Path to a finch.yaml configuration file")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&f.logFile, "log-file", "", "Write logs to this file instead of stderr")
}

// Options is the fully resolved input of one generation run.
type Options struct {
	Directory string
	Output    string
	CFile     bool
	Diff      bool
	LogLevel  string
	LogPath   string
}

// resolveOptions merges the config file, flags and positional arguments.
// Flags that were set explicitly override the config file.
//
// Parameters:
//   - fs: The parsed flag set, used to tell explicit flags from defaults.
//   - f: The values bound to fs.
//   - args: The positional arguments: directory and optional output name.
//
// Returns:
//   - Options: The merged options.
//   - error: An error if the config file cannot be loaded or is invalid.
func resolveOptions(fs *pflag.FlagSet, f *flagValues, args []string) (Options, error) {
	cfg := &config.Config{}
	if f.config != "" {
		loaded, err := config.Load(f.config)
		if err != nil {
			return Options{}, err
		}
		cfg = loaded
	}

	if len(args) > 1 {
		cfg.Output = args[1]
	}
	if fs.Changed("c-file") {
		cfg.CFile = f.cFile
	}
	if fs.Changed("log-level") {
		cfg.Logging.Level = f.logLevel
	}
	if fs.Changed("log-file") {
		cfg.Logging.Path = f.logFile
	}

	config.ApplyDefaults(cfg)
	if err := config.Validate(cfg); err != nil {
		return Options{}, err
	}

	return Options{
		Directory: args[0],
		Output:    cfg.Output,
		CFile:     cfg.CFile,
		Diff:      f.diff,
		LogLevel:  cfg.Logging.Level,
		LogPath:   cfg.Logging.Path,
	}, nil
}

// runGenerate scans the asset directory and writes the generated C code.
// With opts.Diff it prints the changes instead of writing.
//
// Returns:
//   - error: An error if any stage fails.
func runGenerate(opts Options) error {
	if err := log.Init(ui.Stderr, opts.LogPath, opts.LogLevel); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer log.Close()

	target, err := paths.Resolve(opts.Directory, opts.Output, opts.CFile)
	if err != nil {
		return err
	}

	root, err := asset.Scan(target.Dir)
	if err != nil {
		return err
	}
	if len(root.Children) == 0 {
		ui.PrintWarning("Empty", target.Dir+" has no entries; the generated struct is empty")
	}

	outputs, err := generator.Render(target, root)
	if err != nil {
		return err
	}

	if opts.Diff {
		return runDiff(outputs)
	}

	if err := generator.Write(outputs); err != nil {
		return err
	}
	for _, out := range outputs {
		ui.PrintSuccess("Generated", out.Path)
	}
	return nil
}

// runDiff compares each rendered output with the file on disk.
func runDiff(outputs []generator.Output) error {
	ui.PrintHeader("Pending changes")
	changed := 0
	for _, out := range outputs {
		old, err := os.ReadFile(out.Path)
		exists := err == nil
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to read %s: %w", out.Path, err)
		}
		if diff.Render(ui.Stdout, out.Path, string(old), exists, string(out.Content)) {
			changed++
		}
	}
	if changed == 0 {
		ui.PrintSuccess("Up to date", "nothing to write")
	}
	return nil
}
