package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xll-gen/finch/internal/asset"
)

var (
	// ErrInvalidDirectory is returned when the input path cannot be resolved.
	ErrInvalidDirectory = errors.New("invalid directory path")
	// ErrNotADirectory is returned when the input path exists but is not a directory.
	ErrNotADirectory = errors.New("path is not a directory")
	// ErrNoName is returned when no output name was given and none can be derived.
	ErrNoName = errors.New("cannot derive output name from directory")
)

// Target describes where the generated code for one asset directory goes.
type Target struct {
	// Dir is the absolute, symlink-free asset directory.
	Dir string
	// Base is the output base name, without extension.
	Base string
	// Name is the C-level name used for the struct, guards and include.
	Name string
	// HeaderPath is always "{Base}.h".
	HeaderPath string
	// SourcePath is "{Base}.c" in two-file mode and empty otherwise.
	SourcePath string
}

// SingleFile reports whether the implementation is appended to the header.
func (t *Target) SingleFile() bool {
	return t.SourcePath == ""
}

// Resolve validates directory and derives the output paths.
//
// Parameters:
//   - directory: The asset directory given by the user.
//   - output: The output base name. If empty, the stem of the directory name is used.
//   - cFile: Whether to emit a separate C source file.
//
// Returns:
//   - *Target: The resolved directory and output paths.
//   - error: ErrInvalidDirectory, ErrNotADirectory or ErrNoName.
func Resolve(directory, output string, cFile bool) (*Target, error) {
	abs, err := filepath.Abs(directory)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDirectory, directory)
	}
	dir, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDirectory, directory)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDirectory, directory)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, dir)
	}

	base := output
	if base == "" {
		base, err = dirStem(dir)
		if err != nil {
			return nil, err
		}
	}

	t := &Target{
		Dir:        dir,
		Base:       base,
		Name:       filepath.Base(base),
		HeaderPath: base + ".h",
	}
	if cFile {
		t.SourcePath = base + ".c"
	}
	return t, nil
}

func dirStem(dir string) (string, error) {
	name := filepath.Base(dir)
	if name == string(filepath.Separator) || name == "." {
		return "", fmt.Errorf("%w: %s", ErrNoName, dir)
	}
	return asset.Stem(name), nil
}
