package generator

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/xll-gen/finch/internal/asset"
	"github.com/xll-gen/finch/internal/paths"
)

// ErrOutputCreate is returned when an output file cannot be created.
var ErrOutputCreate = errors.New("invalid output path")

// Output is a rendered file that has not been written yet.
type Output struct {
	Path    string
	Content []byte
}

// templateData is the data passed to the header and implementation templates.
type templateData struct {
	Name       string
	SingleFile bool
	Root       *asset.Node
}

// RenderHeader writes the C header declaring the asset struct type and its extern instance.
func RenderHeader(w io.Writer, name string, root *asset.Node) error {
	data := templateData{Name: name, Root: root}
	if err := executeTemplate("header.h.tmpl", w, data, GetCommonFuncMap()); err != nil {
		return fmt.Errorf("failed to render header: %w", err)
	}
	return nil
}

// RenderImpl writes the definition of the asset instance.
// In single-file mode the definition is guarded by {NAME}_IMPLEMENTATION,
// otherwise it includes "{name}.h".
func RenderImpl(w io.Writer, name string, root *asset.Node, singleFile bool) error {
	data := templateData{Name: name, SingleFile: singleFile, Root: root}
	if err := executeTemplate("impl.c.tmpl", w, data, GetCommonFuncMap()); err != nil {
		return fmt.Errorf("failed to render implementation: %w", err)
	}
	return nil
}

// Render produces the output files for target from the scanned tree.
// Both the header and the implementation are rendered from the same tree,
// so field order and initializer order always agree.
//
// Parameters:
//   - target: The resolved output target.
//   - root: The asset tree returned by asset.Scan.
//
// Returns:
//   - []Output: The header, followed by the C source in two-file mode.
//   - error: An error if rendering fails.
func Render(target *paths.Target, root *asset.Node) ([]Output, error) {
	var header bytes.Buffer
	if err := RenderHeader(&header, target.Name, root); err != nil {
		return nil, err
	}

	if target.SingleFile() {
		if err := RenderImpl(&header, target.Name, root, true); err != nil {
			return nil, err
		}
		return []Output{{Path: target.HeaderPath, Content: header.Bytes()}}, nil
	}

	var source bytes.Buffer
	if err := RenderImpl(&source, target.Name, root, false); err != nil {
		return nil, err
	}
	return []Output{
		{Path: target.HeaderPath, Content: header.Bytes()},
		{Path: target.SourcePath, Content: source.Bytes()},
	}, nil
}

// Write creates or truncates each output file and writes its content.
func Write(outputs []Output) error {
	for _, out := range outputs {
		if err := writeOutput(out); err != nil {
			return err
		}
		slog.Debug("wrote output", "path", out.Path, "bytes", len(out.Content))
	}
	return nil
}

func writeOutput(out Output) error {
	f, err := os.Create(out.Path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrOutputCreate, out.Path, err)
	}
	defer f.Close()

	if _, err := f.Write(out.Content); err != nil {
		return fmt.Errorf("failed to write %s: %w", out.Path, err)
	}
	return f.Close()
}
