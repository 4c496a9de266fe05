package diff

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/xll-gen/finch/internal/ui"
)

// contextLines is the number of unchanged lines kept on each side of a change.
const contextLines = 3

// Render writes a colored diff between the file currently on disk and the
// newly generated content. exists is false when the file is not on disk yet.
// It reports whether the content would change.
func Render(w io.Writer, path string, old string, exists bool, generated string) bool {
	switch {
	case !exists:
		fmt.Fprintf(w, "%s%s%s (new file, %d bytes)\n", ui.ColorBold, path, ui.ColorReset, len(generated))
		return true
	case old == generated:
		fmt.Fprintf(w, "%s%s%s (unchanged)\n", ui.ColorBold, path, ui.ColorReset)
		return false
	}

	fmt.Fprintf(w, "%s%s%s\n", ui.ColorBold, path, ui.ColorReset)

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(old, generated, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	for i, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			fmt.Fprintf(w, "%s%s%s", ui.ColorGreen, d.Text, ui.ColorReset)
		case diffmatchpatch.DiffDelete:
			fmt.Fprintf(w, "%s%s%s", ui.ColorRed, d.Text, ui.ColorReset)
		default:
			fmt.Fprint(w, trimEqual(d.Text, i == 0, i == len(diffs)-1))
		}
	}
	if !strings.HasSuffix(generated, "\n") {
		fmt.Fprintln(w)
	}
	return true
}

// trimEqual collapses a long unchanged run to its edges.
// The leading run keeps only its tail and the trailing run only its head.
func trimEqual(text string, first, last bool) string {
	if first && last {
		return text
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) <= 2*contextLines+1 {
		return text
	}

	keepHead, keepTail := contextLines, contextLines
	if first {
		keepHead = 0
	}
	if last {
		keepTail = 0
	}
	head := strings.Join(lines[:keepHead], "")
	tail := strings.Join(lines[len(lines)-keepTail:], "")
	return head + marker(len(lines)-keepHead-keepTail) + tail
}

func marker(n int) string {
	return fmt.Sprintf("%s... %d unchanged lines ...%s\n", ui.ColorCyan, n, ui.ColorReset)
}
