package asset

import (
	"path/filepath"
	"strings"
)

// Kind selects how a file is embedded in the generated C code.
type Kind int

const (
	// BytesAsset files are emitted as a uint8_t array of hex literals.
	BytesAsset Kind = iota
	// StringAsset files are emitted as an escaped, null-terminated string literal.
	StringAsset
)

// String returns a readable name for the kind.
func (k Kind) String() string {
	switch k {
	case StringAsset:
		return "string"
	default:
		return "bytes"
	}
}

// stringExtensions is the set of extensions embedded as text.
var stringExtensions = map[string]bool{
	"txt":  true,
	"json": true,
	"xml":  true,
	"csv":  true,
	"html": true,
	"htm":  true,
	"css":  true,
	"js":   true,
	"md":   true,
	"toml": true,
	"rs":   true,
	"glsl": true,
	"frag": true,
	"vert": true,
}

// Classify returns the kind of the file at path. It only looks at the extension,
// which is matched case-sensitively.
func Classify(path string) Kind {
	ext, ok := Extension(filepath.Base(path))
	if ok && stringExtensions[ext] {
		return StringAsset
	}
	return BytesAsset
}

// splitName splits a file name into stem and extension.
// A leading dot belongs to the stem, so ".bashrc" has no extension.
func splitName(name string) (stem, ext string, hasExt bool) {
	if name == ".." {
		return name, "", false
	}
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return name, "", false
	}
	return name[:i], name[i+1:], true
}

// Stem returns name without its final extension.
func Stem(name string) string {
	stem, _, _ := splitName(name)
	return stem
}

// Extension returns the text after the final dot of name.
// The boolean is false when name has no extension.
func Extension(name string) (string, bool) {
	_, ext, ok := splitName(name)
	return ext, ok
}

// Identifier derives the C field name for a file or directory name.
func Identifier(name string) string {
	return strings.ReplaceAll(Stem(name), "-", "_")
}
