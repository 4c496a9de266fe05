package asset

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// ErrInvalidUTF8 is returned when a file classified as StringAsset is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("stream did not contain valid UTF-8")

// Node is one entry of the asset tree: either a directory or a file.
// The tree is read from disk once and rendered from memory afterwards.
type Node struct {
	// Name is the entry's base name on disk.
	Name string
	// Path is the full path the entry was read from.
	Path string
	// IsDir reports whether the node is a directory.
	IsDir bool
	// Kind is the embedding strategy. Only meaningful for files.
	Kind Kind
	// Data holds the file contents.
	Data []byte
	// Children are the directory's entries in scan order.
	Children []*Node
}

// Ident returns the C identifier for the node.
func (n *Node) Ident() string {
	return Identifier(n.Name)
}

// IsString reports whether the node is a file embedded as a string literal.
func (n *Node) IsString() bool {
	return !n.IsDir && n.Kind == StringAsset
}

// Size returns the byte length of the file contents.
func (n *Node) Size() int {
	return len(n.Data)
}

// Stats counts the entries below a node.
type Stats struct {
	Dirs  int
	Files int
	Bytes int
}

// Stats walks the subtree and counts directories, files and content bytes.
// The node itself is not counted.
func (n *Node) Stats() Stats {
	var s Stats
	for _, c := range n.Children {
		if c.IsDir {
			s.Dirs++
			cs := c.Stats()
			s.Dirs += cs.Dirs
			s.Files += cs.Files
			s.Bytes += cs.Bytes
			continue
		}
		s.Files++
		s.Bytes += c.Size()
	}
	return s
}

// Scan reads the directory tree rooted at dir into memory.
// Entries are visited in os.ReadDir order and symlinks are followed.
func Scan(dir string) (*Node, error) {
	root := &Node{Name: filepath.Base(dir), Path: dir, IsDir: true}
	if err := scanDir(root); err != nil {
		return nil, err
	}

	s := root.Stats()
	slog.Debug("scanned asset tree", "dir", dir, "dirs", s.Dirs, "files", s.Files, "bytes", s.Bytes)
	return root, nil
}

func scanDir(dir *Node) error {
	entries, err := os.ReadDir(dir.Path)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir.Path, err)
	}

	for _, entry := range entries {
		path := filepath.Join(dir.Path, entry.Name())

		// Stat rather than entry.Type() so symlinked directories are descended into.
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", path, err)
		}

		node := &Node{Name: entry.Name(), Path: path}
		if info.IsDir() {
			node.IsDir = true
			if err := scanDir(node); err != nil {
				return err
			}
		} else if err := readFile(node); err != nil {
			return err
		}
		dir.Children = append(dir.Children, node)
	}
	return nil
}

func readFile(node *Node) error {
	data, err := os.ReadFile(node.Path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", node.Path, err)
	}

	node.Kind = Classify(node.Path)
	if node.Kind == StringAsset && !utf8.Valid(data) {
		return fmt.Errorf("%s: %w", node.Path, ErrInvalidUTF8)
	}
	node.Data = data

	slog.Debug("read asset", "path", node.Path, "kind", node.Kind, "size", len(data))
	return nil
}
