package shader

import (
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/ejricha/glpipeline/pkg/encoding"
)

// Source is the text of one stage, as read from disk.
type Source struct {
	Stage Stage
	Path  string
	Text  string
}

// Sources reads stage source text relative to a root.
type Sources struct {
	fsys fs.FS
	root string
}

// NewSources returns a loader over fsys. root only labels paths in errors.
func NewSources(fsys fs.FS, root string) *Sources {
	return &Sources{fsys: fsys, root: root}
}

// DirSources returns a loader rooted at a directory on disk.
func DirSources(dir string) *Sources {
	return NewSources(os.DirFS(dir), dir)
}

// Root returns the label of the source root.
func (s *Sources) Root() string {
	return s.root
}

// Load reads rel for the given stage. A leading byte order mark is stripped.
// A file that cannot be opened or read is an *IOError; Load never falls back
// to empty text.
func (s *Sources) Load(stage Stage, rel string) (Source, error) {
	name := path.Clean(strings.TrimPrefix(strings.ReplaceAll(rel, "\\", "/"), "./"))
	full := s.display(rel)
	if !fs.ValidPath(name) || name == "." {
		return Source{}, &IOError{Path: full, Err: fs.ErrInvalid}
	}

	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return Source{}, &IOError{Path: full, Err: err}
	}

	return Source{Stage: stage, Path: rel, Text: encoding.DecodeText(data)}, nil
}

func (s *Sources) display(rel string) string {
	if s.root == "" {
		return rel
	}
	return strings.TrimSuffix(s.root, "/") + "/" + rel
}
