package filesystem

import (
	"io/fs"

	"github.com/spf13/afero"

	"github.com/arthur-debert/podkeeper/pkg/types"
)

// store adapts an afero.Fs to types.FS. Stat, Rename, Remove and MkdirAll
// come straight from the embedded Fs.
type store struct {
	afero.Fs
}

// NewOS returns the real filesystem.
func NewOS() types.FS {
	return NewAferoFS(afero.NewOsFs())
}

// NewMemory returns an empty in-memory filesystem.
func NewMemory() types.FS {
	return NewAferoFS(afero.NewMemMapFs())
}

// NewAferoFS wraps any afero filesystem.
func NewAferoFS(fsys afero.Fs) types.FS {
	return &store{Fs: fsys}
}

// ReadFile returns the content of name. Directories are an error on every
// backend.
func (s *store) ReadFile(name string) ([]byte, error) {
	info, err := s.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return afero.ReadFile(s.Fs, name)
}

// WriteFile creates or truncates name with data.
func (s *store) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(s.Fs, name, data, perm)
}
