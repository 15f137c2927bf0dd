package types

import (
	"io/fs"
)

// FS is the filesystem interface required for podkeeper's persisted stores
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Rename(oldpath, newpath string) error
	Remove(name string) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
}
