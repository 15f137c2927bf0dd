// Package filesystem provides the types.FS podkeeper persists its ledger
// and Podfile through. Every backend is an afero filesystem: the OS one in
// production and a MemMapFs in tests.
package filesystem
