// Package manifest reads and writes the project Podfile.
//
// podkeeper owns the whole file: it is regenerated from the active
// declarations, sources and pods plus fixed boilerplate (header comment,
// platform line, target and project names). Dirty tracking compares a
// fingerprint of the current serialization with the one taken when the
// file was loaded or last written, so a mutation that is undone within the
// same operation leaves the Podfile clean.
package manifest
