// Package types defines the core types and interfaces used throughout
// podkeeper: the dependency units a plugin declares (declarations, sources
// and libraries), the resolved pod payloads that end up in the ledger and
// the Podfile, the per-call install options and the FS abstraction the
// persisted stores are written through.
package types
