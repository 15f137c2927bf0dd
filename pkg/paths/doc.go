// Package paths locates a podkeeper project and the files it persists:
// the project config, the ledger and the Podfile.
package paths
