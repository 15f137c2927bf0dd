// Package installer wraps the external dependency installer (CocoaPods'
// "pod install") and the capability check that must pass before it runs.
//
// The installer is slow and touches the network, so callers only invoke it
// when the Podfile actually changed. It inherits the console, has no
// timeout and is never retried.
package installer
