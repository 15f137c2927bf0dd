// Package testutil provides helpers shared by podkeeper's tests.
//
// Key components:
//   - File helpers over real temporary directories
//   - MockInstaller and MockToolCheck, testify mocks of the installer
//     collaborators
//   - PluginBuilder: declarative plugin directory setup
//
// Engine and store tests run against filesystem.NewMemory; command tests
// use real temporary project directories.
package testutil
