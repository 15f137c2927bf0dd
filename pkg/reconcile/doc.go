// Package reconcile keeps a project's Podfile in sync with the dependency
// units its plugins request.
//
// Every unit (a Podfile declaration, a spec source or a pod) is reference
// counted in the ledger. Adding a plugin increments the count of the units
// it declares and writes new ones into the Podfile; removing it decrements
// them and drops from the Podfile the units no other plugin still needs.
// The ledger is written on every call, the Podfile only when its content
// changed, and the external installer runs only after the Podfile was
// written.
//
// Registered library payloads are never overwritten: when a second plugin
// requests the same pod with a different pin, the first registration is
// kept and a conflict is reported.
package reconcile
