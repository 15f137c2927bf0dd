// Package variables resolves plugin-supplied placeholders.
//
// A library field in a plugin declaration is either a literal ("~> 4.0")
// or a reference to an install variable ("$AF_VERSION"). References are
// parsed once into a typed Value so that resolution never has to sniff
// strings again; a literal that needs a leading dollar is written "$$".
package variables
