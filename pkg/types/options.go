package types

// InstallOptions are supplied per add or remove call and never persisted.
type InstallOptions struct {
	// Variables resolve "$NAME" references in library fields.
	Variables map[string]string
	// Link records that the plugin was added from a local checkout. It is
	// reported, not acted on.
	Link bool
	// AlternatePackaging is set when the project is packaged through the
	// alternate path; libraries flagged SkipInAlternatePackaging are ignored.
	AlternatePackaging bool
}
