package ports

// GlobalManifestPort reads and rewrites the sdk.version pin in
// global.json while leaving the rest of the document intact.
type GlobalManifestPort interface {
	ReadSDKVersion(path string) (string, error)

	// WriteSDKVersion fails without writing when the stored version
	// already equals the target.
	WriteSDKVersion(path string, version string) error
}
