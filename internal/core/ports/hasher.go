package ports

// Hasher computes content fingerprints. Collectors use it to digest
// captured file contents and to derive source tarball filenames that embed
// their fingerprint.
type Hasher interface {
	// FileDigest returns the hex-encoded content digest of the file at path.
	FileDigest(path string) (string, error)

	// FingerprintName returns the file's basename with its content digest
	// embedded before the extension, e.g. "app.tar.gz" -> "app-0f1e...tar.gz".
	FingerprintName(path string) (string, error)
}
