package domain

const (
	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "crxbuild.yaml"

	// ManifestFileName is the name of the extension manifest file.
	ManifestFileName = "manifest.json"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)
