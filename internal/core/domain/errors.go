package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

var (
	// ErrEntryChunkNotFound is returned when a bundle holds no artifact for its own entry.
	ErrEntryChunkNotFound = zerr.New("entry chunk not found in bundle")

	// ErrOutputDirStatFailed is returned when the output directory cannot be inspected.
	ErrOutputDirStatFailed = zerr.New("failed to stat output directory")

	// ErrOutputDirCreateFailed is returned when an artifact's parent directory cannot be created.
	ErrOutputDirCreateFailed = zerr.New("failed to create artifact directory")

	// ErrArtifactWriteFailed is returned when an artifact cannot be written.
	ErrArtifactWriteFailed = zerr.New("failed to write artifact")

	// ErrUnknownArtifact is returned when an artifact is neither a code chunk nor an asset.
	ErrUnknownArtifact = zerr.New("unknown artifact type")

	// ErrBundleFailed is returned when the build engine reports errors.
	ErrBundleFailed = zerr.New("bundling failed")

	// ErrMetafileParseFailed is returned when the engine's metafile cannot be decoded.
	ErrMetafileParseFailed = zerr.New("failed to parse bundle metafile")

	// ErrUnsupportedPlugin is returned when a plugin was not built for the configured engine.
	ErrUnsupportedPlugin = zerr.New("plugin is not supported by the build engine")

	// ErrHTMLReadFailed is returned when an HTML entry cannot be read.
	ErrHTMLReadFailed = zerr.New("failed to read html entry")

	// ErrHTMLParseFailed is returned when an HTML entry cannot be parsed.
	ErrHTMLParseFailed = zerr.New("failed to parse html entry")

	// ErrHTMLRenderFailed is returned when a rewritten HTML entry cannot be rendered.
	ErrHTMLRenderFailed = zerr.New("failed to render html entry")

	// ErrManifestReadFailed is returned when the manifest file cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read manifest")

	// ErrManifestParseFailed is returned when the manifest file is not valid JSON.
	ErrManifestParseFailed = zerr.New("failed to parse manifest")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidAlias is returned when an alias in the config file has no find pattern.
	ErrInvalidAlias = zerr.New("alias must define a find pattern")

	// ErrFailedToGetRoot is returned when the project root path cannot be determined.
	ErrFailedToGetRoot = zerr.New("failed to get absolute path of project root")

	// ErrWatcherStartFailed is returned when the file watcher cannot be started.
	ErrWatcherStartFailed = zerr.New("failed to start file watcher")

	// ErrUnknownOutputMode is returned when the requested output mode is not known.
	ErrUnknownOutputMode = zerr.New("unknown output mode")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")
)

// EntryNotFoundError reports that no artifact of a bundle represents its entry.
// It matches ErrEntryChunkNotFound with errors.Is.
type EntryNotFoundError struct {
	Entry string
	// FacadeModuleID is the absolute module id a code chunk was expected to carry.
	FacadeModuleID string
	Artifacts      int
}

func (e *EntryNotFoundError) Error() string {
	return fmt.Sprintf("%s: entry %q (module %s) not among %d artifacts",
		ErrEntryChunkNotFound.Error(), e.Entry, e.FacadeModuleID, e.Artifacts)
}

// Is reports whether target is ErrEntryChunkNotFound.
func (e *EntryNotFoundError) Is(target error) bool {
	return target == ErrEntryChunkNotFound
}
