package domain

import "time"

// Artifact is one output file of a bundle.
// It is either a CodeChunk or an AssetChunk; the set is closed.
type Artifact interface {
	// FileName is the output path relative to the output directory, slash-separated.
	FileName() string

	artifact()
}

// CodeChunk is generated code emitted by the build engine.
type CodeChunk struct {
	File string
	Code string
	// FacadeModuleID is the absolute path of the source module this chunk is the
	// entry point for. Empty for shared chunks.
	FacadeModuleID string
	// Modules lists the source module ids bundled into the chunk, in engine order.
	Modules []string
	// Imports lists the file names of the chunks this chunk imports.
	Imports []string
}

// FileName returns the chunk's output file name.
func (c CodeChunk) FileName() string { return c.File }

func (CodeChunk) artifact() {}

// AssetChunk is a non-code resource copied into the bundle.
type AssetChunk struct {
	File   string
	Source []byte
}

// FileName returns the asset's output file name.
func (a AssetChunk) FileName() string { return a.File }

func (AssetChunk) artifact() {}

// Bundle is the ordered list of artifacts produced by one engine invocation for one entry.
type Bundle []Artifact

// ResolvedModule describes a materialized entry and the artifact holding its compiled output.
type ResolvedModule struct {
	Entry  string `json:"entry"`
	Bundle string `json:"bundle"`
}

// BuildReport describes one build attempt of a watch session.
type BuildReport struct {
	// Result is nil when the build failed or the manifest declares no popup.
	Result   *ResolvedModule
	Err      error
	Duration time.Duration
}
