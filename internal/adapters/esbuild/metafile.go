package esbuild

import (
	"bytes"
	"encoding/json"
	"path"
	"path/filepath"
	"strings"

	"go.trai.ch/crxbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// metafile is the part of esbuild's metafile describing outputs.
// All paths in it are relative to the build's working directory.
type metafile struct {
	Outputs map[string]metaOutput `json:"outputs"`
}

type metaOutput struct {
	Imports    []metaImport `json:"imports"`
	EntryPoint string       `json:"entryPoint,omitempty"`
	CSSBundle  string       `json:"cssBundle,omitempty"`
	Inputs     orderedKeys  `json:"inputs"`
}

type metaImport struct {
	Path     string `json:"path"`
	Kind     string `json:"kind"`
	External bool   `json:"external,omitempty"`
}

// orderedKeys decodes a JSON object into its keys in document order.
type orderedKeys []string

func (k *orderedKeys) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return err
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return err
		}
		*k = append(*k, key)
	}
	_, err := dec.Token()
	return err
}

func parseMetafile(raw string) (*metafile, error) {
	var m metafile
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, zerr.Wrap(err, domain.ErrMetafileParseFailed.Error())
	}
	return &m, nil
}

// layout converts between the path spaces of one build: the working directory
// used by the metafile, the output directory used by artifact file names, and
// absolute module ids.
type layout struct {
	root   string
	outDir string
}

// moduleID turns a metafile input key into an absolute module id. Keys from a
// plugin namespace ("ns:path") are kept verbatim.
func (l layout) moduleID(key string) string {
	p := filepath.FromSlash(key)
	switch {
	case filepath.IsAbs(p):
		return filepath.Clean(p)
	case strings.Contains(key, ":"):
		return key
	default:
		return filepath.Join(l.root, p)
	}
}

// fileName turns a metafile output key into a slash-separated name relative to outDir.
func (l layout) fileName(key string) string {
	abs := filepath.Join(l.root, filepath.FromSlash(key))
	rel, err := filepath.Rel(l.outDir, abs)
	if err != nil {
		return path.Clean(key)
	}
	return filepath.ToSlash(rel)
}

// outputKey is the metafile key of an absolute output path.
func (l layout) outputKey(abs string) string {
	rel, err := filepath.Rel(l.root, abs)
	if err != nil {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(rel)
}

// artifactFor builds the artifact of one output file.
func (l layout) artifactFor(abs string, contents []byte, meta metaOutput) domain.Artifact {
	name := l.fileName(l.outputKey(abs))
	if !isCode(name) {
		return domain.AssetChunk{File: name, Source: contents}
	}

	chunk := domain.CodeChunk{
		File:    name,
		Code:    string(contents),
		Modules: make([]string, 0, len(meta.Inputs)),
		Imports: make([]string, 0, len(meta.Imports)),
	}
	if meta.EntryPoint != "" {
		chunk.FacadeModuleID = l.moduleID(meta.EntryPoint)
	}
	for _, key := range meta.Inputs {
		chunk.Modules = append(chunk.Modules, l.moduleID(key))
	}
	for _, imp := range meta.Imports {
		if imp.External {
			chunk.Imports = append(chunk.Imports, imp.Path)
			continue
		}
		chunk.Imports = append(chunk.Imports, l.fileName(imp.Path))
	}
	return chunk
}

func isCode(name string) bool {
	switch path.Ext(name) {
	case ".js", ".mjs", ".cjs", ".css":
		return true
	default:
		return false
	}
}
