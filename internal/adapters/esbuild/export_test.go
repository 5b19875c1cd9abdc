package esbuild

import "go.trai.ch/crxbuild/internal/core/domain"

// RewriteHTML parses the HTML page at file and renders it with outputs, a map from
// referenced module path to output file name and CSS bundle.
func RewriteHTML(file, root string, outputs map[string][2]string) ([]string, []byte, error) {
	page, err := readHTMLPage(file, root)
	if err != nil {
		return nil, nil, err
	}
	po := make(map[string]pageOutput, len(outputs))
	for module, out := range outputs {
		po[module] = pageOutput{file: out[0], cssBundle: out[1]}
	}
	src, err := page.render(po)
	return page.entryPoints(), src, err
}

// ParseOutputs decodes a metafile and returns the artifact built for the output key.
func ParseOutputs(raw, root, outDir, key string, contents []byte) (domain.Artifact, error) {
	meta, err := parseMetafile(raw)
	if err != nil {
		return nil, err
	}
	l := layout{root: root, outDir: outDir}
	return l.artifactFor(l.moduleID(key), contents, meta.Outputs[key]), nil
}
