package popup

import "go.trai.ch/crxbuild/internal/core/domain"

// findEntryArtifact returns the first artifact representing entry: a code chunk
// generated for the entry module, or an asset emitted under the entry's own name.
func findEntryArtifact(cfg domain.Config, entry string, bundle domain.Bundle) (domain.Artifact, error) {
	facade := cfg.EntryPath(entry)
	for _, artifact := range bundle {
		switch a := artifact.(type) {
		case domain.CodeChunk:
			if a.FacadeModuleID == facade {
				return a, nil
			}
		case domain.AssetChunk:
			if a.File == entry {
				return a, nil
			}
		}
	}
	return nil, &domain.EntryNotFoundError{
		Entry:          entry,
		FacadeModuleID: facade,
		Artifacts:      len(bundle),
	}
}
