package popup

import "go.trai.ch/crxbuild/internal/core/domain"

// extractModules flattens a bundle into the ids its code chunks reference.
// Assets contribute nothing. The result is a reachability list, not a set.
func extractModules(bundle domain.Bundle) []string {
	modules := make([]string, 0, len(bundle))
	for _, artifact := range bundle {
		switch a := artifact.(type) {
		case domain.CodeChunk:
			modules = append(modules, a.Modules...)
			modules = append(modules, a.Imports...)
		case domain.AssetChunk:
			// assets carry no module graph
		}
	}
	return modules
}
