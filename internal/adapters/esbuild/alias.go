package esbuild

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/crxbuild/internal/core/domain"
)

const aliasPluginName = "crxbuild:alias"

// aliasResolved marks resolutions started by the alias plugin so that a
// replacement matching its own alias is not rewritten again.
type aliasResolved struct{}

// aliasPlugin rewrites import specifiers equal to an alias's Find, or starting
// with Find followed by a slash. Relative replacements are taken from root.
func aliasPlugin(root string, aliases []domain.Alias) api.Plugin {
	return api.Plugin{
		Name: aliasPluginName,
		Setup: func(build api.PluginBuild) {
			for _, alias := range aliases {
				if alias.Find == "" {
					continue
				}
				replacement := alias.Replacement
				if strings.HasPrefix(replacement, "./") || strings.HasPrefix(replacement, "../") {
					replacement = filepath.ToSlash(filepath.Join(root, filepath.FromSlash(replacement)))
				}
				find := alias.Find

				build.OnResolve(api.OnResolveOptions{Filter: "^" + regexp.QuoteMeta(find) + "(/.*)?$"},
					func(args api.OnResolveArgs) (api.OnResolveResult, error) {
						if _, ok := args.PluginData.(aliasResolved); ok {
							return api.OnResolveResult{}, nil
						}

						result := build.Resolve(replacement+strings.TrimPrefix(args.Path, find), api.ResolveOptions{
							Importer:   args.Importer,
							Namespace:  args.Namespace,
							ResolveDir: args.ResolveDir,
							Kind:       args.Kind,
							PluginData: aliasResolved{},
						})
						if len(result.Errors) > 0 {
							return api.OnResolveResult{Errors: result.Errors}, nil
						}
						return api.OnResolveResult{
							Path:      result.Path,
							External:  result.External,
							Namespace: result.Namespace,
						}, nil
					})
			}
		},
	}
}
