package esbuild

import (
	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/crxbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// Plugin is an esbuild plugin usable as a domain.Plugin.
type Plugin struct {
	plugin api.Plugin
}

// WrapPlugin makes p passable in domain.Options.Plugins.
func WrapPlugin(p api.Plugin) *Plugin {
	return &Plugin{plugin: p}
}

// PluginName returns the esbuild plugin name.
func (p *Plugin) PluginName() string {
	return p.plugin.Name
}

// enginePlugins unwraps plugins. Plugins not created by WrapPlugin are rejected.
func enginePlugins(plugins []domain.Plugin) ([]api.Plugin, error) {
	out := make([]api.Plugin, 0, len(plugins))
	for _, p := range plugins {
		wrapped, ok := p.(*Plugin)
		if ok && wrapped != nil {
			out = append(out, wrapped.plugin)
			continue
		}

		name := "<nil>"
		if p != nil && !ok {
			name = p.PluginName()
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrUnsupportedPlugin, "invalid build plugin"), "plugin", name)
	}
	return out, nil
}
