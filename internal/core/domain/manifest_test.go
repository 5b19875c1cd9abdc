package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/crxbuild/internal/core/domain"
)

func TestManifest_PopupEntry(t *testing.T) {
	tests := []struct {
		name      string
		manifest  *domain.Manifest
		wantEntry string
		wantOK    bool
	}{
		{name: "nil manifest"},
		{name: "no action", manifest: &domain.Manifest{ManifestVersion: 3}},
		{name: "action without popup", manifest: &domain.Manifest{Action: &domain.Action{DefaultTitle: "t"}}},
		{
			name:      "popup declared",
			manifest:  &domain.Manifest{Action: &domain.Action{DefaultPopup: "popup.html"}},
			wantEntry: "popup.html",
			wantOK:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, ok := tt.manifest.PopupEntry()
			assert.Equal(t, tt.wantEntry, entry)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestArtifact_FileName(t *testing.T) {
	bundle := domain.Bundle{
		domain.CodeChunk{File: "assets/popup.js"},
		domain.AssetChunk{File: "popup.html"},
	}

	names := make([]string, 0, len(bundle))
	for _, a := range bundle {
		names = append(names, a.FileName())
	}
	assert.Equal(t, []string{"assets/popup.js", "popup.html"}, names)
}
