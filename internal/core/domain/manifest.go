package domain

// Manifest is the subset of an extension manifest the pipeline reads.
type Manifest struct {
	ManifestVersion int     `json:"manifest_version"`
	Name            string  `json:"name"`
	Version         string  `json:"version"`
	Action          *Action `json:"action,omitempty"`
}

// Action is the toolbar action declared by the manifest.
type Action struct {
	DefaultPopup string `json:"default_popup,omitempty"`
	DefaultTitle string `json:"default_title,omitempty"`
}

// PopupEntry returns the declared popup entry and whether one is declared.
func (m *Manifest) PopupEntry() (string, bool) {
	if m == nil || m.Action == nil || m.Action.DefaultPopup == "" {
		return "", false
	}
	return m.Action.DefaultPopup, true
}

// Project is the content of a project configuration file.
type Project struct {
	// ManifestPath is the absolute path of the manifest file.
	ManifestPath string
	Options      Options
}
