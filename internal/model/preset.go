package model

import "github.com/google/uuid"

// ContainerPreset is a named, reusable container size.
type ContainerPreset struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewContainerPreset creates a new ContainerPreset with a generated ID.
func NewContainerPreset(name string, width, height float64) ContainerPreset {
	return ContainerPreset{
		ID:     uuid.New().String()[:8],
		Name:   name,
		Width:  width,
		Height: height,
	}
}

// ApplyToSettings sets the container dimensions of s to this preset.
func (cp ContainerPreset) ApplyToSettings(s *PackSettings) {
	s.ContainerWidth = cp.Width
	s.ContainerHeight = cp.Height
}

// PresetStore holds the user's saved container presets.
type PresetStore struct {
	Presets []ContainerPreset `json:"presets"`
}

// DefaultPresetStore returns a store populated with common container sizes.
func DefaultPresetStore() PresetStore {
	return PresetStore{
		Presets: []ContainerPreset{
			NewContainerPreset("Canvas 800x800", 800, 800),
			NewContainerPreset("A4 Portrait 210x297", 210, 297),
			NewContainerPreset("Plywood 2440x1220", 2440, 1220),
			NewContainerPreset("Sprite Atlas 1024x1024", 1024, 1024),
		},
	}
}

// Add appends a preset to the store.
func (ps *PresetStore) Add(p ContainerPreset) {
	ps.Presets = append(ps.Presets, p)
}

// Remove deletes the preset with the given ID. It returns false if no
// preset matched.
func (ps *PresetStore) Remove(id string) bool {
	for i := range ps.Presets {
		if ps.Presets[i].ID == id {
			ps.Presets = append(ps.Presets[:i], ps.Presets[i+1:]...)
			return true
		}
	}
	return false
}

// FindByName returns a pointer to the first preset with the given name, or nil.
func (ps *PresetStore) FindByName(name string) *ContainerPreset {
	for i := range ps.Presets {
		if ps.Presets[i].Name == name {
			return &ps.Presets[i]
		}
	}
	return nil
}

// Names returns the preset names for UI dropdowns.
func (ps PresetStore) Names() []string {
	names := make([]string, len(ps.Presets))
	for i, p := range ps.Presets {
		names[i] = p.Name
	}
	return names
}
