package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/BinPacker/internal/model"
)

// DefaultPresetsPath returns ~/.binpacker/presets.json.
func DefaultPresetsPath() string {
	return filepath.Join(DefaultConfigDir(), "presets.json")
}

// SavePresets writes the preset store to path.
func SavePresets(path string, store model.PresetStore) error {
	return writeJSON(path, store)
}

// LoadPresets reads the preset store from path. A missing file yields the
// default presets and no error.
func LoadPresets(path string) (model.PresetStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultPresetStore(), nil
		}
		return model.PresetStore{}, fmt.Errorf("failed to read presets: %w", err)
	}

	var store model.PresetStore
	if err := json.Unmarshal(data, &store); err != nil {
		return model.PresetStore{}, fmt.Errorf("failed to parse presets: %w", err)
	}
	if store.Presets == nil {
		store.Presets = []model.ContainerPreset{}
	}
	return store, nil
}

// MergePresets adds every imported preset whose ID is not already present
// in existing and returns the number added.
func MergePresets(existing *model.PresetStore, imported model.PresetStore) int {
	known := make(map[string]bool, len(existing.Presets))
	for _, p := range existing.Presets {
		known[p.ID] = true
	}

	added := 0
	for _, p := range imported.Presets {
		if known[p.ID] {
			continue
		}
		existing.Add(p)
		known[p.ID] = true
		added++
	}
	return added
}
