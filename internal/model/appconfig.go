package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default packing settings applied to new sessions
	DefaultContainerWidth  float64   `json:"default_container_width"`
	DefaultContainerHeight float64   `json:"default_container_height"`
	DefaultHeuristic       Heuristic `json:"default_heuristic"`
	DefaultSortDescending  bool      `json:"default_sort_descending"`

	// Random rectangle generator bounds (inclusive)
	MinRandomSize int `json:"min_random_size"`
	MaxRandomSize int `json:"max_random_size"`

	// Application preferences
	ShowFreeRects bool   `json:"show_free_rects"`
	LastExportDir string `json:"last_export_dir"`
	Theme         string `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultContainerWidth:  defaults.ContainerWidth,
		DefaultContainerHeight: defaults.ContainerHeight,
		DefaultHeuristic:       defaults.Heuristic,
		DefaultSortDescending:  defaults.SortDescending,
		MinRandomSize:          defaults.MinRandomSize,
		MaxRandomSize:          defaults.MaxRandomSize,
		ShowFreeRects:          false,
		LastExportDir:          "",
		Theme:                  "system",
	}
}

// ApplyToSettings copies the default values from AppConfig into a PackSettings struct.
// Zero or missing values in the config leave the corresponding setting untouched,
// so a config written by an older version still yields a usable container.
func (c AppConfig) ApplyToSettings(s *PackSettings) {
	if c.DefaultContainerWidth > 0 {
		s.ContainerWidth = c.DefaultContainerWidth
	}
	if c.DefaultContainerHeight > 0 {
		s.ContainerHeight = c.DefaultContainerHeight
	}
	if c.DefaultHeuristic != "" {
		s.Heuristic = c.DefaultHeuristic
	}
	s.SortDescending = c.DefaultSortDescending
	if c.MinRandomSize > 0 {
		s.MinRandomSize = c.MinRandomSize
	}
	if c.MaxRandomSize >= s.MinRandomSize {
		s.MaxRandomSize = c.MaxRandomSize
	}
}
