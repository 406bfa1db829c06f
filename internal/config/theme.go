package config

// ColorScheme defines all configurable color values of the board
type ColorScheme struct {
	// Preset name ("default" or "monochrome")
	Preset string `yaml:"preset"`

	Accent         string `yaml:"accent"`
	ColumnBorder   string `yaml:"column_border"`
	TaskBackground string `yaml:"task_background"`
	SelectedBorder string `yaml:"selected_border"`
	SelectedBg     string `yaml:"selected_bg"`
	Title          string `yaml:"title"`
	Subtle         string `yaml:"subtle"`
	Normal         string `yaml:"normal"`

	// Priority colors
	PriorityLow      string `yaml:"priority_low"`
	PriorityMedium   string `yaml:"priority_medium"`
	PriorityHigh     string `yaml:"priority_high"`
	PriorityCritical string `yaml:"priority_critical"`

	// Notification colors (foreground/background pairs)
	InfoFg  string `yaml:"info_fg"`
	InfoBg  string `yaml:"info_bg"`
	ErrorFg string `yaml:"error_fg"`
	ErrorBg string `yaml:"error_bg"`
}

// DefaultColorScheme returns the default color scheme (purple theme)
func DefaultColorScheme() ColorScheme {
	return ColorScheme{
		Preset:           "default",
		Accent:           "#874BFD",
		ColumnBorder:     "#5F87D7",
		TaskBackground:   "#262626",
		SelectedBorder:   "#D75FD7",
		SelectedBg:       "#3A3A3A",
		Title:            "#D75FD7",
		Subtle:           "#585858",
		Normal:           "#D0D0D0",
		PriorityLow:      "#22C55E",
		PriorityMedium:   "#EAB308",
		PriorityHigh:     "#F97316",
		PriorityCritical: "#EF4444",
		InfoFg:           "#00AFFF",
		InfoBg:           "#00005F",
		ErrorFg:          "#FF0000",
		ErrorBg:          "#5F0000",
	}
}

// MonochromeColorScheme returns a black and white color scheme
func MonochromeColorScheme() ColorScheme {
	return ColorScheme{
		Preset:           "monochrome",
		Accent:           "#FFFFFF",
		ColumnBorder:     "#808080",
		TaskBackground:   "#000000",
		SelectedBorder:   "#FFFFFF",
		SelectedBg:       "#303030",
		Title:            "#FFFFFF",
		Subtle:           "#808080",
		Normal:           "#D0D0D0",
		PriorityLow:      "#A0A0A0",
		PriorityMedium:   "#C0C0C0",
		PriorityHigh:     "#E0E0E0",
		PriorityCritical: "#FFFFFF",
		InfoFg:           "#FFFFFF",
		InfoBg:           "#303030",
		ErrorFg:          "#FFFFFF",
		ErrorBg:          "#606060",
	}
}

// ApplyDefaults fills in missing color values from the selected preset
func (c *ColorScheme) ApplyDefaults() {
	base := DefaultColorScheme()
	if c.Preset == "monochrome" {
		base = MonochromeColorScheme()
	}

	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}

	fill(&c.Preset, base.Preset)
	fill(&c.Accent, base.Accent)
	fill(&c.ColumnBorder, base.ColumnBorder)
	fill(&c.TaskBackground, base.TaskBackground)
	fill(&c.SelectedBorder, base.SelectedBorder)
	fill(&c.SelectedBg, base.SelectedBg)
	fill(&c.Title, base.Title)
	fill(&c.Subtle, base.Subtle)
	fill(&c.Normal, base.Normal)
	fill(&c.PriorityLow, base.PriorityLow)
	fill(&c.PriorityMedium, base.PriorityMedium)
	fill(&c.PriorityHigh, base.PriorityHigh)
	fill(&c.PriorityCritical, base.PriorityCritical)
	fill(&c.InfoFg, base.InfoFg)
	fill(&c.InfoBg, base.InfoBg)
	fill(&c.ErrorFg, base.ErrorFg)
	fill(&c.ErrorBg, base.ErrorBg)
}
