package config

// KeyMappings defines all configurable key bindings of the board
type KeyMappings struct {
	// Tasks
	MoveTaskLeft  string `yaml:"move_task_left"`
	MoveTaskRight string `yaml:"move_task_right"`
	ViewTask      string `yaml:"view_task"`
	DeleteTask    string `yaml:"delete_task"`

	// Navigation
	PrevColumn string `yaml:"prev_column"`
	NextColumn string `yaml:"next_column"`
	PrevTask   string `yaml:"prev_task"`
	NextTask   string `yaml:"next_task"`

	// Other
	Notifications string `yaml:"notifications"`
	Reload        string `yaml:"reload"`
	ShowHelp      string `yaml:"show_help"`
	Quit          string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		// Tasks
		MoveTaskLeft:  "[",
		MoveTaskRight: "]",
		ViewTask:      "enter",
		DeleteTask:    "d",

		// Navigation
		PrevColumn: "h",
		NextColumn: "l",
		PrevTask:   "k",
		NextTask:   "j",

		// Other
		Notifications: "n",
		Reload:        "r",
		ShowHelp:      "?",
		Quit:          "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()

	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}

	fill(&k.MoveTaskLeft, defaults.MoveTaskLeft)
	fill(&k.MoveTaskRight, defaults.MoveTaskRight)
	fill(&k.ViewTask, defaults.ViewTask)
	fill(&k.DeleteTask, defaults.DeleteTask)
	fill(&k.PrevColumn, defaults.PrevColumn)
	fill(&k.NextColumn, defaults.NextColumn)
	fill(&k.PrevTask, defaults.PrevTask)
	fill(&k.NextTask, defaults.NextTask)
	fill(&k.Notifications, defaults.Notifications)
	fill(&k.Reload, defaults.Reload)
	fill(&k.ShowHelp, defaults.ShowHelp)
	fill(&k.Quit, defaults.Quit)
}
