package core

type (
	// Quote is an inspirational quote from the static dataset.
	Quote struct {
		Text     string `json:"text" yaml:"text"`
		Author   string `json:"author,omitempty" yaml:"author,omitempty"`
		Category string `json:"category,omitempty" yaml:"category,omitempty"`
	}

	// Category groups quotes by theme.
	Category struct {
		ID       string   `json:"id" yaml:"id"`
		Name     string   `json:"name" yaml:"name"`
		Subtitle string   `json:"subtitle" yaml:"subtitle"`
		Color    string   `json:"color" yaml:"color"`
		Gradient []string `json:"gradient" yaml:"gradient"`
	}
)
