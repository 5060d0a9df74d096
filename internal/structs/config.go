package structs

type SettingsView struct {
	Fields []Element `json:"fields"`
}

type Element struct {
	Label     string      `json:"label"`
	Type      ElementType `json:"type"`
	Key       string      `json:"key"`
	Rationale string      `json:"rationale"`
	Value     string      `json:"value"`
	Required  bool        `json:"required"`
}
