package types

// OCRConfig holds settings for the OCR collaborator.
type OCRConfig struct {
	// Languages are the Tesseract language codes to load (default ["eng"]).
	Languages []string `json:"languages" yaml:"languages"`

	// DPI overrides the assumed input resolution when the image carries
	// none. Zero leaves the engine default.
	DPI int `json:"dpi,omitempty" yaml:"dpi,omitempty"`
}

// PolicyConfig holds settings for eligibility policy loading.
type PolicyConfig struct {
	// Path is the policy YAML file. Empty means the built-in default
	// policy is used.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// AuditConfig holds settings for the report audit store.
type AuditConfig struct {
	// Dir is the directory holding the audit database (contains audit.db).
	Dir string `json:"dir" yaml:"dir"`

	// Disabled turns off report persistence.
	Disabled bool `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// PipelineConfig groups all stage configurations for an analysis run.
type PipelineConfig struct {
	OCR    OCRConfig    `json:"ocr" yaml:"ocr"`
	Policy PolicyConfig `json:"policy" yaml:"policy"`
	Audit  AuditConfig  `json:"audit" yaml:"audit"`
}
