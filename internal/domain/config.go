package domain

// Config mirrors ~/.uisampler/config.yaml.
type Config struct {
	ConfigFormatVersion string           `yaml:"config_format_version"`
	Output              OutputSettings   `yaml:"output"`
	Sampling            SamplingSettings `yaml:"sampling"`
	Codegen             CodegenSettings  `yaml:"codegen"`
	Naming              NamingSettings   `yaml:"naming"`
	Commit              CommitSettings   `yaml:"commit"`
	Catalog             CatalogSettings  `yaml:"catalog"`
	Tree                TreeSettings     `yaml:"tree"`
}

// OutputSettings controls where samples are written.
type OutputSettings struct {
	Root        string `yaml:"root"`
	ScratchRoot string `yaml:"scratch_root"`
}

// SamplingSettings controls capture and tree sampling.
type SamplingSettings struct {
	PointCropSize     int    `yaml:"point_crop_size"`
	TreeRetry         int    `yaml:"tree_retry"`
	TreeRetryInterval string `yaml:"tree_retry_interval"`
	CaptureDelay      string `yaml:"capture_delay"`
	AncestorDepth     int    `yaml:"ancestor_depth"`
	DumpAllNodes      bool   `yaml:"dump_all_nodes"`
}

// CodegenSettings controls locator generation.
type CodegenSettings struct {
	FindTimeoutMS int `yaml:"find_timeout_ms"`
	MaxCandidates int `yaml:"max_candidates"`
}

// NamingSettings controls the naming prompt.
type NamingSettings struct {
	MaxAttempts   int    `yaml:"max_attempts"`
	MaxLength     int    `yaml:"max_length"`
	PromptTimeout string `yaml:"prompt_timeout"`
}

// CommitSettings controls promotion of a staged sample.
type CommitSettings struct {
	PromoteAttempts int `yaml:"promote_attempts"`
}

// CatalogSettings controls the index of committed samples.
type CatalogSettings struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// TreeSettings configures the default tree provider used by the CLI.
type TreeSettings struct {
	Snapshot string `yaml:"snapshot"`
}
