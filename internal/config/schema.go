package config

// Config holds docaudit configuration.
// Loaded from config.yaml with DOCAUDIT_* environment overrides.
type Config struct {
	Headings HeadingsCfg       `mapstructure:"headings" yaml:"headings"`
	TOC      TOCCfg            `mapstructure:"toc" yaml:"toc"`
	Appendix AppendixCfg       `mapstructure:"appendix" yaml:"appendix"`
	Links    LinksCfg          `mapstructure:"links" yaml:"links"`
	Captions CaptionsCfg       `mapstructure:"captions" yaml:"captions"`
	FailAt   map[string]string `mapstructure:"fail_at" yaml:"fail_at"` // check name -> lowest failing severity
}

// HeadingsCfg configures the heading detector.
type HeadingsCfg struct {
	// Patterns are heading regular expressions (e.g. "^Chapter \d+").
	Patterns []string `mapstructure:"patterns" yaml:"patterns"`
	// FontRatio is the multiple of the page's median body font size above
	// which a block is treated as a heading. Tunable; the right value
	// depends on the document corpus.
	FontRatio float64 `mapstructure:"font_ratio" yaml:"font_ratio"`
}

// TOCCfg configures table-of-contents page detection.
type TOCCfg struct {
	// TitlePatterns match a TOC title block (e.g. "Table of Contents").
	TitlePatterns []string `mapstructure:"title_patterns" yaml:"title_patterns"`
	// EntryFraction is the fraction of a page's text blocks that must end
	// in a page-number-like token for the page to count as a TOC
	// candidate. Tunable.
	EntryFraction float64 `mapstructure:"entry_fraction" yaml:"entry_fraction"`
	// MergeDistance is the maximum page gap between TOC candidates merged
	// into one span. Tunable.
	MergeDistance int `mapstructure:"merge_distance" yaml:"merge_distance"`
}

// AppendixCfg configures appendix marker detection.
type AppendixCfg struct {
	// Pattern must capture the appendix label in its first group.
	Pattern string `mapstructure:"pattern" yaml:"pattern"`
}

// LinksCfg configures the link reachability prober.
type LinksCfg struct {
	MaxParallel    int     `mapstructure:"max_parallel" yaml:"max_parallel"`
	TimeoutSeconds float64 `mapstructure:"timeout_seconds" yaml:"timeout_seconds"` // per request
	MaxRetries     int     `mapstructure:"max_retries" yaml:"max_retries"`
	BackoffBaseMS  int     `mapstructure:"backoff_base_ms" yaml:"backoff_base_ms"`
	BackoffCapMS   int     `mapstructure:"backoff_cap_ms" yaml:"backoff_cap_ms"`
	UserAgent      string  `mapstructure:"user_agent" yaml:"user_agent"`
}

// CaptionsCfg configures the image caption checker.
type CaptionsCfg struct {
	// ProximityPt is the maximum vertical distance in page points between
	// an image edge and a text block that can caption it.
	ProximityPt float64 `mapstructure:"proximity_pt" yaml:"proximity_pt"`
	// Patterns match caption marker text ("Figure 3: ...").
	Patterns []string `mapstructure:"patterns" yaml:"patterns"`
}

// CheckNames lists every check the pipeline runs.
var CheckNames = []string{"page_numbering", "appendices", "links", "image_captions"}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Headings: HeadingsCfg{
			Patterns: []string{
				`^(?:Chapter|CHAPTER)\s+\d+\b`,
				`^\d+(?:\.\d+)*\.?\s+\S`,
				`^Appendix\s+(?:[A-Z]|\d+)\b`,
			},
			FontRatio: 1.18,
		},
		TOC: TOCCfg{
			TitlePatterns: []string{
				`(?i)^(?:table of contents|contents)\s*$`,
			},
			EntryFraction: 0.5,
			MergeDistance: 2,
		},
		Appendix: AppendixCfg{
			Pattern: `^Appendix\s+([A-Z]|\d+)\b`,
		},
		Links: LinksCfg{
			MaxParallel:    8,
			TimeoutSeconds: 10,
			MaxRetries:     3,
			BackoffBaseMS:  250,
			BackoffCapMS:   5000,
			UserAgent:      "docaudit/1.0 (+https://github.com/jackzampolin/docaudit)",
		},
		Captions: CaptionsCfg{
			ProximityPt: 100,
			Patterns: []string{
				`^Fig(?:ure)?\.?\s*\d+`,
				`^Table\s*\d+`,
			},
		},
		FailAt: map[string]string{},
	}
}
