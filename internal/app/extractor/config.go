package extractor

import "github.com/XekriRedmane/retavortaro/internal/config"

// Config holds the settings of one pipeline run.
type Config struct {
	// Path is a single article file or a directory of *.xml articles.
	Path          string
	Workers       int
	ProgressEvery int
	AuditField    string
	AuditLang     string
	DryRun        bool
}

// NewConfig builds a run configuration from the application settings.
// An empty path falls back to the configured articles directory.
func NewConfig(cfg *config.Config, path string) Config {
	if path == "" {
		path = cfg.Corpus.ArticlesPath()
	}
	return Config{
		Path:          path,
		Workers:       cfg.Extract.Workers,
		ProgressEvery: cfg.Extract.ProgressEvery,
		AuditField:    cfg.Extract.AuditField,
		AuditLang:     cfg.Extract.AuditLang,
		DryRun:        cfg.Extract.DryRun,
	}
}
