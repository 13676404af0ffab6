package config

import (
	"path/filepath"
	"time"
)

// Sink names accepted by output.sink.
const (
	SinkJSON     = "json"
	SinkPostgres = "postgres"
)

// Config is the root application configuration.
type Config struct {
	Corpus   CorpusConfig   `yaml:"corpus"`
	Extract  ExtractConfig  `yaml:"extract"`
	Output   OutputConfig   `yaml:"output"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
}

// CorpusConfig locates the local revo-fonto checkout.
type CorpusConfig struct {
	RepoURL     string `yaml:"repo_url"     env:"REVO_REPO_URL"     env-default:"https://github.com/revuloj/revo-fonto.git"`
	Dir         string `yaml:"dir"          env:"REVO_DIR"          env-default:"./revo-fonto"`
	ArticlesDir string `yaml:"articles_dir" env:"REVO_ARTICLES_DIR"`
	DTDDir      string `yaml:"dtd_dir"      env:"REVO_DTD_DIR"`
}

// ArticlesPath returns the article directory, <dir>/revo unless set.
func (c CorpusConfig) ArticlesPath() string {
	if c.ArticlesDir != "" {
		return c.ArticlesDir
	}
	return filepath.Join(c.Dir, "revo")
}

// DTDPath returns the DTD directory, <dir>/dtd unless set.
func (c CorpusConfig) DTDPath() string {
	if c.DTDDir != "" {
		return c.DTDDir
	}
	return filepath.Join(c.Dir, "dtd")
}

// ExtractConfig holds batch pipeline settings.
type ExtractConfig struct {
	Workers       int           `yaml:"workers"        env:"EXTRACT_WORKERS"        env-default:"8"`
	Timeout       time.Duration `yaml:"timeout"        env:"EXTRACT_TIMEOUT"        env-default:"30m"`
	ProgressEvery int           `yaml:"progress_every" env:"EXTRACT_PROGRESS_EVERY" env-default:"500"`
	AuditField    string        `yaml:"audit_field"    env:"EXTRACT_AUDIT_FIELD"    env-default:"MIN"`
	AuditLang     string        `yaml:"audit_lang"     env:"EXTRACT_AUDIT_LANG"     env-default:"en"`
	DryRun        bool          `yaml:"dry_run"        env:"EXTRACT_DRY_RUN"        env-default:"false"`
}

// OutputConfig selects where extracted indexes are written.
type OutputConfig struct {
	Sink string `yaml:"sink" env:"OUTPUT_SINK" env-default:"json"`
	Dir  string `yaml:"dir"  env:"OUTPUT_DIR"  env-default:"./genfiles"`
}

// DatabaseConfig holds PostgreSQL connection settings for the postgres sink.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	BatchSize       int           `yaml:"batch_size"         env:"DATABASE_BATCH_SIZE"         env-default:"500"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"true"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}
