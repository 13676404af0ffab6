package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/XekriRedmane/retavortaro/internal/adapter/jsonfile"
	"github.com/XekriRedmane/retavortaro/internal/adapter/postgres"
	"github.com/XekriRedmane/retavortaro/internal/adapter/postgres/catalog"
	"github.com/XekriRedmane/retavortaro/internal/app/extractor"
	"github.com/XekriRedmane/retavortaro/internal/config"
	"github.com/XekriRedmane/retavortaro/internal/revoxml"
)

// Compile-time interface assertions.
var (
	_ extractor.CatalogSink = (*jsonfile.Writer)(nil)
	_ extractor.CatalogSink = (*catalog.Repo)(nil)
	_ extractor.Parser      = (*revoxml.Parser)(nil)
)

// RunOptions are the per-invocation overrides of an extraction run.
type RunOptions struct {
	Phases []string
	// Path overrides the configured articles directory.
	Path   string
	DryRun bool
}

// Run is the extraction entry point. It loads the DTD entities, opens the
// configured sink and runs the pipeline within the configured timeout.
// The pipeline is returned so callers can inspect phase results.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts RunOptions) (*extractor.Pipeline, error) {
	logger.Info("starting extraction",
		slog.String("version", BuildVersion()),
		slog.String("sink", cfg.Output.Sink),
	)

	ctx, cancel := context.WithTimeout(ctx, cfg.Extract.Timeout)
	defer cancel()

	runCfg := extractor.NewConfig(cfg, opts.Path)
	if opts.DryRun {
		runCfg.DryRun = true
	}

	parser := revoxml.NewParser(LoadEntities(cfg, logger))

	var sink extractor.CatalogSink = jsonfile.NewWriter(cfg.Output.Dir)
	if !runCfg.DryRun {
		s, closeSink, err := OpenSink(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		defer closeSink()
		sink = s
	}

	pipeline := extractor.NewPipeline(logger, parser, sink, runCfg)
	if err := pipeline.Run(ctx, opts.Phases); err != nil {
		return pipeline, err
	}
	return pipeline, nil
}

// LoadEntities reads the corpus DTD entity table. A missing or unreadable
// DTD directory falls back to the HTML entity set with a warning.
func LoadEntities(cfg *config.Config, logger *slog.Logger) map[string]string {
	entities, err := revoxml.LoadEntities(cfg.Corpus.DTDPath())
	if err != nil {
		logger.Warn("dtd entities unavailable, using html entities",
			slog.String("dir", cfg.Corpus.DTDPath()),
			slog.String("error", err.Error()),
		)
		return nil
	}
	logger.Debug("dtd entities loaded", slog.Int("count", len(entities)))
	return entities
}

// OpenSink builds the configured CatalogSink. The returned func releases
// its resources.
func OpenSink(ctx context.Context, cfg *config.Config, logger *slog.Logger) (extractor.CatalogSink, func(), error) {
	switch cfg.Output.Sink {
	case config.SinkPostgres:
		repo, closeRepo, err := OpenCatalog(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return repo, closeRepo, nil
	case config.SinkJSON, "":
		return jsonfile.NewWriter(cfg.Output.Dir), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown sink %q", cfg.Output.Sink)
	}
}

// OpenCatalog connects to PostgreSQL, applies migrations when enabled and
// returns the catalog repository.
func OpenCatalog(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*catalog.Repo, func(), error) {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, logger); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
	}

	repo := catalog.NewRepo(pool, postgres.NewTxManager(pool), cfg.Database.BatchSize)
	return repo, pool.Close, nil
}
