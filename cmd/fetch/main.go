// Command fetch clones the revo-fonto repository, or pulls it when the
// destination already holds a checkout.
//
// Usage:
//
//	fetch [--config path] [dest]
//
// dest defaults to corpus.dir.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/XekriRedmane/retavortaro/internal/app"
	"github.com/XekriRedmane/retavortaro/internal/config"
	"github.com/XekriRedmane/retavortaro/internal/corpus"
)

func main() {
	configFlag := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.LoadFrom(*configFlag)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	dest := cfg.Corpus.Dir
	if flag.NArg() > 0 {
		dest = flag.Arg(0)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Extract.Timeout)
	defer cancel()

	fetcher := corpus.Fetcher{RepoURL: cfg.Corpus.RepoURL}
	action, out, err := fetcher.Fetch(ctx, dest)
	if err != nil {
		logger.Error("fetch failed", slog.String("error", err.Error()), slog.String("output", out))
		os.Exit(1)
	}

	logger.Info("corpus "+string(action), slog.String("dest", dest), slog.String("output", out))
}
