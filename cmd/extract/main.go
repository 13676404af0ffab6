// Command extract builds the Revo indexes from the article corpus: the
// headword, sense and root dictionaries and the missing-translation audit.
//
// Flags:
//
//	--phase    comma-separated list of phases to run (default: all)
//	--dry-run  parse and extract without writing to the sink
//	--path     article file or directory (default: corpus.articles_dir)
//	--out      output directory for the json sink, "-" for stdout
//	--config   path to YAML config file (default: CONFIG_PATH or ./config.yaml)
//
// Exit codes: 0 = success, 1 = error or a failed article.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/XekriRedmane/retavortaro/internal/app"
	"github.com/XekriRedmane/retavortaro/internal/config"
)

func main() {
	phaseFlag := flag.String("phase", "", "comma-separated phases to run: kaps,senses,rads,audit (default: all)")
	dryRunFlag := flag.Bool("dry-run", false, "parse and extract without writing output")
	pathFlag := flag.String("path", "", "article file or directory (default: corpus.articles_dir)")
	outFlag := flag.String("out", "", `output directory for the json sink, "-" for stdout`)
	configFlag := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.LoadFrom(*configFlag)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// CLI flags override config.
	if *outFlag != "" {
		cfg.Output.Dir = *outFlag
	}

	logger := app.NewLogger(cfg.Log)

	// Parse phase filter.
	var phases []string
	if *phaseFlag != "" {
		phases = strings.Split(*phaseFlag, ",")
		for i := range phases {
			phases[i] = strings.TrimSpace(phases[i])
		}
	}

	pipeline, err := app.Run(context.Background(), cfg, logger, app.RunOptions{
		Phases: phases,
		Path:   *pathFlag,
		DryRun: *dryRunFlag,
	})
	if err != nil {
		logger.Error("pipeline failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if pipeline.HasErrors() {
		logger.Warn("pipeline completed with errors", slog.String("run_id", pipeline.RunID().String()))
		os.Exit(1)
	}

	logger.Info("pipeline completed successfully", slog.String("run_id", pipeline.RunID().String()))
}
