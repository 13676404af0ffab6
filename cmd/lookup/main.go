// Command lookup prints a headword's source article and senses from the
// postgres catalog.
//
// Usage:
//
//	lookup [--config path] <headword>
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/XekriRedmane/retavortaro/internal/app"
	"github.com/XekriRedmane/retavortaro/internal/config"
)

func main() {
	configFlag := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: lookup <headword>")
		os.Exit(2)
	}
	text := strings.Join(flag.Args(), " ")

	cfg, err := config.LoadFrom(*configFlag)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo, closeRepo, err := app.OpenCatalog(ctx, cfg, logger)
	if err != nil {
		logger.Error("open catalog", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeRepo()

	headwords, err := repo.FindHeadwords(ctx, text)
	if err != nil {
		logger.Error("find headwords", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if len(headwords) == 0 {
		fmt.Printf("%s: not found\n", text)
		os.Exit(1)
	}

	for _, hw := range headwords {
		fmt.Printf("%s (%s)\n", hw.Text, hw.Source)
		senses, err := repo.ListSenses(ctx, hw.Text)
		if err != nil {
			logger.Error("list senses", slog.String("headword", hw.Text), slog.String("error", err.Error()))
			os.Exit(1)
		}
		for _, s := range senses {
			fmt.Printf("  %s. %s\n", s.Number, s.Definition)
		}
	}
}
