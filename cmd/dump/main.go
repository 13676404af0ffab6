// Command dump parses one article and prints its generic encoding as JSON.
//
// Usage:
//
//	dump [--no-trd] [--fak CODE] [--config path] <file>
//
// --no-trd drops translations before encoding. --fak lists instead the
// headwords whose usage label is exactly CODE, one per line.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/XekriRedmane/retavortaro/internal/app"
	"github.com/XekriRedmane/retavortaro/internal/config"
	"github.com/XekriRedmane/retavortaro/internal/extract"
	"github.com/XekriRedmane/retavortaro/internal/reconstruct"
	"github.com/XekriRedmane/retavortaro/internal/revoxml"
	"github.com/XekriRedmane/retavortaro/internal/vortaro"
)

func main() {
	noTrdFlag := flag.Bool("no-trd", false, "drop trd and trdgrp elements")
	fakFlag := flag.String("fak", "", "list headwords labelled with this field code")
	configFlag := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: dump [--no-trd] [--fak CODE] <file>")
		os.Exit(2)
	}

	cfg, err := config.LoadFrom(*configFlag)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	parser := revoxml.NewParser(app.LoadEntities(cfg, logger))
	root, err := parser.ParseFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("%v", err)
	}

	if *fakFlag != "" {
		printField(root, *fakFlag)
		return
	}

	if *noTrdFlag {
		root = vortaro.WithoutTranslations(root)
	}
	data, err := root.MarshalJSON()
	if err != nil {
		log.Fatalf("encode: %v", err)
	}
	os.Stdout.Write(data)
	fmt.Println()
}

func printField(root *vortaro.Node, field string) {
	for _, art := range extract.Articles(root) {
		roots := reconstruct.ArticleRoots(art)
		for _, u := range extract.FieldUsages(extract.Usages(art), field) {
			if u.Headword == nil {
				fmt.Println(extract.NoHeadword)
				continue
			}
			fmt.Println(reconstruct.BaseHeadword(u.Headword, roots))
		}
	}
}
