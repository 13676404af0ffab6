package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/XekriRedmane/retavortaro/internal/corpus"
	"github.com/XekriRedmane/retavortaro/internal/extract"
	"github.com/XekriRedmane/retavortaro/internal/reconstruct"
	"github.com/XekriRedmane/retavortaro/pkg/ctxutil"
)

// Phase names, in canonical execution order.
const (
	PhaseKaps   = "kaps"
	PhaseSenses = "senses"
	PhaseRads   = "rads"
	PhaseAudit  = "audit"
)

// AllPhases defines the canonical execution order.
var AllPhases = []string{PhaseKaps, PhaseSenses, PhaseRads, PhaseAudit}

// PhaseResult holds the outcome of a single pipeline phase.
// Entries and Skipped count rows: Entries those handed to the sink,
// Skipped those dropped as invalid or not written in a dry run.
type PhaseResult struct {
	Files    int
	Failed   int
	Entries  int
	Written  int
	Skipped  int
	Duration time.Duration
	Err      error
}

// Pipeline orchestrates parsing, extraction and storage of one run.
type Pipeline struct {
	log     *slog.Logger
	parser  Parser
	sink    CatalogSink
	cfg     Config
	runID   uuid.UUID
	results map[string]PhaseResult
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, parser Parser, sink CatalogSink, cfg Config) *Pipeline {
	return &Pipeline{
		log:     log,
		parser:  parser,
		sink:    sink,
		cfg:     cfg,
		results: make(map[string]PhaseResult),
	}
}

// Results returns phase results after Run completes.
func (p *Pipeline) Results() map[string]PhaseResult {
	return p.results
}

// RunID returns the ID of the last run, uuid.Nil before Run.
func (p *Pipeline) RunID() uuid.UUID {
	return p.runID
}

// HasErrors returns true if any unit failed or any sink write failed.
func (p *Pipeline) HasErrors() bool {
	for _, r := range p.results {
		if r.Err != nil || r.Failed > 0 {
			return true
		}
	}
	return false
}

// unitResult is what one article file contributes to each phase.
type unitResult struct {
	name      string
	err       error
	headwords map[string]string
	senses    map[string][]reconstruct.Sense
	roots     map[string]string
	missing   []string
}

type finding struct {
	headword string
	source   string
}

// Run executes the pipeline. If phases is non-empty, only the listed phases run.
func (p *Pipeline) Run(ctx context.Context, phases []string) error {
	p.runID = uuid.New()
	ctx = ctxutil.WithRunID(ctx, p.runID)

	toRun := selectPhases(phases)
	if len(toRun) == 0 {
		return fmt.Errorf("no known phase in %v", phases)
	}

	files, err := corpus.ListArticles(p.cfg.Path)
	if err != nil {
		return err
	}

	p.log.Info("extraction started",
		slog.String("run_id", p.runID.String()),
		slog.Int("files", len(files)),
		slog.Any("phases", toRun),
		slog.Bool("dry_run", p.cfg.DryRun),
	)

	start := time.Now()
	units, err := p.extractAll(ctx, files, toRun)
	if err != nil {
		return err
	}
	p.log.Info("extraction completed",
		slog.Int("files", len(files)),
		slog.Duration("duration", time.Since(start)),
	)

	for _, phase := range toRun {
		phaseStart := time.Now()
		result := p.runPhase(ctx, phase, units)
		result.Duration = time.Since(phaseStart)
		p.results[phase] = result

		if result.Err != nil {
			p.log.Warn("phase failed",
				slog.String("phase", phase),
				slog.String("error", result.Err.Error()),
				slog.Duration("duration", result.Duration),
			)
		} else {
			p.log.Info("phase completed",
				slog.String("phase", phase),
				slog.Int("files", result.Files),
				slog.Int("failed", result.Failed),
				slog.Int("entries", result.Entries),
				slog.Int("written", result.Written),
				slog.Int("skipped", result.Skipped),
				slog.Duration("duration", result.Duration),
			)
		}
	}

	p.log.Info("pipeline completed", slog.Int("phases_run", len(toRun)))
	return nil
}

func selectPhases(phases []string) []string {
	if len(phases) == 0 {
		return AllPhases
	}
	filter := make(map[string]bool, len(phases))
	for _, ph := range phases {
		filter[ph] = true
	}
	var filtered []string
	for _, ph := range AllPhases {
		if filter[ph] {
			filtered = append(filtered, ph)
		}
	}
	return filtered
}

// extractAll parses every file once in a bounded fan-out. Results keep
// file order. A unit's failure is recorded on that unit only.
func (p *Pipeline) extractAll(ctx context.Context, files []string, phases []string) ([]unitResult, error) {
	want := make(map[string]bool, len(phases))
	for _, ph := range phases {
		want[ph] = true
	}

	units := make([]unitResult, len(files))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(p.cfg.Workers, 1))

	for i, path := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			units[i] = p.extractFile(ctxutil.WithSource(gctx, corpus.Stem(path)), path, want)

			n := done.Add(1)
			if p.cfg.ProgressEvery > 0 && n%int64(p.cfg.ProgressEvery) == 0 {
				p.log.Info("extraction progress", slog.Int64("done", n), slog.Int("total", len(files)))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	return units, nil
}

func (p *Pipeline) extractFile(ctx context.Context, path string, want map[string]bool) unitResult {
	name := ctxutil.SourceFromCtx(ctx)
	root, err := p.parser.ParseFile(path)
	if err != nil {
		p.log.Warn("unit failed", slog.String("file", name), slog.String("error", err.Error()))
		return unitResult{name: name, err: err}
	}

	u := extract.Unit{Name: name, Root: root}
	res := unitResult{name: name}
	if want[PhaseKaps] {
		res.headwords = extract.Headwords(u)
	}
	if want[PhaseSenses] {
		res.senses = extract.Senses(u)
	}
	if want[PhaseRads] {
		res.roots = extract.Roots(u)
	}
	if want[PhaseAudit] {
		res.missing = extract.MissingTranslations(u, p.cfg.AuditField, p.cfg.AuditLang)
	}
	return res
}

// runPhase merges the unit results of one phase in file order, last write
// wins, and hands the rows to the sink unless this is a dry run.
func (p *Pipeline) runPhase(ctx context.Context, phase string, units []unitResult) PhaseResult {
	result := PhaseResult{Files: len(units)}
	for _, u := range units {
		if u.err != nil {
			result.Failed++
		}
	}

	runID, _ := ctxutil.RunIDFromCtx(ctx)
	var write func() (int, error)

	switch phase {
	case PhaseKaps:
		index := mergeIndex(p.log, phase, units, func(u unitResult) map[string]string { return u.headwords })
		rows, dropped := dropInvalid(toHeadwordRows(index, runID, time.Now()))
		result.Entries = len(rows)
		result.Skipped = dropped
		write = func() (int, error) { return p.sink.UpsertHeadwords(ctx, rows) }

	case PhaseSenses:
		index := make(map[string][]reconstruct.Sense)
		for _, u := range units {
			for hw, senses := range u.senses {
				index[hw] = senses
			}
		}
		rows, dropped := dropInvalid(toSenseRows(index, runID))
		result.Entries = len(rows)
		result.Skipped = dropped
		write = func() (int, error) { return p.sink.ReplaceSenses(ctx, rows) }

	case PhaseRads:
		index := mergeIndex(p.log, phase, units, func(u unitResult) map[string]string { return u.roots })
		rows := toRootRows(index, runID)
		result.Entries = len(rows)
		write = func() (int, error) { return p.sink.UpsertRoots(ctx, rows) }

	case PhaseAudit:
		var findings []finding
		for _, u := range units {
			for _, hw := range u.missing {
				findings = append(findings, finding{headword: hw, source: u.name})
			}
		}
		rows := toAuditRows(findings, p.cfg.AuditField, p.cfg.AuditLang, runID)
		result.Entries = len(rows)
		write = func() (int, error) { return p.sink.InsertAuditFindings(ctx, rows) }
	}

	if p.cfg.DryRun {
		result.Skipped += result.Entries
		return result
	}

	written, err := write()
	if err != nil {
		result.Err = fmt.Errorf("write %s: %w", phase, err)
		return result
	}
	result.Written = written
	return result
}

// mergeIndex merges string indexes in unit order. A key seen again is
// overwritten and the previous source logged at debug level.
func mergeIndex(log *slog.Logger, phase string, units []unitResult, pick func(unitResult) map[string]string) map[string]string {
	merged := make(map[string]string)
	for _, u := range units {
		for _, key := range sortedKeys(pick(u)) {
			source := pick(u)[key]
			if prev, ok := merged[key]; ok && prev != source {
				log.Debug("entry redefined",
					slog.String("phase", phase),
					slog.String("key", key),
					slog.String("previous", prev),
					slog.String("file", source),
				)
			}
			merged[key] = source
		}
	}
	return merged
}
