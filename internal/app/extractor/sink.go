// Package extractor runs the batch extraction of the Revo corpus: every
// article file is parsed once, the selected indexes are extracted from its
// tree and the merged results are handed to a CatalogSink.
package extractor

import (
	"context"

	"github.com/XekriRedmane/retavortaro/internal/domain"
	"github.com/XekriRedmane/retavortaro/internal/vortaro"
)

// CatalogSink receives the merged indexes of a run.
// Implemented by jsonfile.Writer and catalog.Repo.
type CatalogSink interface {
	// Upserts: last write wins on the natural key.
	UpsertHeadwords(ctx context.Context, rows []domain.Headword) (int, error)
	UpsertRoots(ctx context.Context, rows []domain.Root) (int, error)

	// Replace: a headword's previous senses are dropped before the new list is stored.
	ReplaceSenses(ctx context.Context, rows []domain.SenseDefinition) (int, error)

	InsertAuditFindings(ctx context.Context, rows []domain.AuditFinding) (int, error)
}

// Parser turns one article file into its node tree.
// Implemented by revoxml.Parser.
type Parser interface {
	ParseFile(path string) (*vortaro.Node, error)
}
