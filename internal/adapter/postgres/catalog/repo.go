// Package catalog stores the extracted Revo indexes in PostgreSQL.
package catalog

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/XekriRedmane/retavortaro/internal/adapter/postgres"
	"github.com/XekriRedmane/retavortaro/internal/domain"
)

// Table names.
const (
	headwordsTable = "revo_headwords"
	sensesTable    = "revo_senses"
	rootsTable     = "revo_roots"
	auditTable     = "revo_audit_findings"
)

const defaultBatchSize = 500

// Repo implements the extraction sink and catalog lookups.
type Repo struct {
	db        postgres.Querier
	tx        *postgres.TxManager
	batchSize int
}

// NewRepo creates a Repo. Writes are split into statements of at most
// batchSize rows.
func NewRepo(db postgres.Querier, tx *postgres.TxManager, batchSize int) *Repo {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Repo{db: db, tx: tx, batchSize: batchSize}
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

// UpsertHeadwords inserts headwords; an existing headword takes the new
// source and run.
func (r *Repo) UpsertHeadwords(ctx context.Context, rows []domain.Headword) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	return r.inTx(ctx, func(ctx context.Context) (int, error) {
		return chunked(rows, r.batchSize, func(batch []domain.Headword) (int, error) {
			q := postgres.Builder().
				Insert(headwordsTable).
				Columns("id", "headword", "headword_normalized", "source", "run_id", "updated_at").
				Suffix(`ON CONFLICT (headword) DO UPDATE SET
					headword_normalized = EXCLUDED.headword_normalized,
					source = EXCLUDED.source,
					run_id = EXCLUDED.run_id,
					updated_at = EXCLUDED.updated_at`)
			for _, h := range batch {
				q = q.Values(h.ID, h.Text, h.TextNormalized, h.Source, h.RunID, h.UpdatedAt)
			}
			return r.exec(ctx, q, headwordsTable)
		})
	})
}

// ReplaceSenses drops the stored senses of every headword present in rows
// and inserts the new lists, all in one transaction.
func (r *Repo) ReplaceSenses(ctx context.Context, rows []domain.SenseDefinition) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	var headwords []string
	seen := make(map[string]bool)
	for _, s := range rows {
		if !seen[s.Headword] {
			seen[s.Headword] = true
			headwords = append(headwords, s.Headword)
		}
	}

	return r.inTx(ctx, func(ctx context.Context) (int, error) {
		if _, err := chunked(headwords, r.batchSize, func(batch []string) (int, error) {
			q := postgres.Builder().
				Delete(sensesTable).
				Where(squirrel.Eq{"headword": batch})
			return r.exec(ctx, q, sensesTable)
		}); err != nil {
			return 0, err
		}

		return chunked(rows, r.batchSize, func(batch []domain.SenseDefinition) (int, error) {
			q := postgres.Builder().
				Insert(sensesTable).
				Columns("headword", "sense_number", "definition", "position", "run_id")
			for _, s := range batch {
				q = q.Values(s.Headword, s.Number, s.Definition, s.Position, s.RunID)
			}
			return r.exec(ctx, q, sensesTable)
		})
	})
}

// UpsertRoots inserts roots; an existing root takes the new source and run.
func (r *Repo) UpsertRoots(ctx context.Context, rows []domain.Root) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	return r.inTx(ctx, func(ctx context.Context) (int, error) {
		return chunked(rows, r.batchSize, func(batch []domain.Root) (int, error) {
			q := postgres.Builder().
				Insert(rootsTable).
				Columns("root", "source", "run_id").
				Suffix("ON CONFLICT (root) DO UPDATE SET source = EXCLUDED.source, run_id = EXCLUDED.run_id")
			for _, root := range batch {
				q = q.Values(root.Text, root.Source, root.RunID)
			}
			return r.exec(ctx, q, rootsTable)
		})
	})
}

// InsertAuditFindings appends the findings of a run.
func (r *Repo) InsertAuditFindings(ctx context.Context, rows []domain.AuditFinding) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	return r.inTx(ctx, func(ctx context.Context) (int, error) {
		return chunked(rows, r.batchSize, func(batch []domain.AuditFinding) (int, error) {
			q := postgres.Builder().
				Insert(auditTable).
				Columns("headword", "source", "field", "lang", "run_id")
			for _, f := range batch {
				q = q.Values(f.Headword, f.Source, f.Field, f.Lang, f.RunID)
			}
			return r.exec(ctx, q, auditTable)
		})
	})
}

// ---------------------------------------------------------------------------
// Lookups
// ---------------------------------------------------------------------------

// FindHeadwords returns the headwords whose normalized form matches text,
// ordered by headword.
func (r *Repo) FindHeadwords(ctx context.Context, text string) ([]domain.Headword, error) {
	normalized := domain.NormalizeHeadword(text)
	q := postgres.Builder().
		Select("id", "headword", "headword_normalized", "source", "run_id", "updated_at").
		From(headwordsTable).
		Where(squirrel.Eq{"headword_normalized": normalized}).
		OrderBy("headword")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []domain.Headword
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, headwordsTable, normalized)
	}
	return rows, nil
}

// ListSenses returns the senses of a headword in document order.
func (r *Repo) ListSenses(ctx context.Context, headword string) ([]domain.SenseDefinition, error) {
	q := postgres.Builder().
		Select("headword", "sense_number", "definition", "position", "run_id").
		From(sensesTable).
		Where(squirrel.Eq{"headword": headword}).
		OrderBy("position")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []domain.SenseDefinition
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, sensesTable, headword)
	}
	return rows, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (r *Repo) inTx(ctx context.Context, fn func(ctx context.Context) (int, error)) (int, error) {
	var n int
	err := r.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		n, err = fn(ctx)
		return err
	})
	return n, err
}

func (r *Repo) exec(ctx context.Context, q squirrel.Sqlizer, table string) (int, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build %s statement: %w", table, err)
	}
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, table, "batch")
	}
	return int(tag.RowsAffected()), nil
}

// chunked splits items into batches and processes each via fn.
func chunked[T any](items []T, batchSize int, fn func([]T) (int, error)) (int, error) {
	total := 0
	for i := 0; i < len(items); i += batchSize {
		end := min(i+batchSize, len(items))
		n, err := fn(items[i:end])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
