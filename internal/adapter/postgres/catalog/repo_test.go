package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	postgres "github.com/XekriRedmane/retavortaro/internal/adapter/postgres"
	"github.com/XekriRedmane/retavortaro/internal/domain"
)

func newTestRepo(t *testing.T, batchSize int) (*Repo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return NewRepo(mock, postgres.NewTxManager(mock), batchSize), mock
}

func TestRepo_UpsertHeadwords(t *testing.T) {
	repo, mock := newTestRepo(t, 2)
	runID := uuid.New()
	now := time.Now()

	rows := []domain.Headword{
		{ID: uuid.New(), Text: "abelo", TextNormalized: "abelo", Source: "abel", RunID: runID, UpdatedAt: now},
		{ID: uuid.New(), Text: "domo", TextNormalized: "domo", Source: "dom", RunID: runID, UpdatedAt: now},
		{ID: uuid.New(), Text: "ĉokolado", TextNormalized: "ĉokolado", Source: "cxokolad", RunID: runID, UpdatedAt: now},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO revo_headwords .+ ON CONFLICT \(headword\) DO UPDATE`).
		WithArgs(
			rows[0].ID, "abelo", "abelo", "abel", runID, now,
			rows[1].ID, "domo", "domo", "dom", runID, now,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectExec(`INSERT INTO revo_headwords`).
		WithArgs(rows[2].ID, "ĉokolado", "ĉokolado", "cxokolad", runID, now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	n, err := repo.UpsertHeadwords(context.Background(), rows)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestRepo_UpsertHeadwords_Empty(t *testing.T) {
	repo, _ := newTestRepo(t, 10)

	n, err := repo.UpsertHeadwords(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRepo_UpsertHeadwords_RollsBackOnError(t *testing.T) {
	repo, mock := newTestRepo(t, 1)

	mock.ExpectBegin()
	any6 := []any{pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()}
	mock.ExpectExec(`INSERT INTO revo_headwords`).WithArgs(any6...).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO revo_headwords`).WithArgs(any6...).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := repo.UpsertHeadwords(context.Background(), []domain.Headword{
		{ID: uuid.New(), Text: "a", Source: "a"},
		{ID: uuid.New(), Text: "b", Source: "b"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "revo_headwords")
}

func TestRepo_ReplaceSenses(t *testing.T) {
	repo, mock := newTestRepo(t, 10)
	runID := uuid.New()

	rows := []domain.SenseDefinition{
		{Headword: "domo", Number: "1", Definition: "Konstruaĵo.", Position: 0, RunID: runID},
		{Headword: "domo", Number: "2", Definition: "Familio.", Position: 1, RunID: runID},
		{Headword: "abelo", Number: "1", Definition: "Insekto.", Position: 0, RunID: runID},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM revo_senses WHERE headword IN \(\$1,\$2\)`).
		WithArgs("domo", "abelo").
		WillReturnResult(pgxmock.NewResult("DELETE", 4))
	mock.ExpectExec(`INSERT INTO revo_senses \(headword,sense_number,definition,position,run_id\)`).
		WithArgs(
			"domo", "1", "Konstruaĵo.", 0, runID,
			"domo", "2", "Familio.", 1, runID,
			"abelo", "1", "Insekto.", 0, runID,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 3))
	mock.ExpectCommit()

	n, err := repo.ReplaceSenses(context.Background(), rows)
	require.NoError(t, err)
	assert.Equal(t, 3, n, "count reports inserted rows, not deleted ones")
}

func TestRepo_ReplaceSenses_Empty(t *testing.T) {
	repo, _ := newTestRepo(t, 10)

	n, err := repo.ReplaceSenses(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRepo_UpsertRoots(t *testing.T) {
	repo, mock := newTestRepo(t, 10)
	runID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO revo_roots .+ ON CONFLICT \(root\) DO UPDATE`).
		WithArgs("ĉokolad", "cxokolad", runID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	n, err := repo.UpsertRoots(context.Background(), []domain.Root{{Text: "ĉokolad", Source: "cxokolad", RunID: runID}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRepo_InsertAuditFindings(t *testing.T) {
	repo, mock := newTestRepo(t, 10)
	runID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO revo_audit_findings`).
		WithArgs("ĉokoladujo", "cxokolad", "MIN", "en", runID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	n, err := repo.InsertAuditFindings(context.Background(), []domain.AuditFinding{
		{Headword: "ĉokoladujo", Source: "cxokolad", Field: "MIN", Lang: "en", RunID: runID},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRepo_FindHeadwords(t *testing.T) {
	repo, mock := newTestRepo(t, 10)
	id, runID := uuid.New(), uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "headword", "headword_normalized", "source", "run_id", "updated_at"}).
		AddRow(id, "Ĉokolado", "ĉokolado", "cxokolad", runID, now).
		AddRow(uuid.New(), "ĉokolado", "ĉokolado", "cxokolad", runID, now)
	mock.ExpectQuery(`SELECT .+ FROM revo_headwords WHERE headword_normalized = \$1 ORDER BY headword`).
		WithArgs("ĉokolado").
		WillReturnRows(rows)

	got, err := repo.FindHeadwords(context.Background(), "  CXOKOLADO ")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, id, got[0].ID)
	assert.Equal(t, "Ĉokolado", got[0].Text)
	assert.Equal(t, "cxokolad", got[0].Source)
}

func TestRepo_FindHeadwords_QueryError(t *testing.T) {
	repo, mock := newTestRepo(t, 10)

	mock.ExpectQuery(`SELECT`).WithArgs("domo").WillReturnError(context.DeadlineExceeded)

	_, err := repo.FindHeadwords(context.Background(), "domo")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRepo_ListSenses(t *testing.T) {
	repo, mock := newTestRepo(t, 10)
	runID := uuid.New()

	rows := pgxmock.NewRows([]string{"headword", "sense_number", "definition", "position", "run_id"}).
		AddRow("domo", "1", "Konstruaĵo.", 0, runID).
		AddRow("domo", "2", "Familio.", 1, runID)
	mock.ExpectQuery(`SELECT .+ FROM revo_senses WHERE headword = \$1 ORDER BY position`).
		WithArgs("domo").
		WillReturnRows(rows)

	got, err := repo.ListSenses(context.Background(), "domo")
	require.NoError(t, err)
	assert.Equal(t, []domain.SenseDefinition{
		{Headword: "domo", Number: "1", Definition: "Konstruaĵo.", Position: 0, RunID: runID},
		{Headword: "domo", Number: "2", Definition: "Familio.", Position: 1, RunID: runID},
	}, got)
}

func TestChunked(t *testing.T) {
	var sizes []int
	total, err := chunked([]int{1, 2, 3, 4, 5}, 2, func(b []int) (int, error) {
		sizes = append(sizes, len(b))
		return len(b), nil
	})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Equal(t, []int{2, 2, 1}, sizes)
}
