package extractor

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/XekriRedmane/retavortaro/internal/domain"
	"github.com/XekriRedmane/retavortaro/internal/reconstruct"
)

// toHeadwordRows converts the merged headword index into rows sorted by headword.
func toHeadwordRows(index map[string]string, runID uuid.UUID, now time.Time) []domain.Headword {
	rows := make([]domain.Headword, 0, len(index))
	for _, hw := range sortedKeys(index) {
		rows = append(rows, domain.Headword{
			ID:             uuid.New(),
			Text:           hw,
			TextNormalized: domain.NormalizeHeadword(hw),
			Source:         index[hw],
			RunID:          runID,
			UpdatedAt:      now,
		})
	}
	return rows
}

// toSenseRows flattens the merged sense index. Rows of one headword are
// contiguous and keep document order in Position.
func toSenseRows(index map[string][]reconstruct.Sense, runID uuid.UUID) []domain.SenseDefinition {
	var rows []domain.SenseDefinition
	for _, hw := range sortedKeys(index) {
		for i, s := range index[hw] {
			rows = append(rows, domain.SenseDefinition{
				Headword:   hw,
				Number:     s.Number,
				Definition: s.Definition,
				Position:   i,
				RunID:      runID,
			})
		}
	}
	return rows
}

func toRootRows(index map[string]string, runID uuid.UUID) []domain.Root {
	rows := make([]domain.Root, 0, len(index))
	for _, root := range sortedKeys(index) {
		rows = append(rows, domain.Root{Text: root, Source: index[root], RunID: runID})
	}
	return rows
}

// toAuditRows keeps the findings in file order.
func toAuditRows(findings []finding, field, lang string, runID uuid.UUID) []domain.AuditFinding {
	rows := make([]domain.AuditFinding, len(findings))
	for i, f := range findings {
		rows[i] = domain.AuditFinding{
			Headword: f.headword,
			Source:   f.source,
			Field:    field,
			Lang:     lang,
			RunID:    runID,
		}
	}
	return rows
}

type validator interface {
	Validate() error
}

// dropInvalid removes rows that cannot be stored, such as senses without a
// definition or headwords reconstructed to an empty form, and returns how
// many were dropped.
func dropInvalid[T validator](rows []T) ([]T, int) {
	valid := rows[:0:0]
	for _, r := range rows {
		if r.Validate() == nil {
			valid = append(valid, r)
		}
	}
	return valid, len(rows) - len(valid)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
