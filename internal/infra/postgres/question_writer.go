package postgres

import (
	"context"
	"fmt"

	"clubcine-quiz/internal/domain"
	"github.com/uptrace/bun"
)

type questionRow struct {
	bun.BaseModel `bun:"table:questions"`

	ID   int64           `bun:"id,pk,autoincrement"`
	Data domain.Question `bun:"data,type:jsonb"`
}

// QuestionWriter imports question sets into the questions table.
type QuestionWriter struct {
	db *bun.DB
}

func NewQuestionWriter(db *bun.DB) *QuestionWriter {
	return &QuestionWriter{db: db}
}

// Import inserts questions in order. When replace is set the table is emptied first,
// in the same transaction.
func (w *QuestionWriter) Import(ctx context.Context, questions []domain.Question, replace bool) (int, error) {
	if len(questions) == 0 {
		return 0, domain.ErrNoQuestions
	}
	rows := make([]questionRow, len(questions))
	for i, q := range questions {
		rows[i] = questionRow{Data: q}
	}

	err := w.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if replace {
			if _, err := tx.NewTruncateTable().Model((*questionRow)(nil)).Exec(ctx); err != nil {
				return fmt.Errorf("truncate questions: %w", err)
			}
		}
		if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
			return fmt.Errorf("insert questions: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}
