// internal/services/submission/postgres.go
package submission

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"formflow/internal/common/database"
	stderrors "formflow/internal/common/errors"
	"formflow/internal/models"
)

// PostgresRepository stores submission records in the submissions table.
// Field values are kept as a JSONB column since the schema varies per
// form.
type PostgresRepository struct {
	db *database.PostgresClient
}

func NewPostgresRepository(db *database.PostgresClient) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Save(ctx context.Context, record *models.SubmissionRecord) error {
	fieldValues, err := json.Marshal(record.FieldValues)
	if err != nil {
		return stderrors.NewSubmissionSaveFailedError(fmt.Errorf("marshal field values: %w", err))
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO submissions (
			submission_id, form_id, user_id, field_values,
			submitted_at, status, intent
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		record.SubmissionID, record.FormID, record.UserID, fieldValues,
		record.SubmittedAt, string(record.Status), string(record.Intent),
	)
	if err != nil {
		return stderrors.NewSubmissionSaveFailedError(err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, submissionID string) (*models.SubmissionRecord, error) {
	row := r.db.QueryRow(ctx, `
		SELECT submission_id, form_id, user_id, field_values,
		       submitted_at, processed_at, status, intent
		FROM submissions
		WHERE submission_id = $1`, submissionID)

	record, err := scanSubmission(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, stderrors.NewSubmissionNotFoundError(submissionID)
	}
	if err != nil {
		return nil, stderrors.NewSubmissionSaveFailedError(err)
	}
	return record, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.SubmissionRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT submission_id, form_id, user_id, field_values,
		       submitted_at, processed_at, status, intent
		FROM submissions
		WHERE user_id = $1
		ORDER BY submitted_at DESC`, userID)
	if err != nil {
		return nil, stderrors.NewSubmissionSaveFailedError(err)
	}
	defer rows.Close()

	var result []*models.SubmissionRecord
	for rows.Next() {
		record, err := scanSubmission(rows.Scan)
		if err != nil {
			return nil, stderrors.NewSubmissionSaveFailedError(err)
		}
		result = append(result, record)
	}
	if err := rows.Err(); err != nil {
		return nil, stderrors.NewSubmissionSaveFailedError(err)
	}
	return result, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, submissionID string, status models.SubmissionStatus, processedAt time.Time) error {
	result, err := r.db.Exec(ctx, `
		UPDATE submissions
		SET status = $1, processed_at = $2
		WHERE submission_id = $3`,
		string(status), processedAt, submissionID,
	)
	if err != nil {
		return stderrors.NewSubmissionSaveFailedError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return stderrors.NewSubmissionSaveFailedError(err)
	}
	if affected == 0 {
		return stderrors.NewSubmissionNotFoundError(submissionID)
	}
	return nil
}

func scanSubmission(scan func(dest ...interface{}) error) (*models.SubmissionRecord, error) {
	var (
		record      models.SubmissionRecord
		fieldValues []byte
		processedAt sql.NullTime
		status      string
		intent      string
	)

	err := scan(
		&record.SubmissionID, &record.FormID, &record.UserID, &fieldValues,
		&record.SubmittedAt, &processedAt, &status, &intent,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(fieldValues, &record.FieldValues); err != nil {
		return nil, fmt.Errorf("unmarshal field values: %w", err)
	}
	if processedAt.Valid {
		record.ProcessedAt = processedAt.Time
	}
	record.Status = models.SubmissionStatus(status)
	record.Intent = models.Intent(intent)

	return &record, nil
}
