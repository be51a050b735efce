package database

import (
	"context"
	"fmt"

	"clipseek/internal/dres"
)

// SubmissionRepository stores the contest submission history. It implements
// dres.HistoryStore.
type SubmissionRepository struct {
	db *DB
}

func NewSubmissionRepository(db *DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) Record(ctx context.Context, rec dres.SubmissionRecord) error {
	query := `
		INSERT INTO submissions (id, video_id, timestamp_sec, verdict, description, success, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	success := 0
	if rec.Success {
		success = 1
	}

	_, err := r.db.conn.ExecContext(ctx, query,
		rec.ID, rec.VideoID, rec.TimestampSec, rec.Verdict, rec.Description, success, rec.SubmittedAt)
	if err != nil {
		return fmt.Errorf("failed to record submission: %w", err)
	}
	return nil
}

// List returns the most recent submissions, newest first. An empty videoID
// returns attempts for every video.
func (r *SubmissionRepository) List(ctx context.Context, videoID string, limit int) ([]dres.SubmissionRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, video_id, timestamp_sec, verdict, description, success, submitted_at
		FROM submissions
	`
	args := []any{}
	if videoID != "" {
		query += " WHERE video_id = $1"
		args = append(args, videoID)
	}
	query += fmt.Sprintf(" ORDER BY submitted_at DESC LIMIT %d", limit)

	rows, err := r.db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	var records []dres.SubmissionRecord
	for rows.Next() {
		var rec dres.SubmissionRecord
		var success int
		err := rows.Scan(&rec.ID, &rec.VideoID, &rec.TimestampSec, &rec.Verdict,
			&rec.Description, &success, &rec.SubmittedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		rec.Success = success != 0
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return records, nil
}
