package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dysobo/niuzi-assistant/internal/domain"
)

// RecordRepository implements domain.RecordRepository using SQLite.
type RecordRepository struct {
	db *sql.DB
}

// NewRecordRepository creates a new SQLite-backed RecordRepository.
func NewRecordRepository(db *DB) *RecordRepository {
	return &RecordRepository{db: db.SqlDB}
}

const recordColumns = `id, user_id, start_time, end_time, duration, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner, rec *domain.Record) error {
	return row.Scan(&rec.ID, &rec.UserID, &rec.StartTime, &rec.EndTime, &rec.Duration, &rec.CreatedAt, &rec.UpdatedAt)
}

func (r *RecordRepository) Create(ctx context.Context, record *domain.Record) error {
	now := time.Now().UTC()
	if record.StartTime.IsZero() {
		record.StartTime = now
	}
	record.StartTime = record.StartTime.UTC()

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO records (user_id, start_time, end_time, duration, created_at, updated_at)
		 VALUES (?, ?, NULL, NULL, ?, ?)`,
		record.UserID, record.StartTime, now, now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrActiveRecord
		}
		return fmt.Errorf("insert record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get record id: %w", err)
	}

	record.ID = id
	record.EndTime = nil
	record.Duration = nil
	record.CreatedAt = now
	record.UpdatedAt = now
	return nil
}

func (r *RecordRepository) GetByID(ctx context.Context, id int64) (*domain.Record, error) {
	rec := &domain.Record{}
	err := scanRecord(r.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM records WHERE id = ?`, id), rec)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}

func (r *RecordRepository) GetOpenByUser(ctx context.Context, userID int64) (*domain.Record, error) {
	rec := &domain.Record{}
	err := scanRecord(r.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM records WHERE user_id = ? AND end_time IS NULL`, userID), rec)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get open record: %w", err)
	}
	return rec, nil
}

func (r *RecordRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Record, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM records
		 WHERE user_id = ?
		 ORDER BY start_time ASC, id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		var rec domain.Record
		if err := scanRecord(rows, &rec); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *RecordRepository) Finish(ctx context.Context, record *domain.Record) error {
	if record.EndTime == nil || record.Duration == nil {
		return fmt.Errorf("%w: record has no end time", domain.ErrInvalidInput)
	}
	now := time.Now().UTC()
	end := record.EndTime.UTC()

	result, err := r.db.ExecContext(ctx,
		`UPDATE records SET end_time = ?, duration = ?, updated_at = ?
		 WHERE id = ? AND end_time IS NULL`,
		end, *record.Duration, now, record.ID,
	)
	if err != nil {
		return fmt.Errorf("finish record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	record.EndTime = &end
	record.UpdatedAt = now
	return nil
}

func (r *RecordRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM records WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
