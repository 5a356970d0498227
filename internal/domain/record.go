package domain

import (
	"context"
	"time"
)

// Record is one timed session. EndTime and Duration are both nil while the
// record is open and both set once it has been ended.
type Record struct {
	ID        int64
	UserID    int64
	StartTime time.Time
	EndTime   *time.Time
	Duration  *int64 // whole seconds, floor(EndTime - StartTime)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Open reports whether the record has not been ended yet.
func (r *Record) Open() bool {
	return r.EndTime == nil
}

// Finish closes the record at end, truncating the elapsed time to whole seconds.
func (r *Record) Finish(end time.Time) {
	d := int64(end.Sub(r.StartTime) / time.Second)
	if d < 0 {
		d = 0
	}
	r.EndTime = &end
	r.Duration = &d
}

// RecordRepository defines persistence operations for records.
type RecordRepository interface {
	// Create inserts an open record. It returns ErrActiveRecord when the
	// user already has one.
	Create(ctx context.Context, record *Record) error
	GetByID(ctx context.Context, id int64) (*Record, error)
	GetOpenByUser(ctx context.Context, userID int64) (*Record, error)
	// ListByUser returns every record of the user ordered by start time ascending.
	ListByUser(ctx context.Context, userID int64) ([]Record, error)
	// Finish persists EndTime and Duration of an open record. It returns
	// ErrNotFound when the record does not exist or is already finished.
	Finish(ctx context.Context, record *Record) error
	Delete(ctx context.Context, id int64) error
}
