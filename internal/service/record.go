package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/dysobo/niuzi-assistant/internal/domain"
)

// RecordService owns the record lifecycle: start, end, list and delete.
type RecordService struct {
	records domain.RecordRepository
	now     func() time.Time
}

// NewRecordService creates a new RecordService.
func NewRecordService(records domain.RecordRepository) *RecordService {
	return &RecordService{records: records, now: time.Now}
}

// Start opens a new record for the user beginning now.
// It fails with ErrActiveRecord when the user has an unfinished record.
func (s *RecordService) Start(ctx context.Context, userID int64) (*domain.Record, error) {
	_, err := s.records.GetOpenByUser(ctx, userID)
	if err == nil {
		return nil, domain.ErrActiveRecord
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check open record: %w", err)
	}

	record := &domain.Record{
		UserID:    userID,
		StartTime: s.now().UTC(),
	}
	if err := s.records.Create(ctx, record); err != nil {
		if errors.Is(err, domain.ErrActiveRecord) {
			return nil, err
		}
		return nil, fmt.Errorf("create record: %w", err)
	}
	return record, nil
}

// End closes an open record owned by the user. Records that are missing,
// owned by someone else or already ended all report ErrNotFound.
func (s *RecordService) End(ctx context.Context, userID, recordID int64) (*domain.Record, error) {
	record, err := s.owned(ctx, userID, recordID)
	if err != nil {
		return nil, err
	}
	if !record.Open() {
		return nil, domain.ErrNotFound
	}

	record.Finish(s.now().UTC())
	if err := s.records.Finish(ctx, record); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("finish record: %w", err)
	}
	return record, nil
}

// Current returns the user's open record, or ErrNotFound.
func (s *RecordService) Current(ctx context.Context, userID int64) (*domain.Record, error) {
	return s.records.GetOpenByUser(ctx, userID)
}

// List returns the user's records, newest first.
func (s *RecordService) List(ctx context.Context, userID int64) ([]domain.Record, error) {
	records, err := s.records.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	slices.Reverse(records)
	return records, nil
}

// Delete removes a record owned by the user.
func (s *RecordService) Delete(ctx context.Context, userID, recordID int64) error {
	if _, err := s.owned(ctx, userID, recordID); err != nil {
		return err
	}
	if err := s.records.Delete(ctx, recordID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

func (s *RecordService) owned(ctx context.Context, userID, recordID int64) (*domain.Record, error) {
	record, err := s.records.GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get record: %w", err)
	}
	// Don't reveal records of other users.
	if record.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return record, nil
}
