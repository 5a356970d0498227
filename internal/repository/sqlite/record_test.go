package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dysobo/niuzi-assistant/internal/domain"
)

func TestRecordRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "rec")
	ctx := context.Background()

	start := time.Date(2024, 1, 2, 8, 30, 0, 0, time.UTC)
	rec := &domain.Record{UserID: user.ID, StartTime: start}
	if err := db.Records().Create(ctx, rec); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.ID == 0 {
		t.Fatal("expected record ID to be set")
	}

	got, err := db.Records().GetByID(ctx, rec.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.StartTime.Equal(start) {
		t.Fatalf("expected start %v, got %v", start, got.StartTime)
	}
	if !got.Open() {
		t.Fatal("expected new record to be open")
	}
	if got.Duration != nil {
		t.Fatalf("expected nil duration for open record, got %d", *got.Duration)
	}
}

func TestRecordRepository_Create_SecondOpenRejected(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "busy")
	ctx := context.Background()

	if err := db.Records().Create(ctx, &domain.Record{UserID: user.ID}); err != nil {
		t.Fatalf("Create first: %v", err)
	}
	err := db.Records().Create(ctx, &domain.Record{UserID: user.ID})
	if !errors.Is(err, domain.ErrActiveRecord) {
		t.Fatalf("expected ErrActiveRecord, got %v", err)
	}

	// Another user is unaffected.
	other := createUser(t, db, "other")
	if err := db.Records().Create(ctx, &domain.Record{UserID: other.ID}); err != nil {
		t.Fatalf("Create for other user: %v", err)
	}
}

func TestRecordRepository_Finish(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "finisher")
	ctx := context.Background()

	start := time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)
	rec := &domain.Record{UserID: user.ID, StartTime: start}
	if err := db.Records().Create(ctx, rec); err != nil {
		t.Fatalf("Create: %v", err)
	}

	rec.Finish(start.Add(25*time.Minute + 900*time.Millisecond))
	if err := db.Records().Finish(ctx, rec); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	got, err := db.Records().GetByID(ctx, rec.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Open() {
		t.Fatal("expected record to be finished")
	}
	if got.Duration == nil || *got.Duration != 1500 {
		t.Fatalf("expected duration 1500, got %v", got.Duration)
	}

	// Finishing twice is rejected.
	if err := db.Records().Finish(ctx, rec); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound when finishing twice, got %v", err)
	}

	// The user may start again once the previous record is closed.
	if err := db.Records().Create(ctx, &domain.Record{UserID: user.ID}); err != nil {
		t.Fatalf("Create after finish: %v", err)
	}
}

func TestRecordRepository_GetOpenByUser(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "opener")
	ctx := context.Background()

	if _, err := db.Records().GetOpenByUser(ctx, user.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound with no records, got %v", err)
	}

	rec := &domain.Record{UserID: user.ID}
	if err := db.Records().Create(ctx, rec); err != nil {
		t.Fatalf("Create: %v", err)
	}

	open, err := db.Records().GetOpenByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetOpenByUser: %v", err)
	}
	if open.ID != rec.ID {
		t.Fatalf("expected open record %d, got %d", rec.ID, open.ID)
	}
}

func TestRecordRepository_ListByUser_OrderedByStart(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "lister")
	other := createUser(t, db, "someone")
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for _, offset := range []time.Duration{48 * time.Hour, 0, 24 * time.Hour} {
		rec := &domain.Record{UserID: user.ID, StartTime: base.Add(offset)}
		if err := db.Records().Create(ctx, rec); err != nil {
			t.Fatalf("Create: %v", err)
		}
		rec.Finish(rec.StartTime.Add(10 * time.Minute))
		if err := db.Records().Finish(ctx, rec); err != nil {
			t.Fatalf("Finish: %v", err)
		}
	}
	if err := db.Records().Create(ctx, &domain.Record{UserID: other.ID, StartTime: base}); err != nil {
		t.Fatalf("Create other: %v", err)
	}

	records, err := db.Records().ListByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i := 1; i < len(records); i++ {
		if !records[i-1].StartTime.Before(records[i].StartTime) {
			t.Fatalf("records not ordered by start time: %v then %v", records[i-1].StartTime, records[i].StartTime)
		}
	}
}

func TestRecordRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "deleter")
	ctx := context.Background()

	rec := &domain.Record{UserID: user.ID}
	if err := db.Records().Create(ctx, rec); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := db.Records().Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := db.Records().GetByID(ctx, rec.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := db.Records().Delete(ctx, rec.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting twice, got %v", err)
	}
}
