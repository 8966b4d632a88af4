package video

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/xpanvictor/vidquiz/internal/domains/video"
	"github.com/xpanvictor/vidquiz/internal/types"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get database instance: %v", err)
	}
	// every connection to :memory: is its own database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&VideoEntity{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return db
}

func TestGormRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewGormVideoRepo(newTestDB(t))

	v := video.NewVideo("Lecture", "lecture.mp4", 10)
	if err := repo.Create(ctx, v); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.GetByID(ctx, v.ID.String())
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Title != "Lecture" || got.Status != video.StatusPending || len(got.Segments) != 0 {
		t.Errorf("Unexpected video %+v", got)
	}

	before := got.UpdatedAt
	time.Sleep(5 * time.Millisecond)
	got.Status = video.StatusCompleted
	got.Segments = []types.Segment{{StartTime: 0, EndTime: 12.5, Text: "hello there", SegmentIndex: 0}}
	got.Questions = []types.Question{{
		ID:            uuid.New(),
		Question:      "What was said?",
		Options:       []string{"hello there", "bye", "nothing", "thanks"},
		CorrectAnswer: 0,
	}}
	if err := repo.Save(ctx, got); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	again, err := repo.GetByID(ctx, v.ID.String())
	if err != nil {
		t.Fatalf("GetByID after save failed: %v", err)
	}
	if !again.UpdatedAt.After(before) {
		t.Errorf("Expected UpdatedAt to move past %v, got %v", before, again.UpdatedAt)
	}
	if again.Status != video.StatusCompleted || len(again.Segments) != 1 || again.Segments[0].Text != "hello there" {
		t.Errorf("Save did not persist transcript: %+v", again)
	}
	if len(again.Questions) != 1 || again.Questions[0].ID != got.Questions[0].ID {
		t.Errorf("Save did not persist questions: %+v", again.Questions)
	}

	if err := repo.Delete(ctx, v.ID.String()); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.GetByID(ctx, v.ID.String()); !errors.Is(err, video.ErrVideoNotFound) {
		t.Errorf("Expected not found after delete, got %v", err)
	}
	if err := repo.Delete(ctx, v.ID.String()); !errors.Is(err, video.ErrVideoNotFound) {
		t.Errorf("Expected not found on second delete, got %v", err)
	}
	if err := repo.Save(ctx, again); !errors.Is(err, video.ErrVideoNotFound) {
		t.Errorf("Expected not found on save after delete, got %v", err)
	}
}

func TestGormRepoGetByIDRejectsBadID(t *testing.T) {
	repo := NewGormVideoRepo(newTestDB(t))
	if _, err := repo.GetByID(context.Background(), "not-a-uuid"); !errors.Is(err, video.ErrVideoNotFound) {
		t.Errorf("Expected not found, got %v", err)
	}
}

func TestGormRepoListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewGormVideoRepo(newTestDB(t))
	base := time.Now().Add(-time.Hour)

	var ids []string
	for i := 0; i < 3; i++ {
		v := video.NewVideo("", "v.mp4", 1)
		v.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := repo.Create(ctx, v); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		ids = append(ids, v.ID.String())
	}

	page, total, err := repo.List(ctx, 0, 2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 3 || len(page) != 2 {
		t.Fatalf("Expected 2 of 3, got %d of %d", len(page), total)
	}
	if page[0].ID.String() != ids[2] || page[1].ID.String() != ids[1] {
		t.Errorf("Unexpected order %s %s", page[0].ID, page[1].ID)
	}
}
