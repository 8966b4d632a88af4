package video

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xpanvictor/vidquiz/internal/types"
)

var ErrVideoNotFound = fmt.Errorf("video %w", types.ErrNotFound)

// Video is the aggregate persisted per upload. It is read and written
// wholesale; concurrent writers overwrite each other.
// @Description Uploaded video with its processing state, transcript and questions
type Video struct {
	ID                  uuid.UUID        `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Title               string           `json:"title" example:"Intro to Go"`
	OriginalName        string           `json:"originalName" example:"lecture-01.mp4"`
	FilePath            string           `json:"-"`
	MimeType            string           `json:"mimeType" example:"video/mp4"`
	Size                int64            `json:"size" example:"10485760"`
	Status              PhaseStatus      `json:"status" example:"processing"`
	TranscriptionStatus PhaseStatus      `json:"transcriptionStatus" example:"completed"`
	QuestionStatus      PhaseStatus      `json:"questionStatus" example:"processing"`
	ErrorMessage        string           `json:"errorMessage,omitempty" example:""`
	JobID               string           `json:"jobId,omitempty" example:"0b6e1f5a-3c1e-4b8f-9d7e-2f1a3b4c5d6e"`
	Segments            []types.Segment  `json:"segments"`
	Questions           []types.Question `json:"questions"`
	CreatedAt           time.Time        `json:"createdAt" example:"2024-01-01T12:00:00Z"`
	UpdatedAt           time.Time        `json:"updatedAt" example:"2024-01-01T12:05:00Z"`
}

// NewVideo creates a pending video record for a stored upload.
func NewVideo(title, originalName string, size int64) *Video {
	if strings.TrimSpace(title) == "" {
		title = strings.TrimSuffix(originalName, filepath.Ext(originalName))
	}
	now := time.Now()
	return &Video{
		ID:                  uuid.New(),
		Title:               title,
		OriginalName:        originalName,
		MimeType:            MimeTypeFor(originalName),
		Size:                size,
		Status:              StatusPending,
		TranscriptionStatus: StatusPending,
		QuestionStatus:      StatusPending,
		Segments:            []types.Segment{},
		Questions:           []types.Question{},
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// VideoSummary is the list view of a video, without transcript or questions.
// @Description Video list entry
type VideoSummary struct {
	ID                  string      `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Title               string      `json:"title" example:"Intro to Go"`
	OriginalName        string      `json:"originalName" example:"lecture-01.mp4"`
	Size                int64       `json:"size" example:"10485760"`
	Status              PhaseStatus `json:"status" example:"completed"`
	TranscriptionStatus PhaseStatus `json:"transcriptionStatus" example:"completed"`
	QuestionStatus      PhaseStatus `json:"questionStatus" example:"completed"`
	SegmentCount        int         `json:"segmentCount" example:"4"`
	QuestionCount       int         `json:"questionCount" example:"12"`
	CreatedAt           time.Time   `json:"createdAt" example:"2024-01-01T12:00:00Z"`
}

func (v *Video) ToSummary() VideoSummary {
	return VideoSummary{
		ID:                  v.ID.String(),
		Title:               v.Title,
		OriginalName:        v.OriginalName,
		Size:                v.Size,
		Status:              v.Status,
		TranscriptionStatus: v.TranscriptionStatus,
		QuestionStatus:      v.QuestionStatus,
		SegmentCount:        len(v.Segments),
		QuestionCount:       len(v.Questions),
		CreatedAt:           v.CreatedAt,
	}
}

// ListVideosRequest represents pagination for listing videos
// @Description Query parameters for listing videos
type ListVideosRequest struct {
	Offset int `form:"offset" example:"0"`
	Limit  int `form:"limit" example:"20"`
}

// VideoRepository persists Video aggregates.
type VideoRepository interface {
	Create(ctx context.Context, v *Video) error

	// GetByID returns ErrVideoNotFound for unknown or malformed ids.
	GetByID(ctx context.Context, id string) (*Video, error)

	// List returns videos newest first along with the total count.
	List(ctx context.Context, offset, limit int) ([]Video, int64, error)

	// Save overwrites the whole record and bumps UpdatedAt.
	Save(ctx context.Context, v *Video) error

	Delete(ctx context.Context, id string) error
}
