package video

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xpanvictor/vidquiz/internal/domains/video"
	"github.com/xpanvictor/vidquiz/internal/types"
	"gorm.io/gorm"
)

// SegmentList stores transcript segments in a JSON column
type SegmentList []types.Segment

// Value implements driver.Valuer interface for GORM
func (s SegmentList) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner interface for GORM
func (s *SegmentList) Scan(value interface{}) error {
	*s = SegmentList{}
	return scanJSON(value, s)
}

// QuestionList stores generated questions in a JSON column
type QuestionList []types.Question

func (q QuestionList) Value() (driver.Value, error) {
	if len(q) == 0 {
		return "[]", nil
	}
	return json.Marshal(q)
}

func (q *QuestionList) Scan(value interface{}) error {
	*q = QuestionList{}
	return scanJSON(value, q)
}

func scanJSON(value interface{}, dst interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dst)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported JSON column type %T", value)
	}
}

// VideoEntity represents the database entity for Video with GORM tags
type VideoEntity struct {
	ID                  uuid.UUID    `gorm:"primaryKey;type:char(36);not null"`
	Title               string       `gorm:"column:title;type:varchar(255);not null"`
	OriginalName        string       `gorm:"column:original_name;type:varchar(255);not null"`
	FilePath            string       `gorm:"column:file_path;type:varchar(1024);not null"`
	MimeType            string       `gorm:"column:mime_type;type:varchar(100)"`
	Size                int64        `gorm:"column:size;not null"`
	Status              string       `gorm:"column:status;type:varchar(20);not null;index"`
	TranscriptionStatus string       `gorm:"column:transcription_status;type:varchar(20);not null"`
	QuestionStatus      string       `gorm:"column:question_status;type:varchar(20);not null"`
	ErrorMessage        string       `gorm:"column:error_message;type:text"`
	JobID               string       `gorm:"column:job_id;type:varchar(64)"`
	Segments            SegmentList  `gorm:"type:json;column:segments"`
	Questions           QuestionList `gorm:"type:json;column:questions"`
	CreatedAt           time.Time    `gorm:"autoCreateTime(3);index"`
	UpdatedAt           time.Time    `gorm:"autoUpdateTime(3)"`
}

// TableName returns the table name for GORM
func (VideoEntity) TableName() string {
	return "videos"
}

// BeforeCreate is a GORM hook to ensure UUID is set
func (e *VideoEntity) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// ToDomain converts VideoEntity to domain Video
func (e *VideoEntity) ToDomain() *video.Video {
	segments := []types.Segment(e.Segments)
	if segments == nil {
		segments = []types.Segment{}
	}
	questions := []types.Question(e.Questions)
	if questions == nil {
		questions = []types.Question{}
	}

	return &video.Video{
		ID:                  e.ID,
		Title:               e.Title,
		OriginalName:        e.OriginalName,
		FilePath:            e.FilePath,
		MimeType:            e.MimeType,
		Size:                e.Size,
		Status:              video.PhaseStatus(e.Status),
		TranscriptionStatus: video.PhaseStatus(e.TranscriptionStatus),
		QuestionStatus:      video.PhaseStatus(e.QuestionStatus),
		ErrorMessage:        e.ErrorMessage,
		JobID:               e.JobID,
		Segments:            segments,
		Questions:           questions,
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           e.UpdatedAt,
	}
}

// FromDomain converts domain Video to VideoEntity
func (e *VideoEntity) FromDomain(v *video.Video) {
	e.ID = v.ID
	e.Title = v.Title
	e.OriginalName = v.OriginalName
	e.FilePath = v.FilePath
	e.MimeType = v.MimeType
	e.Size = v.Size
	e.Status = string(v.Status)
	e.TranscriptionStatus = string(v.TranscriptionStatus)
	e.QuestionStatus = string(v.QuestionStatus)
	e.ErrorMessage = v.ErrorMessage
	e.JobID = v.JobID
	e.Segments = SegmentList(v.Segments)
	e.Questions = QuestionList(v.Questions)
	e.CreatedAt = v.CreatedAt
	e.UpdatedAt = v.UpdatedAt
}

// NewVideoEntityFromDomain creates a new VideoEntity from domain Video
func NewVideoEntityFromDomain(v *video.Video) *VideoEntity {
	entity := &VideoEntity{}
	entity.FromDomain(v)
	return entity
}
