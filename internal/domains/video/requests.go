package video

import (
	"io"
	"time"

	"github.com/xpanvictor/vidquiz/internal/domains/quiz"
	"github.com/xpanvictor/vidquiz/internal/domains/scheduler"
	"github.com/xpanvictor/vidquiz/internal/types"
)

// UploadRequest carries an incoming media file.
type UploadRequest struct {
	Title    string
	Filename string
	Size     int64
	Content  io.Reader
}

// StatusResponse reports processing progress for a video.
// @Description Processing status
type StatusResponse struct {
	VideoID             string             `json:"videoId" example:"550e8400-e29b-41d4-a716-446655440000"`
	Status              PhaseStatus        `json:"status" example:"processing"`
	TranscriptionStatus PhaseStatus        `json:"transcriptionStatus" example:"completed"`
	QuestionStatus      PhaseStatus        `json:"questionStatus" example:"processing"`
	ErrorMessage        string             `json:"errorMessage,omitempty" example:""`
	JobID               string             `json:"jobId,omitempty" example:"0b6e1f5a-3c1e-4b8f-9d7e-2f1a3b4c5d6e"`
	JobState            scheduler.JobState `json:"jobState,omitempty" example:"active"`
	SegmentCount        int                `json:"segmentCount" example:"4"`
	QuestionCount       int                `json:"questionCount" example:"12"`
	UpdatedAt           time.Time          `json:"updatedAt" example:"2024-01-01T12:05:00Z"`
}

// TranscriptResponse is the JSON transcript view.
// @Description Transcript of a video
type TranscriptResponse struct {
	VideoID      string          `json:"videoId" example:"550e8400-e29b-41d4-a716-446655440000"`
	Title        string          `json:"title" example:"Intro to Go"`
	Segments     []types.Segment `json:"segments"`
	FullText     string          `json:"fullText" example:"Welcome to the lecture..."`
	SegmentCount int             `json:"segmentCount" example:"4"`
}

// TranscriptExport is a rendered transcript download.
type TranscriptExport struct {
	Filename    string
	ContentType string
	Body        string
}

// QuestionsResponse lists the stored question pool.
// @Description Stored questions of a video
type QuestionsResponse struct {
	VideoID   string           `json:"videoId" example:"550e8400-e29b-41d4-a716-446655440000"`
	Status    PhaseStatus      `json:"questionStatus" example:"completed"`
	Questions []types.Question `json:"questions"`
	Total     int              `json:"total" example:"12"`
}

// RegenerateRequest selects one segment, or all when SegmentIndex is nil.
// @Description Question regeneration request
type RegenerateRequest struct {
	SegmentIndex *int `json:"segmentIndex,omitempty" example:"1"`
}

// UpdateQuestionRequest represents the editable fields of a question
// @Description Request body for editing a question
type UpdateQuestionRequest struct {
	Question      *string   `json:"question,omitempty" example:"What does the speaker define first?"`
	Options       *[]string `json:"options,omitempty" example:"A,B,C,D"`
	CorrectAnswer *int      `json:"correctAnswer,omitempty" example:"1"`
	Explanation   *string   `json:"explanation,omitempty" example:"Defined in the opening minute"`
}

// SubmitQuizRequest carries answers for grading. QuizID is optional; when
// it names an assembled quiz, questionIndex refers to quiz positions.
// @Description Quiz submission
type SubmitQuizRequest struct {
	QuizID  string        `json:"quizId,omitempty" example:"01920b5e-8a4c-7b7e-9d52-3f0a8f9e6c11"`
	Answers []quiz.Answer `json:"answers"`
}

// LLMTestResponse reports a diagnostic completion round trip.
// @Description LLM connectivity check result
type LLMTestResponse struct {
	Backend   string   `json:"backend" example:"ollama"`
	Model     string   `json:"model" example:"llama3.1:8b-instruct"`
	Success   bool     `json:"success" example:"true"`
	Response  string   `json:"response,omitempty" example:"OK"`
	Error     string   `json:"error,omitempty" example:""`
	LatencyMs int64    `json:"latencyMs" example:"840"`
	Backends  []string `json:"backends" example:"ollama,openai"`
}
