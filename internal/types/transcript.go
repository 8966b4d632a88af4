package types

import "github.com/google/uuid"

// Segment is a contiguous, time bounded span of transcript text.
// @Description Transcript segment
type Segment struct {
	StartTime    float64 `json:"startTime" example:"0"`
	EndTime      float64 `json:"endTime" example:"312.4"`
	Text         string  `json:"text" example:"Welcome to the lecture"`
	SegmentIndex int     `json:"segmentIndex" example:"0"`
}

// OptionCount is the number of answer options every question carries.
const OptionCount = 4

// Question is a multiple choice comprehension question tied to a segment.
// @Description Multiple choice question
type Question struct {
	ID            uuid.UUID `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Question      string    `json:"question" example:"What is the main topic?"`
	Options       []string  `json:"options" example:"A,B,C,D"`
	CorrectAnswer int       `json:"correctAnswer" example:"0"`
	Explanation   string    `json:"explanation,omitempty" example:"Stated at the start"`
	SegmentIndex  int       `json:"segmentIndex" example:"0"`
}

// Valid reports whether q has text, exactly four options and an answer in range.
func (q Question) Valid() bool {
	return q.Question != "" &&
		len(q.Options) == OptionCount &&
		q.CorrectAnswer >= 0 && q.CorrectAnswer < OptionCount
}
