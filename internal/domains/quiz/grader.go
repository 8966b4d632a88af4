package quiz

import (
	"math"

	"github.com/google/uuid"
	"github.com/xpanvictor/vidquiz/internal/types"
)

// DefaultExplanation is reported when a stored question has none.
const DefaultExplanation = "No explanation available."

// Answer is one submitted choice.
// @Description Submitted answer
type Answer struct {
	QuestionIndex  int `json:"questionIndex" example:"0"`
	SelectedAnswer int `json:"selectedAnswer" example:"2"`
}

// AnswerResult is the graded outcome of one Answer.
// @Description Graded answer
type AnswerResult struct {
	QuestionIndex  int    `json:"questionIndex" example:"0"`
	Question       string `json:"question" example:"What is the main topic?"`
	SelectedAnswer int    `json:"selectedAnswer" example:"2"`
	CorrectAnswer  int    `json:"correctAnswer" example:"2"`
	IsCorrect      bool   `json:"isCorrect" example:"true"`
	Explanation    string `json:"explanation" example:"Stated at the start"`
}

// Result summarises a graded submission. Total counts every submitted
// answer, including skipped ones.
// @Description Quiz grading result
type Result struct {
	Score      int            `json:"score" example:"7"`
	Total      int            `json:"total" example:"10"`
	Percentage int            `json:"percentage" example:"70"`
	Results    []AnswerResult `json:"results"`
}

// Grade scores answers against the stored question list. Each
// QuestionIndex is first resolved through offsets when offsets is non-nil
// (quiz position to stored offset, negative for gone questions); otherwise
// it is used directly as a stored offset. Unresolvable indexes are skipped.
func Grade(stored []types.Question, answers []Answer, offsets []int) Result {
	res := Result{Total: len(answers), Results: make([]AnswerResult, 0, len(answers))}

	for _, ans := range answers {
		off := ans.QuestionIndex
		if offsets != nil {
			if off < 0 || off >= len(offsets) {
				continue
			}
			off = offsets[off]
		}
		if off < 0 || off >= len(stored) {
			continue
		}

		q := stored[off]
		correct := ans.SelectedAnswer == q.CorrectAnswer
		if correct {
			res.Score++
		}

		explanation := q.Explanation
		if explanation == "" {
			explanation = DefaultExplanation
		}

		res.Results = append(res.Results, AnswerResult{
			QuestionIndex:  ans.QuestionIndex,
			Question:       q.Question,
			SelectedAnswer: ans.SelectedAnswer,
			CorrectAnswer:  q.CorrectAnswer,
			IsCorrect:      correct,
			Explanation:    explanation,
		})
	}

	if res.Total > 0 {
		res.Percentage = int(math.Round(float64(res.Score) / float64(res.Total) * 100))
	}
	return res
}

// ResolveOffsets maps quiz ordered question ids onto their current stored
// offsets; ids no longer stored map to -1.
func ResolveOffsets(stored []types.Question, ids []uuid.UUID) []int {
	byID := make(map[uuid.UUID]int, len(stored))
	for i, q := range stored {
		byID[q.ID] = i
	}

	offsets := make([]int, len(ids))
	for i, id := range ids {
		off, ok := byID[id]
		if !ok {
			off = -1
		}
		offsets[i] = off
	}
	return offsets
}
