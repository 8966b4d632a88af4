package questions

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/xpanvictor/vidquiz/internal/types"
)

var ErrNoJSON = errors.New("no JSON object in completion")

type rawQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer *int     `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

type rawResponse struct {
	Questions []json.RawMessage `json:"questions"`
}

// extractJSON returns the span between the first '{' and the last '}'.
func extractJSON(completion string) (string, error) {
	start := strings.Index(completion, "{")
	end := strings.LastIndex(completion, "}")
	if start < 0 || end <= start {
		return "", ErrNoJSON
	}
	return completion[start : end+1], nil
}

// ParseCompletion decodes the model's reply into questions for segment.
// Entries that are not well formed four option questions, or that carry no
// usable answer key, are dropped on their own.
func ParseCompletion(completion string, segment int) ([]types.Question, error) {
	body, err := extractJSON(completion)
	if err != nil {
		return nil, err
	}

	var resp rawResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}

	out := make([]types.Question, 0, len(resp.Questions))
	for _, entry := range resp.Questions {
		var rq rawQuestion
		if err := json.Unmarshal(entry, &rq); err != nil || rq.CorrectAnswer == nil {
			continue
		}
		q := types.Question{
			ID:            uuid.New(),
			Question:      strings.TrimSpace(rq.Question),
			Options:       rq.Options,
			CorrectAnswer: *rq.CorrectAnswer,
			Explanation:   strings.TrimSpace(rq.Explanation),
			SegmentIndex:  segment,
		}
		if !q.Valid() {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}
