package questions

import (
	"github.com/google/uuid"
	"github.com/xpanvictor/vidquiz/internal/types"
)

var genericQuestions = []types.Question{
	{
		Question: "What is the main topic discussed in this part of the video?",
		Options: []string{
			"The subject introduced by the speaker",
			"An unrelated advertisement",
			"Background music only",
			"None of the above",
		},
		CorrectAnswer: 0,
		Explanation:   "This section focuses on the subject the speaker introduces.",
	},
	{
		Question: "Which statement best describes the purpose of this section?",
		Options: []string{
			"To entertain without conveying information",
			"To explain or inform about the topic",
			"To list unrelated facts",
			"To end the video",
		},
		CorrectAnswer: 1,
		Explanation:   "The section is meant to explain or inform about its topic.",
	},
	{
		Question: "What should a viewer do to understand this section better?",
		Options: []string{
			"Skip it entirely",
			"Watch only the last minute",
			"Review the key points the speaker mentions",
			"Mute the audio",
		},
		CorrectAnswer: 2,
		Explanation:   "Reviewing the key points reinforces understanding.",
	},
}

// Fallback returns the built-in generic question set for segment, each
// with a fresh identity.
func Fallback(segment int) []types.Question {
	out := make([]types.Question, len(genericQuestions))
	for i, q := range genericQuestions {
		q.ID = uuid.New()
		q.SegmentIndex = segment
		q.Options = append([]string(nil), q.Options...)
		out[i] = q
	}
	return out
}
