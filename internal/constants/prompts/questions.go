package prompts

var (
	// QUESTION_PROMPT takes the question count then the transcript excerpt.
	QUESTION_PROMPT = SYS_PROMPT{
		Intent:         "MCQ generation",
		CurrentVersion: 0.2,
		Items: map[float32]PromptDefinition{
			0.1: {
				Version: 0.1,
				Content: `Generate %d multiple choice questions from this text.
Reply with JSON: {"questions": [{"question": "", "options": ["", "", "", ""], "correct_answer": 0, "explanation": ""}]}

Text: %s`,
			},
			0.2: {
				Version: 0.2,
				Content: `You are an educational assistant writing quiz questions for a video lesson.

Read the transcript excerpt below and write %d multiple-choice questions that test
understanding of its content. Each question must have exactly 4 options and exactly
one correct option.

Respond with JSON only, in this format:
{
  "questions": [
    {
      "question": "question text",
      "options": ["option A", "option B", "option C", "option D"],
      "correct_answer": 0,
      "explanation": "why the correct option is right"
    }
  ]
}

"correct_answer" is the zero-based index of the correct option.

Transcript excerpt:
"""
%s
"""`,
			},
		},
	}
)
