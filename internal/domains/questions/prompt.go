package questions

import (
	"fmt"
	"strings"

	"github.com/xpanvictor/vidquiz/internal/constants/prompts"
)

// BuildPrompt renders the question request for one segment's text.
func BuildPrompt(text string, count int) string {
	tmpl := prompts.QUESTION_PROMPT.GetCurrentPrompt().Content
	return fmt.Sprintf(tmpl, count, strings.TrimSpace(text))
}
