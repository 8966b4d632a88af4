package questions

import (
	"context"
	"time"

	"github.com/xpanvictor/vidquiz/internal/config"
	"github.com/xpanvictor/vidquiz/internal/types"
	"github.com/xpanvictor/vidquiz/pkg/Logger"
	"github.com/xpanvictor/vidquiz/pkg/assistant"
)

// Generator turns transcript segments into multiple choice questions using
// a language model, falling back to generic questions when the model can't
// help.
type Generator struct {
	completer  assistant.Completer
	perSegment int
	delay      time.Duration
	logger     *Logger.Logger
}

func NewGenerator(completer assistant.Completer, cfg config.QuestionsConfig, logger *Logger.Logger) *Generator {
	perSegment := cfg.PerSegment
	if perSegment < 1 {
		perSegment = 3
	}
	return &Generator{
		completer:  completer,
		perSegment: perSegment,
		delay:      cfg.Delay,
		logger:     logger.Named("questions"),
	}
}

// ForSegment asks the model for questions about one segment. It never
// fails: errors, timeouts and unusable replies yield the fallback set.
func (g *Generator) ForSegment(ctx context.Context, seg types.Segment) []types.Question {
	completion, err := g.completer.Complete(ctx, BuildPrompt(seg.Text, g.perSegment))
	if err != nil {
		g.logger.Warnw("question generation failed, using fallback",
			"segment", seg.SegmentIndex, "backend", g.completer.Name(), "error", err)
		return Fallback(seg.SegmentIndex)
	}

	qs, err := ParseCompletion(completion, seg.SegmentIndex)
	if err != nil {
		g.logger.Warnw("unparseable completion, using fallback",
			"segment", seg.SegmentIndex, "error", err)
		return Fallback(seg.SegmentIndex)
	}
	if len(qs) == 0 {
		g.logger.Warnw("completion had no valid questions, using fallback", "segment", seg.SegmentIndex)
		return Fallback(seg.SegmentIndex)
	}
	return qs
}

// GenerateAll runs ForSegment over segments in order, pausing between
// calls. It stops early only when ctx is done.
func (g *Generator) GenerateAll(ctx context.Context, segments []types.Segment) ([]types.Question, error) {
	var all []types.Question
	for i, seg := range segments {
		if i > 0 && g.delay > 0 {
			select {
			case <-ctx.Done():
				return all, ctx.Err()
			case <-time.After(g.delay):
			}
		}
		if err := ctx.Err(); err != nil {
			return all, err
		}

		qs := g.ForSegment(ctx, seg)
		g.logger.Debugf("segment %d: %d questions", seg.SegmentIndex, len(qs))
		all = append(all, qs...)
	}
	return all, nil
}
