package transcript

import (
	"strings"

	"github.com/xpanvictor/vidquiz/internal/types"
)

const (
	// CoarseDurationSeconds closes a running segment once it spans this long.
	CoarseDurationSeconds = 300.0
	// MinSegmentWords is the word count a merged segment must reach before
	// it is emitted on its own.
	MinSegmentWords = 50
)

// Fragment is one timestamped unit as produced by the speech-to-text tool.
type Fragment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Merge turns raw fragments into segments: a duration bounded coarse pass
// followed by a minimum word count pass. Output indices are contiguous
// from zero.
func Merge(fragments []Fragment) []types.Segment {
	coarse := coarsePass(fragments)
	merged := minimumLengthPass(coarse)
	for i := range merged {
		merged[i].SegmentIndex = i
	}
	return merged
}

func coarsePass(fragments []Fragment) []types.Segment {
	var (
		out     []types.Segment
		current *types.Segment
	)

	for _, f := range fragments {
		text := strings.TrimSpace(f.Text)
		if text == "" {
			continue
		}

		if current != nil && current.EndTime-current.StartTime >= CoarseDurationSeconds {
			out = append(out, *current)
			current = nil
		}

		if current == nil {
			current = &types.Segment{StartTime: f.Start, EndTime: f.End, Text: text}
		} else {
			current.Text += " " + text
			current.EndTime = f.End
		}
		clampEnd(current)
	}

	if current != nil {
		out = append(out, *current)
	}
	return out
}

func minimumLengthPass(segments []types.Segment) []types.Segment {
	var (
		out     []types.Segment
		current *types.Segment
	)

	for _, seg := range segments {
		if current == nil {
			s := seg
			current = &s
		} else {
			current.Text += " " + seg.Text
			current.EndTime = seg.EndTime
			clampEnd(current)
		}

		if WordCount(current.Text) >= MinSegmentWords {
			out = append(out, *current)
			current = nil
		}
	}

	if current != nil {
		out = append(out, *current)
	}
	return out
}

// WordCount splits on single spaces and counts every token, empty ones
// included.
func WordCount(text string) int {
	return len(strings.Split(text, " "))
}

func clampEnd(s *types.Segment) {
	if s.EndTime < s.StartTime {
		s.EndTime = s.StartTime
	}
}
