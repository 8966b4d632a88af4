package transcript

import (
	"fmt"
	"math"
	"strings"

	"github.com/xpanvictor/vidquiz/internal/types"
)

// Format is a transcript download format.
type Format string

const (
	FormatText Format = "txt"
	FormatSRT  Format = "srt"
	FormatVTT  Format = "vtt"
)

// ContentType returns the MIME type served for f.
func (f Format) ContentType() string {
	switch f {
	case FormatSRT:
		return "application/x-subrip; charset=utf-8"
	case FormatVTT:
		return "text/vtt; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// ParseFormat accepts txt, srt and vtt (case insensitive); empty means txt.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText, "text":
		return FormatText, nil
	case FormatSRT:
		return FormatSRT, nil
	case FormatVTT, "webvtt":
		return FormatVTT, nil
	}
	return "", types.Validationf("unsupported transcript format %q", s)
}

// Render writes segments in the given format.
func Render(f Format, segments []types.Segment) string {
	switch f {
	case FormatSRT:
		return SRT(segments)
	case FormatVTT:
		return WebVTT(segments)
	default:
		return PlainText(segments)
	}
}

// FullText joins every segment into one running transcript.
func FullText(segments []types.Segment) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		parts = append(parts, s.Text)
	}
	return strings.Join(parts, " ")
}

func PlainText(segments []types.Segment) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		parts = append(parts, s.Text)
	}
	return strings.Join(parts, "\n\n")
}

func SRT(segments []types.Segment) string {
	var b strings.Builder
	for i, s := range segments {
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n",
			i+1, timestamp(s.StartTime, ','), timestamp(s.EndTime, ','), s.Text)
	}
	return b.String()
}

func WebVTT(segments []types.Segment) string {
	var b strings.Builder
	b.WriteString("WEBVTT\n\n")
	for _, s := range segments {
		fmt.Fprintf(&b, "%s --> %s\n%s\n\n",
			timestamp(s.StartTime, '.'), timestamp(s.EndTime, '.'), s.Text)
	}
	return b.String()
}

// SRTTimestamp formats seconds as HH:MM:SS,mmm.
func SRTTimestamp(seconds float64) string { return timestamp(seconds, ',') }

// VTTTimestamp formats seconds as HH:MM:SS.mmm.
func VTTTimestamp(seconds float64) string { return timestamp(seconds, '.') }

func timestamp(seconds float64, sep byte) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	total := int64(math.Round(seconds * 1000))
	ms := total % 1000
	s := (total / 1000) % 60
	m := (total / 60000) % 60
	h := total / 3600000
	return fmt.Sprintf("%02d:%02d:%02d%c%03d", h, m, s, sep, ms)
}
