package transcript

import (
	"encoding/json"

	"github.com/xpanvictor/vidquiz/internal/types"
)

// ParseRaw decodes the speech-to-text result document. The document must
// be a JSON object with a "segments" array; anything else fails the whole
// transcription.
func ParseRaw(data []byte) ([]Fragment, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, types.Validationf("transcription output is not a JSON object: %v", err)
	}

	raw, ok := doc["segments"]
	if !ok {
		return nil, types.Validationf("transcription output has no segments field")
	}

	var fragments []Fragment
	if err := json.Unmarshal(raw, &fragments); err != nil || fragments == nil {
		return nil, types.Validationf("transcription segments is not a list")
	}
	return fragments, nil
}
