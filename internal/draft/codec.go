package draft

import (
	"encoding/json"
	"time"

	"github.com/voyagedesk/tripquote/internal/quotation"
)

// SchemaVersion tags the draft envelope for forward compatibility.
const SchemaVersion = 1

// envelope is the persisted draft layout: a version tag, the wall-clock
// write time in epoch milliseconds (informational only), and the form
// snapshot as raw JSON.
type envelope struct {
	Version   int             `json:"version"`
	UpdatedAt int64           `json:"updatedAt"`
	Data      json.RawMessage `json:"data"`
}

// Encode wraps a form snapshot in the versioned envelope and serializes it
// to UTF-8 JSON.
func Encode(f quotation.Form) ([]byte, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{
		Version:   SchemaVersion,
		UpdatedAt: time.Now().UnixMilli(),
		Data:      data,
	})
}

// Decode parses a stored draft back into a form. Any parse failure,
// missing data field or malformed payload yields nil — indistinguishable
// from "no draft exists", so a corrupted draft can never block an agent
// from starting fresh.
func Decode(raw []byte) *quotation.Form {
	payload := payloadOf(raw)
	if payload == nil {
		return nil
	}
	var f quotation.Form
	if err := json.Unmarshal(payload, &f); err != nil {
		return nil
	}
	return &f
}

// MergeOverDefaults applies a stored draft over caller-supplied defaults:
// every top-level field present in the draft payload overrides the
// default, fields the payload omits keep their default. An unreadable
// draft leaves the defaults untouched.
func MergeOverDefaults(defaults quotation.Form, raw []byte) quotation.Form {
	payload := payloadOf(raw)
	if payload == nil {
		return defaults
	}
	merged := defaults.Clone()
	if err := json.Unmarshal(payload, &merged); err != nil {
		return defaults
	}
	return merged
}

// payloadOf extracts the form JSON from an envelope, nil when the envelope
// is unreadable or carries no data.
func payloadOf(raw []byte) json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	return env.Data
}
