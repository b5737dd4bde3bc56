// Package export serializes field values to the portable document format
// used for file export and import. Import is all-or-nothing: a malformed
// document is rejected whole, never partially applied.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tidwall/gjson"

	"github.com/goliatone/go-metagen/pkg/model"
	"github.com/goliatone/go-metagen/pkg/storage"
)

// ErrInvalidDocument is returned when an import document lacks a parsable
// top-level data object.
var ErrInvalidDocument = errors.New("export: document has no parsable data object")

// Document is the exported file format.
type Document struct {
	Version   string       `json:"version"`
	Timestamp string       `json:"timestamp"`
	Data      model.Values `json:"data"`
}

// Marshal serializes values into a versioned, timestamped document.
func Marshal(values model.Values) ([]byte, error) {
	return MarshalAt(values, time.Now())
}

// MarshalAt is Marshal with an explicit timestamp, for deterministic output.
func MarshalAt(values model.Values, at time.Time) ([]byte, error) {
	doc := Document{
		Version:   storage.SnapshotVersion,
		Timestamp: at.UTC().Format(time.RFC3339),
		Data:      values.Clone(),
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: encode document: %w", err)
	}
	return out, nil
}

// Unmarshal parses an exported document and returns its values. The whole
// operation fails when the top-level data key is absent or not an object.
func Unmarshal(doc []byte) (model.Values, error) {
	data := gjson.GetBytes(doc, "data")
	if !data.Exists() || !data.IsObject() {
		return nil, ErrInvalidDocument
	}

	var parsed Document
	if err := json.Unmarshal(doc, &parsed); err != nil {
		return nil, fmt.Errorf("export: decode document: %w", err)
	}
	if parsed.Data == nil {
		parsed.Data = model.Values{}
	}
	return parsed.Data, nil
}
