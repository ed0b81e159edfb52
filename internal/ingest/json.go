package ingest

import (
	"encoding/json"
	"fmt"
	"io"
)

// RawName holds a subject's "name" field exactly as it appeared in the
// document. Subjects whose name is not a string are dropped downstream;
// since JSON allows a course name to be a number, an object, or missing
// entirely, we decode it into a json.RawMessage and let the problem
// builder decide whether it is a usable string instead of failing the
// decode.
type RawName struct {
	raw json.RawMessage
}

func (n *RawName) UnmarshalJSON(data []byte) error {
	n.raw = append(n.raw[:0], data...)
	return nil
}

func (n RawName) MarshalJSON() ([]byte, error) {
	if n.raw == nil {
		return []byte("null"), nil
	}
	return n.raw, nil
}

// AsString reports the decoded string and whether the field was in fact a
// JSON string (as opposed to a number, object, array, or absent).
func (n RawName) AsString() (string, bool) {
	if len(n.raw) == 0 || n.raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(n.raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// LoadRooms decodes the Rooms contract document: either a flat list of
// RoomRecord, or a map of faculty name to a list of RoomRecord.
func LoadRooms(r io.Reader) ([]RoomRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading rooms document: %w", err)
	}

	var flat []RoomRecord
	if err := json.Unmarshal(data, &flat); err == nil {
		return flat, nil
	}

	var grouped map[string][]RoomRecord
	if err := json.Unmarshal(data, &grouped); err != nil {
		return nil, fmt.Errorf("decoding rooms document: %w", err)
	}
	var out []RoomRecord
	for _, rooms := range grouped {
		out = append(out, rooms...)
	}
	return out, nil
}

// LoadCurricula decodes the Curricula contract document.
func LoadCurricula(r io.Reader) (CurriculaDocument, error) {
	var doc CurriculaDocument
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&doc); err != nil {
		return CurriculaDocument{}, fmt.Errorf("decoding curricula document: %w", err)
	}
	return doc, nil
}
