package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tidwall/jsonc"

	"github.com/simonhull/tagframe/internal/types"
)

// EncodeJSON writes records as an indented JSON array of 4-tuples.
func EncodeJSON(w io.Writer, records []types.Record) error {
	out := make([][4]any, 0, len(records))
	for _, rec := range records {
		payload, err := payloadOf(rec)
		if err != nil {
			return err
		}
		out = append(out, [4]any{string(rec.Kind), rec.ID, payload, rec.Remove})
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding records: %w", err)
	}
	return nil
}

// DecodeJSON parses a JSON array of 4-tuples. Comments and trailing commas
// are accepted.
func DecodeJSON(data []byte) ([]types.Record, error) {
	stripped := jsonc.ToJSON(data)

	var items []json.RawMessage
	if err := json.Unmarshal(stripped, &items); err != nil {
		return nil, fmt.Errorf("parsing records: %w", err)
	}

	records := make([]types.Record, 0, len(items))
	for i, item := range items {
		t, err := jsonTuple(item)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		rec, err := toRecord(t, json.Unmarshal)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func jsonTuple(item json.RawMessage) (tuple, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(item, &parts); err != nil {
		return tuple{}, fmt.Errorf("parsing tuple: %w", err)
	}
	if len(parts) != 4 {
		return tuple{}, fmt.Errorf("tuple has %d elements, want 4", len(parts))
	}

	var t tuple
	if err := json.Unmarshal(parts[0], &t.kind); err != nil {
		return tuple{}, fmt.Errorf("parsing kind: %w", err)
	}
	if err := json.Unmarshal(parts[1], &t.id); err != nil {
		return tuple{}, fmt.Errorf("parsing id: %w", err)
	}
	if err := json.Unmarshal(parts[3], &t.remove); err != nil {
		return tuple{}, fmt.Errorf("parsing removal flag: %w", err)
	}
	if p := bytes.TrimSpace(parts[2]); !bytes.Equal(p, []byte("null")) {
		t.payload = p
	}
	return t, nil
}
