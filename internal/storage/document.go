package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hpungsan/flashdeck/internal/card"
)

// Format is a serialization format for export and import.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// requiredKeys are the fields every stored record must carry as strings.
var requiredKeys = []string{"subject", "front", "back"}

// ParseFormat validates a user-supplied format name. An empty name is
// inferred from the file extension of path, defaulting to JSON.
func ParseFormat(name, path string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "":
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			return FormatYAML, nil
		}
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown format %q (choose json or yaml)", name)
}

// Encode serializes c as the on-disk JSON document: an indented array of
// {subject, front, back} objects with non-ASCII text written verbatim.
func Encode(c card.Collection) ([]byte, error) {
	if c == nil {
		c = card.Collection{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses a stored JSON document. The document must be an array whose
// elements are objects with string-valued subject, front and back keys.
// Extra keys are ignored. Anything else is an error.
func Decode(data []byte) (card.Collection, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("document is not a JSON array")
	}

	var records []map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, err
	}

	cards := make(card.Collection, 0, len(records))
	for i, rec := range records {
		if rec == nil {
			return nil, fmt.Errorf("record %d is null", i)
		}
		fields := make(map[string]string, len(requiredKeys))
		for _, key := range requiredKeys {
			raw, ok := rec[key]
			if !ok {
				return nil, fmt.Errorf("record %d: missing %q", i, key)
			}
			// json.Unmarshal accepts null into a string; reject it explicitly.
			if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
				return nil, fmt.Errorf("record %d: %q is null", i, key)
			}
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				return nil, fmt.Errorf("record %d: %q is not a string", i, key)
			}
			fields[key] = s
		}
		cards = append(cards, card.Flashcard{
			Subject: fields["subject"],
			Front:   fields["front"],
			Back:    fields["back"],
		})
	}
	return cards, nil
}

// Marshal serializes c in the given format.
func Marshal(format Format, c card.Collection) ([]byte, error) {
	switch format {
	case FormatYAML:
		if c == nil {
			c = card.Collection{}
		}
		return yaml.Marshal(c)
	default:
		return Encode(c)
	}
}

// Unmarshal parses data in the given format with the same structural rules
// as Decode.
func Unmarshal(format Format, data []byte) (card.Collection, error) {
	if format != FormatYAML {
		return Decode(data)
	}

	var records []map[string]*string
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	cards := make(card.Collection, 0, len(records))
	for i, rec := range records {
		for _, key := range requiredKeys {
			if rec[key] == nil {
				return nil, fmt.Errorf("record %d: missing %q", i, key)
			}
		}
		cards = append(cards, card.Flashcard{
			Subject: *rec["subject"],
			Front:   *rec["front"],
			Back:    *rec["back"],
		})
	}
	return cards, nil
}
