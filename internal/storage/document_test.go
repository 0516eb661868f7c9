package storage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hpungsan/flashdeck/internal/card"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    card.Collection
		wantErr bool
	}{
		{"empty array", `[]`, card.Collection{}, false},
		{"one record", `[{"subject":"Math","front":"f","back":"b"}]`, card.Collection{{Subject: "Math", Front: "f", Back: "b"}}, false},
		{"extra keys dropped", `[{"subject":"Math","front":"f","back":"b","ease":2.5}]`, card.Collection{{Subject: "Math", Front: "f", Back: "b"}}, false},
		{"leading whitespace", "\n  [ ]", card.Collection{}, false},
		{"garbage", `not valid json{{`, nil, true},
		{"empty document", ``, nil, true},
		{"null document", `null`, nil, true},
		{"object document", `{"subject":"Math","front":"f","back":"b"}`, nil, true},
		{"null record", `[null]`, nil, true},
		{"scalar record", `[1]`, nil, true},
		{"missing back", `[{"subject":"Math","front":"f"}]`, nil, true},
		{"non-string front", `[{"subject":"Math","front":3,"back":"b"}]`, nil, true},
		{"null subject", `[{"subject":null,"front":"f","back":"b"}]`, nil, true},
		{"truncated", `[{"subject":"Math","front":"f","back":"b"}`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		path    string
		want    Format
		wantErr bool
	}{
		{"explicit json", "json", "deck.yaml", FormatJSON, false},
		{"explicit yaml", "YAML", "", FormatYAML, false},
		{"yml alias", "yml", "", FormatYAML, false},
		{"inferred yaml", "", "deck.yml", FormatYAML, false},
		{"inferred default", "", "deck.txt", FormatJSON, false},
		{"unknown", "csv", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.format, tt.path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestMarshalUnmarshal_YAML(t *testing.T) {
	cards := card.Collection{
		{Subject: "Chemistry", Front: "⚛️ Ideal Gas Law", Back: "Gas pressure-volume relation.$$PV=nRT$$"},
		{Subject: "Math", Front: "multi\nline", Back: "x: y"},
	}

	data, err := Marshal(FormatYAML, cards)
	require.NoError(t, err)
	require.Contains(t, string(data), "subject: Chemistry")

	got, err := Unmarshal(FormatYAML, data)
	require.NoError(t, err)
	require.Equal(t, cards, got)
}

func TestUnmarshal_YAMLMissingKey(t *testing.T) {
	_, err := Unmarshal(FormatYAML, []byte("- subject: Math\n  front: f\n"))
	require.Error(t, err)
}

func TestMarshal_JSONMatchesEncode(t *testing.T) {
	data, err := Marshal(FormatJSON, card.Seed())
	require.NoError(t, err)
	encoded, err := Encode(card.Seed())
	require.NoError(t, err)
	require.Equal(t, encoded, data)
}
