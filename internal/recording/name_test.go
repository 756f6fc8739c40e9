package recording

import "testing"

func TestParseName(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		phone    string
		hint     string
	}{
		{
			name:     "label and number",
			filename: "Sonu Pantry(00919971696793)_20250821182137.mp3",
			phone:    "9971696793",
			hint:     "Sonu Pantry",
		},
		{
			name:     "number repeated as label",
			filename: "00911244999799(00911244999799)_20250821152845.mp3",
			phone:    "1244999799",
			hint:     "00911244999799",
		},
		{
			name:     "bare number in parens",
			filename: "(9198765432)_call.mp3",
			phone:    "9198765432",
			hint:     "",
		},
		{
			name:     "no parens at all",
			filename: "noise.mp3",
			phone:    "",
			hint:     "",
		},
		{
			name:     "bare leading number",
			filename: "1234567890_b.mp3",
			phone:    "1234567890",
			hint:     "",
		},
		{
			name:     "bare leading number with country code",
			filename: "00911244999799_20250821.mp3",
			phone:    "1244999799",
			hint:     "",
		},
		{
			name:     "leading digits too short for a number",
			filename: "20250821_call.mp3",
			phone:    "",
			hint:     "",
		},
		{
			name:     "parenthesized number wins over leading digits",
			filename: "00911244999799(00919971696793)_a.mp3",
			phone:    "9971696793",
			hint:     "00911244999799",
		},
		{
			name:     "parens with too few digits",
			filename: "Alice(12345)_a.mp3",
			phone:    "",
			hint:     "Alice",
		},
		{
			name:     "parens with non-digits",
			filename: "Bob(abc123def)_b.mp3",
			phone:    "",
			hint:     "Bob",
		},
		{
			name:     "whitespace-only label",
			filename: "   (1234567890).mp3",
			phone:    "1234567890",
			hint:     "",
		},
		{
			name:     "empty name",
			filename: "",
			phone:    "",
			hint:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := ParseName(tt.filename)
			if parsed.Phone != tt.phone {
				t.Errorf("Phone = %q, want %q", parsed.Phone, tt.phone)
			}
			if parsed.NameHint != tt.hint {
				t.Errorf("NameHint = %q, want %q", parsed.NameHint, tt.hint)
			}
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"00919971696793", "9971696793"},
		{"+91 99716-96793", "9971696793"},
		{"9971696793", "9971696793"},
		{"12345", "12345"},
		{"", ""},
		{"abc", ""},
	}

	for _, tt := range tests {
		if got := NormalizePhone(tt.in); got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEstimateDurationSec(t *testing.T) {
	tests := []struct {
		size int64
		want int64
	}{
		{500000, 62},
		{100000, 12},
		{7999, 0},
		{8000, 1},
		{0, 0},
		{-1, 0},
	}

	for _, tt := range tests {
		if got := EstimateDurationSec(tt.size); got != tt.want {
			t.Errorf("EstimateDurationSec(%d) = %d, want %d", tt.size, got, tt.want)
		}
	}
}
