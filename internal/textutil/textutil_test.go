package textutil

import "testing"

func TestStripPathSeparators(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"ac/dc", "acdc"},
		{`back\slash`, "backslash"},
		{"a/b\\c/d", "abcd"},
		{"no: change?", "no: change?"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StripPathSeparators(tt.input); got != tt.want {
			t.Errorf("StripPathSeparators(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTrackFileName(t *testing.T) {
	tests := []struct {
		artist, title string
		index         int
		ext           string
		want          string
	}{
		{"artist a", "title a", 0, "mp3", "artist a - title a (0).mp3"},
		{"ac/dc", `back\in black`, 12, ".mp3", "acdc - backin black (12).mp3"},
		{"x", "y", 105, "m4a", "x - y (105).m4a"},
	}
	for _, tt := range tests {
		if got := TrackFileName(tt.artist, tt.title, tt.index, tt.ext); got != tt.want {
			t.Errorf("TrackFileName(%q, %q, %d, %q) = %q, want %q", tt.artist, tt.title, tt.index, tt.ext, got, tt.want)
		}
	}
}

func TestDecodeText(t *testing.T) {
	got, err := DecodeText([]byte("0:00 beyoncé - halo"))
	if err != nil {
		t.Fatalf("DecodeText utf8: %v", err)
	}
	if got != "0:00 beyoncé - halo" {
		t.Fatalf("unexpected utf8 decode: %q", got)
	}

	got, err = DecodeText(append([]byte{0xEF, 0xBB, 0xBF}, "12:00 a - b"...))
	if err != nil {
		t.Fatalf("DecodeText bom: %v", err)
	}
	if got != "12:00 a - b" {
		t.Fatalf("expected BOM to be stripped, got %q", got)
	}

	// "beyoncé" with é encoded as Windows-1252 0xE9.
	got, err = DecodeText([]byte{'b', 'e', 'y', 'o', 'n', 'c', 0xE9})
	if err != nil {
		t.Fatalf("DecodeText windows-1252: %v", err)
	}
	if got != "beyoncé" {
		t.Fatalf("unexpected windows-1252 decode: %q", got)
	}
}
