package imaging

import "testing"

func TestMeasureText(t *testing.T) {
	// basicfont.Face7x13 advances 7px per glyph on 13px lines.
	tests := []struct {
		name   string
		text   string
		width  float64
		height float64
	}{
		{"empty", "", 0, 13},
		{"single char", "A", 7, 13},
		{"word", "hello", 35, 13},
		{"two lines", "ab\nabcd", 28, 26},
		{"crlf", "abc\r\nd", 21, 26},
		{"trailing newline", "abc\n", 21, 26},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := MeasureText(tt.text)
			if w != tt.width || h != tt.height {
				t.Errorf("MeasureText(%q) = (%v, %v), want (%v, %v)", tt.text, w, h, tt.width, tt.height)
			}
		})
	}
}
