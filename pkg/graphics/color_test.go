package graphics

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#fff", ColorWhite},
		{"#000000", ColorBlack},
		{"#ff000080", RGBA8(0xff, 0, 0, 0x80)},
		{"00ff00", ColorGreen},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %s, want %s", tt.in, got.Hex(), tt.want.Hex())
		}
	}
	if _, err := ParseColor("#12"); err == nil {
		t.Error("expected error for short color")
	}
}

func TestModulate(t *testing.T) {
	if got := ColorRed.Modulate(ColorWhite); got != ColorRed {
		t.Errorf("white tint changed color: %s", got.Hex())
	}
	if got := ColorRed.Modulate(ColorBlack); got != ColorBlack {
		t.Errorf("black tint = %s, want black", got.Hex())
	}
	half := ColorWhite.Modulate(RGBA8(128, 128, 128, 255))
	if half.R() != 128 || half.A() != 255 {
		t.Errorf("half tint = %s", half.Hex())
	}
}

func TestWithAlpha(t *testing.T) {
	c := ColorBlue.WithAlpha(0)
	if c.A() != 0 || c.B() != 0xff {
		t.Errorf("WithAlpha(0) = %s", c.Hex())
	}
}
