package color

import "testing"

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    RGB
		wantErr bool
	}{
		{"#ff0000", RGB{255, 0, 0}, false},
		{"#00FF7f", RGB{0, 255, 127}, false},
		{"#abc", RGB{0xaa, 0xbb, 0xcc}, false},
		{"ff0000", RGB{}, true},
		{"#ff00", RGB{}, true},
		{"#gg0000", RGB{}, true},
		{"#", RGB{}, true},
	}

	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestHex(t *testing.T) {
	if got := (RGB{68, 113, 196}).Hex(); got != "#4471c4" {
		t.Errorf("Hex() = %s, want #4471c4", got)
	}
}

func TestGrayAndLighten(t *testing.T) {
	g := RGB{255, 0, 0}.Gray()
	if g.R != g.G || g.G != g.B {
		t.Errorf("Gray() = %v, want equal channels", g)
	}
	if got := Black.Lighten(1); got != White {
		t.Errorf("Black.Lighten(1) = %v, want white", got)
	}
	if got := (RGB{10, 20, 30}).Lighten(0); got != (RGB{10, 20, 30}) {
		t.Errorf("Lighten(0) changed the colour: %v", got)
	}
}
