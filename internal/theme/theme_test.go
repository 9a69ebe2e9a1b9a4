package theme

import "testing"

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    RGB
		wantErr bool
	}{
		{"#ff0000", RGB{255, 0, 0}, false},
		{"FF0000", RGB{255, 0, 0}, false},
		{"#f00", RGB{255, 0, 0}, false},
		{"  #2563eb ", RGB{37, 99, 235}, false},
		{"#12345", RGB{}, true},
		{"#gggggg", RGB{}, true},
		{"", RGB{}, true},
	}
	for _, tc := range tests {
		got, err := ParseHex(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseHex(%q): expected error, got %+v", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseHex(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseHex(%q): expected %+v, got %+v", tc.in, tc.want, got)
		}
	}
}

func TestNearestClass(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"#dc2626", "accent-red"},
		{"#ff0000", "accent-red"},
		{"#2563eb", "accent-blue"},
		{"#17a34a", "accent-green"},
		{"not-a-color", "accent-blue"}, // falls back to the default accent
	}
	for _, tc := range tests {
		if got := NearestClass(tc.in); got != tc.want {
			t.Fatalf("NearestClass(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestNearestClass_Deterministic(t *testing.T) {
	for i := 0; i < 20; i++ {
		if got := NearestClass("#808080"); got != NearestClass("#808080") {
			t.Fatalf("NearestClass not deterministic, got %q", got)
		}
	}
}
