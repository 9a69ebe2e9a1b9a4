package icons

import (
	"reflect"
	"testing"
)

func TestForCategory_KnownAndDefault(t *testing.T) {
	if got := ForCategory("portal"); got != "globe" {
		t.Fatalf("expected globe, got %q", got)
	}
	if got := ForCategory("  Bid_Board "); got != "gavel" {
		t.Fatalf("expected normalization before lookup, got %q", got)
	}
	if got := ForCategory("no-such-category"); got != DefaultIcon {
		t.Fatalf("expected default icon, got %q", got)
	}
	if got := ForCategory(""); got != DefaultIcon {
		t.Fatalf("expected default icon for empty category, got %q", got)
	}
}

func TestEveryCategoryHasAnIcon(t *testing.T) {
	for _, c := range AllCategories() {
		if ForCategory(c) == DefaultIcon {
			t.Fatalf("category %q has no explicit icon mapping", c)
		}
	}
}

func TestNormalizeCategoryList(t *testing.T) {
	got := NormalizeCategoryList([]string{" Portal ", "portal", "STATUTE", "bogus", ""})
	want := []string{"portal", "statute"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if NormalizeCategoryList(nil) != nil {
		t.Fatalf("expected nil for empty input")
	}
}
