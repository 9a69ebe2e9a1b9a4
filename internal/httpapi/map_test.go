package httpapi

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cobecium/server/internal/sqlcgen"
)

func mkLink(id, state string, created time.Time) sqlcgen.GovLink {
	return sqlcgen.GovLink{
		ID:        id,
		StateCode: state,
		Title:     "link " + id,
		Category:  "portal",
		URL:       "https://example.com/" + id,
		CreatedAt: created,
	}
}

func TestMapPins_TexasRing(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	links := make([]sqlcgen.GovLink, 0, 3)
	for i := 0; i < 3; i++ {
		links = append(links, mkLink(
			"00000000-0000-0000-0000-00000000001"+string(rune('0'+i)),
			"TX",
			base.Add(time.Duration(i)*time.Minute),
		))
	}

	h := newTestHandler()
	h.links = fakeLinkQueries{
		listFn: func(ctx context.Context, arg sqlcgen.ListGovLinksParams) ([]sqlcgen.GovLink, error) {
			return links, nil
		},
	}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/map/pins", nil)
	h.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	body := decodeBody(t, rr)
	pins := body["pins"].([]any)
	if len(pins) != 3 {
		t.Fatalf("expected 3 pins, got %d", len(pins))
	}

	// Earliest link sits on the Texas centroid, the next two on ring one.
	first := pins[0].(map[string]any)
	if first["index"] != float64(0) {
		t.Fatalf("expected first pin at index 0, got %v", first["index"])
	}
	if lon := first["lon"].(float64); math.Abs(lon-(-99.9)) > 1e-9 {
		t.Fatalf("expected centroid lon -99.9, got %v", lon)
	}
	if lat := first["lat"].(float64); math.Abs(lat-31.9) > 1e-9 {
		t.Fatalf("expected centroid lat 31.9, got %v", lat)
	}

	second := pins[1].(map[string]any)
	if lon := second["lon"].(float64); math.Abs(lon-(-98.4)) > 1e-9 {
		t.Fatalf("expected ring-one slot zero at lon -98.4, got %v", lon)
	}

	dropped := body["dropped"].(map[string]any)
	if dropped["dropped"] != float64(0) {
		t.Fatalf("expected no drops, got %v", dropped)
	}
}

func TestMapPins_DropsUnknownRegions(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	h := newTestHandler()
	h.links = fakeLinkQueries{
		listFn: func(ctx context.Context, arg sqlcgen.ListGovLinksParams) ([]sqlcgen.GovLink, error) {
			return []sqlcgen.GovLink{
				mkLink("00000000-0000-0000-0000-000000000020", "TX", base),
				mkLink("00000000-0000-0000-0000-000000000021", "ZZ", base),
				mkLink("00000000-0000-0000-0000-000000000022", "XX", base),
			}, nil
		},
	}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/map/pins", nil)
	h.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	body := decodeBody(t, rr)
	if got := len(body["pins"].([]any)); got != 1 {
		t.Fatalf("expected unknown states excluded, got %d pins", got)
	}

	dropped := body["dropped"].(map[string]any)
	if dropped["dropped"] != float64(2) {
		t.Fatalf("expected 2 drops, got %v", dropped["dropped"])
	}
	regions := dropped["unknown_regions"].([]any)
	if len(regions) != 2 || regions[0] != "XX" || regions[1] != "ZZ" {
		t.Fatalf("expected sorted unknown regions [XX ZZ], got %v", regions)
	}
}

func TestMapPins_CollapsesSmallStates(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	h := newTestHandler()
	h.links = fakeLinkQueries{
		listFn: func(ctx context.Context, arg sqlcgen.ListGovLinksParams) ([]sqlcgen.GovLink, error) {
			return []sqlcgen.GovLink{
				mkLink("00000000-0000-0000-0000-000000000032", "RI", base.Add(2*time.Minute)),
				mkLink("00000000-0000-0000-0000-000000000030", "RI", base),
				mkLink("00000000-0000-0000-0000-000000000031", "RI", base.Add(time.Minute)),
			}, nil
		},
	}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/map/pins", nil)
	h.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	body := decodeBody(t, rr)
	pins := body["pins"].([]any)
	if len(pins) != 1 {
		t.Fatalf("expected single collapsed marker for RI, got %d", len(pins))
	}

	marker := pins[0].(map[string]any)
	if marker["collapsed"] != true {
		t.Fatalf("expected collapsed marker, got %v", marker)
	}
	if marker["member_count"] != float64(3) {
		t.Fatalf("expected 3 members, got %v", marker["member_count"])
	}
	// The visible marker is the earliest link.
	if marker["id"] != "00000000-0000-0000-0000-000000000030" {
		t.Fatalf("expected earliest link as marker, got %v", marker["id"])
	}

	members := marker["members"].([]any)
	if len(members) != 3 {
		t.Fatalf("expected all members listed, got %d", len(members))
	}
}

func TestMapPins_CategoryListFilter(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	portal := mkLink("00000000-0000-0000-0000-000000000040", "TX", base)
	gavel := mkLink("00000000-0000-0000-0000-000000000041", "CA", base.Add(time.Minute))
	gavel.Category = "bid_board"
	contact := mkLink("00000000-0000-0000-0000-000000000042", "NY", base.Add(2*time.Minute))
	contact.Category = "contact"

	var listArg sqlcgen.ListGovLinksParams
	h := newTestHandler()
	h.links = fakeLinkQueries{
		listFn: func(ctx context.Context, arg sqlcgen.ListGovLinksParams) ([]sqlcgen.GovLink, error) {
			listArg = arg
			return []sqlcgen.GovLink{portal, gavel, contact}, nil
		},
	}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/map/pins?category=Portal,%20bid_board,portal", nil)
	h.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	// Multi-category filtering happens after the broad list call.
	if listArg.Category != nil {
		t.Fatalf("expected unfiltered list query, got category %v", *listArg.Category)
	}

	pins := decodeBody(t, rr)["pins"].([]any)
	if len(pins) != 2 {
		t.Fatalf("expected contact link filtered out, got %d pins", len(pins))
	}
	for _, p := range pins {
		cat := p.(map[string]any)["category"]
		if cat != "portal" && cat != "bid_board" {
			t.Fatalf("unexpected category %v in filtered pins", cat)
		}
	}

	rrBad := httptest.NewRecorder()
	h.Router().ServeHTTP(rrBad, httptest.NewRequest(http.MethodGet, "/api/v1/map/pins?category=nonsense", nil))
	if rrBad.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown category, got %d: %s", rrBad.Code, rrBad.Body.String())
	}
}
