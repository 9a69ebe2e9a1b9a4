package geomap

import (
	"fmt"
	"math"
	"testing"
	"time"
)

func mkPin(id, region string, created time.Time) Pin {
	return Pin{
		ID:         id,
		RegionCode: region,
		Title:      "pin " + id,
		Category:   "portal",
		CreatedAt:  created,
	}
}

func TestRingOffset_SlotZeroIsCentroid(t *testing.T) {
	for _, region := range []string{"TX", "RI", "AK", "DC", "ZZ"} {
		dLon, dLat := RingOffset(0, region)
		if dLon != 0 || dLat != 0 {
			t.Fatalf("region %s: expected (0,0) for slot 0, got (%v,%v)", region, dLon, dLat)
		}
	}
}

func TestRingOffset_NeverExceedsRegionMax(t *testing.T) {
	for _, region := range []string{"TX", "RI", "DE", "DC", "AK", "unknown"} {
		limit := MaxOffset(region)
		for index := 0; index < 200; index++ {
			dLon, dLat := RingOffset(index, region)
			dist := math.Hypot(dLon, dLat)
			if dist > limit+1e-9 {
				t.Fatalf("region %s index %d: offset distance %v exceeds max %v", region, index, dist, limit)
			}
		}
	}
}

func TestRingOffset_Deterministic(t *testing.T) {
	for index := 0; index < 50; index++ {
		aLon, aLat := RingOffset(index, "TX")
		bLon, bLat := RingOffset(index, "TX")
		if aLon != bLon || aLat != bLat {
			t.Fatalf("index %d: repeated calls disagree: (%v,%v) vs (%v,%v)", index, aLon, aLat, bLon, bLat)
		}
	}
}

func TestRingOffset_FirstRingAngles(t *testing.T) {
	// Texas: max offset 2.5, so ring 1 keeps its full 1.5 degree radius and
	// slots 1..6 land at 0, 60, ..., 300 degrees.
	for i := 1; i <= 6; i++ {
		wantAngle := 2 * math.Pi * float64(i-1) / 6
		wantLon := 1.5 * math.Cos(wantAngle)
		wantLat := 1.5 * math.Sin(wantAngle)

		dLon, dLat := RingOffset(i, "TX")
		if math.Abs(dLon-wantLon) > 1e-9 || math.Abs(dLat-wantLat) > 1e-9 {
			t.Fatalf("slot %d: expected (%v,%v), got (%v,%v)", i, wantLon, wantLat, dLon, dLat)
		}
		if r := math.Hypot(dLon, dLat); math.Abs(r-1.5) > 1e-9 {
			t.Fatalf("slot %d: expected radius 1.5, got %v", i, r)
		}
	}
}

func TestRingOffset_SecondRingStartsAtSlotSeven(t *testing.T) {
	dLon, dLat := RingOffset(7, "TX")
	// Slot 7 opens ring 2: angle 0, radius min(2*1.5, 2.5) = 2.5 after clamp.
	if math.Abs(dLon-2.5) > 1e-9 || math.Abs(dLat) > 1e-9 {
		t.Fatalf("slot 7: expected clamped (2.5,0), got (%v,%v)", dLon, dLat)
	}
}

func TestAssignIndices_StableAcrossCalls(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	pins := []Pin{
		mkPin("c", "TX", base.Add(2*time.Hour)),
		mkPin("a", "TX", base),
		mkPin("b", "CA", base.Add(time.Hour)),
		mkPin("d", "TX", base), // same timestamp as "a", id breaks the tie
	}

	first, _ := AssignIndices(pins)
	second, _ := AssignIndices(pins)

	if len(first) != len(second) {
		t.Fatalf("expected identical output lengths, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Pin.ID != second[i].Pin.ID || first[i].Index != second[i].Index {
			t.Fatalf("position %d differs between calls: %+v vs %+v", i, first[i], second[i])
		}
	}

	// CA sorts before TX; within TX, "a" beats "d" on id at equal timestamps.
	wantOrder := []struct {
		id    string
		index int
	}{
		{"b", 0},
		{"a", 0},
		{"d", 1},
		{"c", 2},
	}
	for i, want := range wantOrder {
		if first[i].Pin.ID != want.id || first[i].Index != want.index {
			t.Fatalf("position %d: expected (%s,%d), got (%s,%d)", i, want.id, want.index, first[i].Pin.ID, first[i].Index)
		}
	}
}

func TestAssignIndices_DropsUnknownRegions(t *testing.T) {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	pins := []Pin{
		mkPin("a", "TX", base),
		mkPin("b", "XX", base),
		mkPin("c", "", base),
	}

	indexed, dropped := AssignIndices(pins)
	if len(indexed) != 1 || indexed[0].Pin.ID != "a" {
		t.Fatalf("expected only pin a placed, got %+v", indexed)
	}
	if len(dropped) != 2 {
		t.Fatalf("expected 2 dropped pins, got %d", len(dropped))
	}
}

func TestAssignIndices_CollapseRegionEmitsEarliestOnly(t *testing.T) {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	var pins []Pin
	for i := 0; i < 5; i++ {
		pins = append(pins, mkPin(fmt.Sprintf("ri-%d", i), "RI", base.Add(time.Duration(5-i)*time.Minute)))
	}

	indexed, dropped := AssignIndices(pins)
	if len(dropped) != 0 {
		t.Fatalf("expected no drops, got %d", len(dropped))
	}
	if len(indexed) != 1 {
		t.Fatalf("expected exactly 1 visible pin for RI, got %d", len(indexed))
	}
	// ri-4 has the earliest CreatedAt (base + 1 minute).
	if indexed[0].Pin.ID != "ri-4" || indexed[0].Index != 0 {
		t.Fatalf("expected earliest pin ri-4 at slot 0, got %s slot %d", indexed[0].Pin.ID, indexed[0].Index)
	}

	members := RegionMembers(pins, "RI")
	if len(members) != 5 {
		t.Fatalf("expected hover listing to reconstruct all 5 pins, got %d", len(members))
	}
	for i := 1; i < len(members); i++ {
		if members[i].CreatedAt.Before(members[i-1].CreatedAt) {
			t.Fatalf("hover listing out of order at %d", i)
		}
	}
}

func TestPlace_TexasEndToEnd(t *testing.T) {
	c, ok := RegionCentroid("TX")
	if !ok {
		t.Fatal("expected TX centroid")
	}
	if c.Lon != -99.9 || c.Lat != 31.9 {
		t.Fatalf("unexpected TX centroid (%v,%v)", c.Lon, c.Lat)
	}

	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	var pins []Pin
	for i := 0; i < 7; i++ {
		pins = append(pins, mkPin(fmt.Sprintf("tx-%d", i), "TX", base.Add(time.Duration(i)*time.Minute)))
	}

	placed, dropped := Place(pins)
	if len(dropped) != 0 || len(placed) != 7 {
		t.Fatalf("expected 7 placed and 0 dropped, got %d/%d", len(placed), len(dropped))
	}

	if placed[0].Lon != c.Lon || placed[0].Lat != c.Lat {
		t.Fatalf("slot 0 should sit on the centroid, got (%v,%v)", placed[0].Lon, placed[0].Lat)
	}
	for i := 1; i <= 6; i++ {
		r := math.Hypot(placed[i].Lon-c.Lon, placed[i].Lat-c.Lat)
		if math.Abs(r-1.5) > 1e-9 {
			t.Fatalf("slot %d: expected ring-1 radius 1.5, got %v", i, r)
		}
	}
}
