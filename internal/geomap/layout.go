package geomap

import (
	"math"
	"sort"
)

// SpacingDegrees is the radial gap between hexagonal rings. Chosen so marker
// halos and labels stay apart at the map's default zoom.
const SpacingDegrees = 1.5

// RingOffset maps a pin's slot within its region to a (dLon, dLat) offset
// from the region centroid.
//
// Slot 0 sits on the centroid. Later slots fill concentric hexagonal rings:
// ring k holds 6k slots, so the cumulative capacity through ring k is
// 1 + 3k(k+1). The radius grows by SpacingDegrees per ring and is clamped to
// the region's max offset so pins in small regions stay inside the region.
// Total over all non-negative indices and any region code.
func RingOffset(index int, regionCode string) (dLon, dLat float64) {
	if index <= 0 {
		return 0, 0
	}

	ring := 1
	first := 1 // index of the first slot in the current ring
	for index >= first+6*ring {
		first += 6 * ring
		ring++
	}

	slots := 6 * ring
	pos := index - first
	angle := 2 * math.Pi * float64(pos) / float64(slots)

	radius := float64(ring) * SpacingDegrees
	if limit := MaxOffset(regionCode); radius > limit {
		radius = limit
	}

	return radius * math.Cos(angle), radius * math.Sin(angle)
}

// AssignIndices partitions pins by region, orders each group by
// (CreatedAt, ID) ascending, and hands out slot indices 0..n-1. Pins whose
// region has no centroid entry are returned in dropped instead of being
// placed. Collapse regions emit only their slot-0 pin.
//
// Regions are processed in lexicographic order and ordering within a group
// depends only on pin identity, so output is stable across calls for the
// same input set: a pin's slot never moves because unrelated pins changed.
func AssignIndices(pins []Pin) (indexed []IndexedPin, dropped []Pin) {
	groups := make(map[string][]Pin)
	for _, p := range pins {
		if !KnownRegion(p.RegionCode) {
			dropped = append(dropped, p)
			continue
		}
		groups[p.RegionCode] = append(groups[p.RegionCode], p)
	}

	regions := make([]string, 0, len(groups))
	for code := range groups {
		regions = append(regions, code)
	}
	sort.Strings(regions)

	for _, code := range regions {
		group := groups[code]
		sortPins(group)

		if CollapseToSingleMarker(code) {
			indexed = append(indexed, IndexedPin{Pin: group[0], Index: 0})
			continue
		}
		for i, p := range group {
			indexed = append(indexed, IndexedPin{Pin: p, Index: i})
		}
	}

	return indexed, dropped
}

// Place runs index assignment and resolves each pin to its final coordinate.
func Place(pins []Pin) (placed []PlacedPin, dropped []Pin) {
	indexed, dropped := AssignIndices(pins)
	placed = make([]PlacedPin, 0, len(indexed))
	for _, ip := range indexed {
		c, ok := RegionCentroid(ip.Pin.RegionCode)
		if !ok {
			// AssignIndices already filtered unknown regions.
			continue
		}
		dLon, dLat := RingOffset(ip.Index, ip.Pin.RegionCode)
		placed = append(placed, PlacedPin{
			Pin:   ip.Pin,
			Index: ip.Index,
			Lon:   c.Lon + dLon,
			Lat:   c.Lat + dLat,
		})
	}
	return placed, dropped
}

// RegionMembers returns every pin for one region in slot order, including the
// ones a collapse region hides from the map. This backs the hover listing on
// collapsed markers.
func RegionMembers(pins []Pin, regionCode string) []Pin {
	var members []Pin
	for _, p := range pins {
		if p.RegionCode == regionCode {
			members = append(members, p)
		}
	}
	sortPins(members)
	return members
}

func sortPins(pins []Pin) {
	sort.SliceStable(pins, func(i, j int) bool {
		if pins[i].CreatedAt.Equal(pins[j].CreatedAt) {
			return pins[i].ID < pins[j].ID
		}
		return pins[i].CreatedAt.Before(pins[j].CreatedAt)
	})
}
