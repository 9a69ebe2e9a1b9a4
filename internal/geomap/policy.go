package geomap

// DefaultMaxOffsetDegrees bounds ring radii for regions without a specific
// policy entry.
const DefaultMaxOffsetDegrees = 2.5

// maxOffsetOverrides narrows (or widens) the fan-out radius where the default
// would push markers outside the region's visible bounds, or waste space in
// very large regions.
var maxOffsetOverrides = map[string]float64{
	"AK": 5.0,
	"CA": 3.0,
	"MT": 3.0,
	"CT": 0.5,
	"DE": 0.3,
	"DC": 0.15,
	"HI": 0.8,
	"MA": 0.6,
	"MD": 0.6,
	"NH": 0.7,
	"NJ": 0.6,
	"RI": 0.3,
	"VT": 0.7,
}

// collapseRegions are small or dense regions where independent markers would
// pile up unreadably; only the earliest-created pin gets a map position and
// the rest surface through the hover listing.
var collapseRegions = map[string]bool{
	"CT": true,
	"DE": true,
	"DC": true,
	"HI": true,
	"MA": true,
	"MD": true,
	"NH": true,
	"NJ": true,
	"RI": true,
	"VT": true,
}

// MaxOffset returns the clamp radius, in degrees, for a region.
func MaxOffset(regionCode string) float64 {
	if v, ok := maxOffsetOverrides[regionCode]; ok {
		return v
	}
	return DefaultMaxOffsetDegrees
}

// CollapseToSingleMarker reports whether a region renders only its earliest
// pin on the map.
func CollapseToSingleMarker(regionCode string) bool {
	return collapseRegions[regionCode]
}
