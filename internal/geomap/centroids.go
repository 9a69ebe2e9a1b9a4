package geomap

// Centroid is the reference point a region's pins fan out from.
type Centroid struct {
	Lon float64
	Lat float64
}

// Rough interior centroids for the 50 states plus DC. These are anchor points
// for marker placement, not survey-grade geography.
var centroids = map[string]Centroid{
	"AL": {-86.8, 32.8},
	"AK": {-152.0, 64.0},
	"AZ": {-111.7, 34.3},
	"AR": {-92.4, 34.9},
	"CA": {-119.4, 37.2},
	"CO": {-105.5, 39.0},
	"CT": {-72.7, 41.6},
	"DE": {-75.5, 39.0},
	"FL": {-81.6, 27.8},
	"GA": {-83.4, 32.6},
	"HI": {-157.5, 20.3},
	"ID": {-114.6, 44.4},
	"IL": {-89.2, 40.0},
	"IN": {-86.3, 39.9},
	"IA": {-93.5, 42.0},
	"KS": {-98.4, 38.5},
	"KY": {-85.3, 37.5},
	"LA": {-92.0, 31.0},
	"ME": {-69.2, 45.4},
	"MD": {-76.8, 39.0},
	"MA": {-71.8, 42.3},
	"MI": {-84.7, 44.3},
	"MN": {-94.3, 46.3},
	"MS": {-89.7, 32.7},
	"MO": {-92.5, 38.4},
	"MT": {-109.6, 47.0},
	"NE": {-99.8, 41.5},
	"NV": {-116.6, 39.3},
	"NH": {-71.6, 43.7},
	"NJ": {-74.7, 40.1},
	"NM": {-106.1, 34.4},
	"NY": {-75.5, 43.0},
	"NC": {-79.4, 35.5},
	"ND": {-100.5, 47.4},
	"OH": {-82.8, 40.3},
	"OK": {-97.5, 35.6},
	"OR": {-120.6, 43.9},
	"PA": {-77.8, 40.9},
	"RI": {-71.5, 41.7},
	"SC": {-80.9, 33.9},
	"SD": {-100.2, 44.4},
	"TN": {-86.3, 35.8},
	"TX": {-99.9, 31.9},
	"UT": {-111.7, 39.3},
	"VT": {-72.7, 44.0},
	"VA": {-78.7, 37.5},
	"WA": {-120.4, 47.4},
	"WV": {-80.6, 38.6},
	"WI": {-89.8, 44.6},
	"WY": {-107.6, 43.0},
	"DC": {-77.02, 38.9},
}

// RegionCentroid returns the anchor coordinate for a region code. ok is false
// for codes outside the table; callers drop those pins.
func RegionCentroid(regionCode string) (Centroid, bool) {
	c, ok := centroids[regionCode]
	return c, ok
}

// KnownRegion reports whether a region code has a centroid entry.
func KnownRegion(regionCode string) bool {
	_, ok := centroids[regionCode]
	return ok
}
