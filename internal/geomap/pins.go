package geomap

import "time"

// Pin is one government-link marker as stored in the database. The layout
// logic only reads RegionCode, CreatedAt and ID; the rest is payload passed
// through to the map client.
type Pin struct {
	ID          string
	RegionCode  string
	Title       string
	Category    string
	Description string
	URL         string
	CreatedAt   time.Time
}

// IndexedPin is a pin with its stable slot within its region group.
type IndexedPin struct {
	Pin   Pin
	Index int
}

// PlacedPin is a pin with its final map coordinate (centroid + ring offset).
type PlacedPin struct {
	Pin   Pin
	Index int
	Lon   float64
	Lat   float64
}
