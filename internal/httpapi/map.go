package httpapi

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"cobecium/server/internal/geomap"
	"cobecium/server/internal/icons"
	"cobecium/server/internal/sqlcgen"
)

type mapPin struct {
	ID          string    `json:"id"`
	StateCode   string    `json:"state_code"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Icon        string    `json:"icon"`
	Description *string   `json:"description,omitempty"`
	URL         string    `json:"url"`
	Lon         float64   `json:"lon"`
	Lat         float64   `json:"lat"`
	Index       int       `json:"index"`
	Collapsed   bool      `json:"collapsed"`
	MemberCount int       `json:"member_count,omitempty"`
	Members     []mapPin  `json:"members,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type mapDropReport struct {
	Dropped        int      `json:"dropped"`
	UnknownRegions []string `json:"unknown_regions,omitempty"`
}

type mapPinsResponse struct {
	Pins    []mapPin      `json:"pins"`
	Dropped mapDropReport `json:"dropped"`
}

// handleMapPins projects every government link onto the US map: each state's
// links get deterministic hexagonal-ring offsets around the state centroid,
// and small collapse states come back as a single marker carrying their
// member list.
func (h *Handler) handleMapPins(w http.ResponseWriter, r *http.Request) {
	if !h.ensureLinks(w) {
		return
	}

	// The category filter takes a comma-separated list so the map legend can
	// toggle several layers in one request.
	var arg sqlcgen.ListGovLinksParams
	var catFilter map[string]bool
	if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
		cats := icons.NormalizeCategoryList(strings.Split(raw, ","))
		if len(cats) == 0 {
			h.writeError(w, http.StatusBadRequest, "validation_failed", "unknown category", map[string]any{"category": raw})
			return
		}
		if len(cats) == 1 {
			arg.Category = &cats[0]
		} else {
			catFilter = make(map[string]bool, len(cats))
			for _, c := range cats {
				catFilter[c] = true
			}
		}
	}

	links, err := h.links.ListGovLinks(r.Context(), arg)
	if err != nil {
		h.log.Error().Err(err).Msg("list gov links for map failed")
		h.writeError(w, http.StatusInternalServerError, "internal_error", "failed to load map pins", nil)
		return
	}

	pins := make([]geomap.Pin, 0, len(links))
	byID := make(map[string]sqlcgen.GovLink, len(links))
	for _, l := range links {
		if catFilter != nil && !catFilter[icons.NormalizeCategory(l.Category)] {
			continue
		}
		byID[l.ID] = l
		pins = append(pins, geomap.Pin{
			ID:          l.ID,
			RegionCode:  strings.ToUpper(l.StateCode),
			Title:       l.Title,
			Category:    l.Category,
			Description: derefOr(l.Description, ""),
			URL:         l.URL,
			CreatedAt:   l.CreatedAt,
		})
	}

	placed, dropped := geomap.Place(pins)

	out := make([]mapPin, 0, len(placed))
	for _, p := range placed {
		mp := toMapPin(p, byID)
		if geomap.CollapseToSingleMarker(p.Pin.RegionCode) {
			members := geomap.RegionMembers(pins, p.Pin.RegionCode)
			mp.Collapsed = true
			mp.MemberCount = len(members)
			if len(members) > 1 {
				mp.Members = make([]mapPin, 0, len(members))
				for _, m := range members {
					mm := toMapPin(geomap.PlacedPin{Pin: m, Index: 0, Lon: p.Lon, Lat: p.Lat}, byID)
					mm.Collapsed = true
					mp.Members = append(mp.Members, mm)
				}
			}
		}
		out = append(out, mp)
	}

	report := mapDropReport{Dropped: len(dropped)}
	if len(dropped) > 0 {
		seen := map[string]bool{}
		for _, p := range dropped {
			if !seen[p.RegionCode] {
				seen[p.RegionCode] = true
				report.UnknownRegions = append(report.UnknownRegions, p.RegionCode)
			}
		}
		sort.Strings(report.UnknownRegions)

		h.metrics.AddPinsDropped(len(dropped))
		h.log.Debug().
			Int("dropped", len(dropped)).
			Strs("unknown_regions", report.UnknownRegions).
			Msg("map pins dropped for unknown regions")
	}

	h.writeJSON(w, http.StatusOK, mapPinsResponse{Pins: out, Dropped: report})
}

func toMapPin(p geomap.PlacedPin, byID map[string]sqlcgen.GovLink) mapPin {
	mp := mapPin{
		ID:        p.Pin.ID,
		StateCode: p.Pin.RegionCode,
		Title:     p.Pin.Title,
		Category:  p.Pin.Category,
		Icon:      icons.ForCategory(p.Pin.Category),
		URL:       p.Pin.URL,
		Lon:       p.Lon,
		Lat:       p.Lat,
		Index:     p.Index,
		CreatedAt: p.Pin.CreatedAt,
	}
	if l, ok := byID[p.Pin.ID]; ok {
		mp.Description = l.Description
	}
	return mp
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
