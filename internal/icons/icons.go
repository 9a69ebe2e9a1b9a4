package icons

import (
	"sort"
	"strings"
)

// Government-link categories. These double as the validation taxonomy for
// link writes and as the key space for map icon dispatch.
const (
	CategoryPortal        = "portal"
	CategoryRegistration  = "registration"
	CategoryBidBoard      = "bid_board"
	CategoryVendorGuide   = "vendor_guide"
	CategoryContact       = "contact"
	CategoryStatute       = "statute"
	CategoryCertification = "certification"
)

// DefaultIcon renders for any category without an explicit mapping.
const DefaultIcon = "landmark"

var allCategories = []string{
	CategoryPortal,
	CategoryRegistration,
	CategoryBidBoard,
	CategoryVendorGuide,
	CategoryContact,
	CategoryStatute,
	CategoryCertification,
}

// iconByCategory is an exhaustive lookup, never reflection; unknown keys fall
// back to DefaultIcon.
var iconByCategory = map[string]string{
	CategoryPortal:        "globe",
	CategoryRegistration:  "clipboard",
	CategoryBidBoard:      "gavel",
	CategoryVendorGuide:   "book",
	CategoryContact:       "phone",
	CategoryStatute:       "scale",
	CategoryCertification: "badge",
}

func AllCategories() []string {
	out := make([]string, len(allCategories))
	copy(out, allCategories)
	return out
}

func IsValidCategory(category string) bool {
	category = NormalizeCategory(category)
	for _, c := range allCategories {
		if c == category {
			return true
		}
	}
	return false
}

func NormalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

// ForCategory returns the icon name for a category.
func ForCategory(category string) string {
	if icon, ok := iconByCategory[NormalizeCategory(category)]; ok {
		return icon
	}
	return DefaultIcon
}

// NormalizeCategoryList lowercases, validates and dedupes, returning a sorted
// list. Unknown categories are discarded.
func NormalizeCategoryList(categories []string) []string {
	if len(categories) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(categories))
	out := make([]string, 0, len(categories))
	for _, raw := range categories {
		c := NormalizeCategory(raw)
		if c == "" || !IsValidCategory(c) {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
