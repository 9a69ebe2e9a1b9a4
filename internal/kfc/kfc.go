// Package kfc holds the recognition-workflow rules: who may nominate whom,
// how nominations move through review, and how approved points roll up into
// the leaderboard.
package kfc

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// Nomination statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDenied   = "denied"
)

// Point bounds per nomination.
const (
	MinPoints = 1
	MaxPoints = 100
)

var (
	ErrSelfNomination = errors.New("nominee and nominator must differ")
	ErrPointsRange    = errors.New("points must be between 1 and 100")
	ErrEmptyNominee   = errors.New("nominee is required")
	ErrEmptyNominator = errors.New("nominator is required")
	ErrEmptyReason    = errors.New("reason is required")
	ErrNotPending     = errors.New("only pending nominations can be decided")
	ErrNoDecider      = errors.New("a decision requires a decider")
	ErrBadDecision    = errors.New("decision must be approved or denied")
)

// Nomination mirrors one kfc_nominations row.
type Nomination struct {
	ID        string
	Nominee   string
	Nominator string
	Points    int
	Reason    string
	Status    string
	DecidedBy *string
	DecidedAt *time.Time
	CreatedAt time.Time
}

// ValidateNew checks a nomination before it is persisted.
func ValidateNew(nominee, nominator string, points int, reason string) error {
	nominee = strings.TrimSpace(nominee)
	nominator = strings.TrimSpace(nominator)
	switch {
	case nominee == "":
		return ErrEmptyNominee
	case nominator == "":
		return ErrEmptyNominator
	case strings.EqualFold(nominee, nominator):
		return ErrSelfNomination
	case points < MinPoints || points > MaxPoints:
		return ErrPointsRange
	case strings.TrimSpace(reason) == "":
		return ErrEmptyReason
	}
	return nil
}

// ValidStatus reports whether s is a known nomination status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusDenied:
		return true
	}
	return false
}

// ValidateDecision checks a pending->decided transition. decision must be
// approved or denied and carry a non-empty decider.
func ValidateDecision(current, decision, decider string) error {
	if current != StatusPending {
		return ErrNotPending
	}
	if decision != StatusApproved && decision != StatusDenied {
		return ErrBadDecision
	}
	if strings.TrimSpace(decider) == "" {
		return ErrNoDecider
	}
	return nil
}

// LeaderboardEntry is one nominee's approved-point total.
type LeaderboardEntry struct {
	Nominee string `json:"nominee"`
	Points  int    `json:"points"`
	Awards  int    `json:"awards"`
}

// Leaderboard totals approved nominations per nominee, ordered by points
// descending then nominee ascending. Pending and denied rows contribute
// nothing.
func Leaderboard(nominations []Nomination) []LeaderboardEntry {
	totals := make(map[string]*LeaderboardEntry)
	for _, n := range nominations {
		if n.Status != StatusApproved {
			continue
		}
		nominee := strings.TrimSpace(n.Nominee)
		if nominee == "" {
			continue
		}
		e, ok := totals[nominee]
		if !ok {
			e = &LeaderboardEntry{Nominee: nominee}
			totals[nominee] = e
		}
		e.Points += n.Points
		e.Awards++
	}

	out := make([]LeaderboardEntry, 0, len(totals))
	for _, e := range totals {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Points == out[j].Points {
			return out[i].Nominee < out[j].Nominee
		}
		return out[i].Points > out[j].Points
	})
	return out
}
