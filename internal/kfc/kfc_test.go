package kfc

import (
	"errors"
	"testing"
)

func TestValidateNew(t *testing.T) {
	tests := []struct {
		name      string
		nominee   string
		nominator string
		points    int
		reason    string
		wantErr   error
	}{
		{"ok", "alice", "bob", 10, "shipped the map rewrite", nil},
		{"self", "alice", "Alice", 10, "reason", ErrSelfNomination},
		{"zero points", "alice", "bob", 0, "reason", ErrPointsRange},
		{"too many points", "alice", "bob", 101, "reason", ErrPointsRange},
		{"no nominee", " ", "bob", 10, "reason", ErrEmptyNominee},
		{"no nominator", "alice", "", 10, "reason", ErrEmptyNominator},
		{"no reason", "alice", "bob", 10, "  ", ErrEmptyReason},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateNew(tc.nominee, tc.nominator, tc.points, tc.reason)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestValidateDecision(t *testing.T) {
	if err := ValidateDecision(StatusPending, StatusApproved, "carol"); err != nil {
		t.Fatalf("expected valid approval, got %v", err)
	}
	if err := ValidateDecision(StatusApproved, StatusDenied, "carol"); !errors.Is(err, ErrNotPending) {
		t.Fatalf("expected ErrNotPending, got %v", err)
	}
	if err := ValidateDecision(StatusPending, "cancelled", "carol"); !errors.Is(err, ErrBadDecision) {
		t.Fatalf("expected ErrBadDecision, got %v", err)
	}
	if err := ValidateDecision(StatusPending, StatusDenied, " "); !errors.Is(err, ErrNoDecider) {
		t.Fatalf("expected ErrNoDecider, got %v", err)
	}
}

func TestLeaderboard(t *testing.T) {
	noms := []Nomination{
		{Nominee: "alice", Points: 30, Status: StatusApproved},
		{Nominee: "bob", Points: 50, Status: StatusApproved},
		{Nominee: "alice", Points: 20, Status: StatusApproved},
		{Nominee: "carol", Points: 100, Status: StatusPending},
		{Nominee: "dave", Points: 50, Status: StatusDenied},
		{Nominee: "erin", Points: 50, Status: StatusApproved},
	}

	got := Leaderboard(noms)
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d: %+v", len(got), got)
	}
	// alice: 50 points over 2 awards; bob and erin tie at 50 and sort by name.
	if got[0].Nominee != "alice" || got[0].Points != 50 || got[0].Awards != 2 {
		t.Fatalf("unexpected first entry %+v", got[0])
	}
	if got[1].Nominee != "bob" || got[2].Nominee != "erin" {
		t.Fatalf("expected tie broken by nominee name, got %+v then %+v", got[1], got[2])
	}
}

func TestLeaderboard_Empty(t *testing.T) {
	if got := Leaderboard(nil); len(got) != 0 {
		t.Fatalf("expected empty leaderboard, got %+v", got)
	}
}
