package label

import "testing"

func TestMembershipStatusCycleReturnsToSame(t *testing.T) {
	s := StatusSame
	seen := []MembershipStatus{}
	for i := 0; i < 3; i++ {
		s = s.Next()
		if !s.Valid() {
			t.Fatalf("cycle produced invalid status %q", s)
		}
		seen = append(seen, s)
	}
	if s != StatusSame {
		t.Fatalf("expected cycle to return to same, got %q", s)
	}
	want := []MembershipStatus{StatusDifferent, StatusInvalid, StatusSame}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("step %d: expected %q, got %q", i, want[i], seen[i])
		}
	}
}

func TestMembershipStatusNextFromUnknown(t *testing.T) {
	if got := MembershipStatus("bogus").Next(); got != StatusSame {
		t.Fatalf("expected unknown status to restart at same, got %q", got)
	}
}

func TestParseMembershipStatus(t *testing.T) {
	cases := map[string]MembershipStatus{
		"same":       StatusSame,
		" Different": StatusDifferent,
		"INVALID":    StatusInvalid,
		"":           StatusSame,
		"maybe":      StatusSame,
	}
	for raw, want := range cases {
		if got := ParseMembershipStatus(raw); got != want {
			t.Fatalf("ParseMembershipStatus(%q) = %q, want %q", raw, got, want)
		}
	}
	if MembershipFromApproved(false) != StatusDifferent || MembershipFromApproved(true) != StatusSame {
		t.Fatalf("unexpected approved mapping")
	}
}

func TestParseClusterStatusDefaultsToLabeled(t *testing.T) {
	for _, raw := range []string{"", "nope", "null"} {
		if got := ParseClusterStatus(raw); got != ClusterLabeled {
			t.Fatalf("ParseClusterStatus(%q) = %q, want labeled", raw, got)
		}
	}
	if got := ParseClusterStatus("Postponed"); got != ClusterPostponed {
		t.Fatalf("expected postponed, got %q", got)
	}
	if got := ClusterDiscarded.Title(); got != "Discarded" {
		t.Fatalf("expected Discarded, got %q", got)
	}
}

func TestMovieProgress(t *testing.T) {
	m := Movie{ClusterCount: 8, LabeledClusterCount: 2}
	if got := m.Progress(); got != 25 {
		t.Fatalf("expected 25%%, got %v", got)
	}
	if got := (Movie{}).Progress(); got != 0 {
		t.Fatalf("expected 0 for empty movie, got %v", got)
	}
}
