package label

// MembershipStatus records whether an image belongs to its cluster.
type MembershipStatus string

const (
	StatusSame      MembershipStatus = "same"
	StatusDifferent MembershipStatus = "different"
	StatusInvalid   MembershipStatus = "invalid"
)

var membershipCycle = []MembershipStatus{StatusSame, StatusDifferent, StatusInvalid}

// Next returns the following status in the fixed cycle
// same → different → invalid → same. Unknown values restart the cycle.
func (s MembershipStatus) Next() MembershipStatus {
	for i, status := range membershipCycle {
		if status == s {
			return membershipCycle[(i+1)%len(membershipCycle)]
		}
	}
	return StatusSame
}

// Valid reports whether s is one of the three membership values.
func (s MembershipStatus) Valid() bool {
	for _, status := range membershipCycle {
		if status == s {
			return true
		}
	}
	return false
}

// ParseMembershipStatus maps a wire value onto the enumeration. Unknown or
// empty values become StatusSame, the backend default.
func ParseMembershipStatus(raw string) MembershipStatus {
	s := MembershipStatus(normalize(raw))
	if s.Valid() {
		return s
	}
	return StatusSame
}

// MembershipFromApproved converts the legacy boolean approval flag.
func MembershipFromApproved(approved bool) MembershipStatus {
	if approved {
		return StatusSame
	}
	return StatusDifferent
}

// ClusterStatus is the cluster-level verdict.
type ClusterStatus string

const (
	ClusterLabeled   ClusterStatus = "labeled"
	ClusterPostponed ClusterStatus = "postponed"
	ClusterDiscarded ClusterStatus = "discarded"
	ClusterMixed     ClusterStatus = "mixed"
)

// DefaultClusterStatus is used whenever a status is missing or invalid.
const DefaultClusterStatus = ClusterLabeled

// ClusterStatuses lists the statuses in button order.
var ClusterStatuses = []ClusterStatus{ClusterLabeled, ClusterPostponed, ClusterDiscarded, ClusterMixed}

// Valid reports whether s is a known cluster status.
func (s ClusterStatus) Valid() bool {
	for _, status := range ClusterStatuses {
		if status == s {
			return true
		}
	}
	return false
}

// ParseClusterStatus returns the matching status or DefaultClusterStatus.
func ParseClusterStatus(raw string) ClusterStatus {
	s := ClusterStatus(normalize(raw))
	if s.Valid() {
		return s
	}
	return DefaultClusterStatus
}

// Title returns the capitalised status name used on buttons.
func (s ClusterStatus) Title() string {
	if s == "" {
		return ""
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
