package grid

import (
	"encoding"
	"fmt"
	"slices"
	"strings"
)

// SkipSet is an immutable set of item indices whose slots stay vacant.
// Duplicates, negative indices and indices past the item count are
// tolerated and have no effect.
type SkipSet struct {
	indices []int
}

// NewSkipSet creates a [SkipSet] from indices.
func NewSkipSet(indices ...int) SkipSet {
	s := slices.Clone(indices)
	slices.Sort(s)

	return SkipSet{indices: slices.Compact(s)}
}

// Contains reports whether index is a member.
func (s SkipSet) Contains(index int) bool {
	_, ok := slices.BinarySearch(s.indices, index)

	return ok
}

// Indices returns the distinct members in ascending order.
func (s SkipSet) Indices() []int {
	return slices.Clone(s.indices)
}

// Len returns the number of distinct members.
func (s SkipSet) Len() int {
	return len(s.indices)
}

// CountInRange returns how many members fall in [0, n).
func (s SkipSet) CountInRange(n int) int {
	lo, _ := slices.BinarySearch(s.indices, 0)
	hi, _ := slices.BinarySearch(s.indices, n)

	return max(hi-lo, 0)
}

// Equal reports whether both sets have the same members.
func (s SkipSet) Equal(other SkipSet) bool {
	return slices.Equal(s.indices, other.indices)
}

func (s SkipSet) String() string {
	parts := make([]string, len(s.indices))
	for i, idx := range s.indices {
		parts[i] = fmt.Sprint(idx)
	}

	return "{" + strings.Join(parts, ",") + "}"
}

// SkipPolicy selects how skip set members that are also item indices are
// treated.
type SkipPolicy string

const (
	// SkipOmit produces no frame for a member; later items shift forward.
	SkipOmit SkipPolicy = "omit"

	// SkipDisplace keeps the member and places it one slot further on,
	// leaving its own slot vacant.
	SkipDisplace SkipPolicy = "displace"
)

var (
	_ encoding.TextUnmarshaler = (*SkipPolicy)(nil)

	// AllSkipPolicies lists the valid policies.
	AllSkipPolicies = []string{string(SkipOmit), string(SkipDisplace)}
)

// ParseSkipPolicy parses a policy name. The empty string selects
// [SkipOmit].
func ParseSkipPolicy(s string) (SkipPolicy, error) {
	switch p := SkipPolicy(strings.ToLower(s)); p {
	case "":
		return SkipOmit, nil
	case SkipOmit, SkipDisplace:
		return p, nil
	}

	return "", fmt.Errorf("%w %q, expected one of %s",
		ErrUnknownSkipPolicy, s, strings.Join(AllSkipPolicies, ", "))
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (p *SkipPolicy) UnmarshalText(text []byte) error {
	parsed, err := ParseSkipPolicy(string(text))
	if err != nil {
		return err
	}

	*p = parsed

	return nil
}

// skipCursor counts skip set members seen so far while scanning item
// indices in increasing order. It lives for a single recompute.
type skipCursor struct {
	set    SkipSet
	policy SkipPolicy
	count  int
}

// advance returns the shift for index and whether the index produces a
// frame. It must be called once per index, in increasing order.
func (c *skipCursor) advance(index int) (int, bool) {
	if !c.set.Contains(index) {
		return c.count, true
	}

	c.count++

	if c.policy == SkipDisplace {
		return c.count, true
	}

	return c.count, false
}
