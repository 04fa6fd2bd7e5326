package entity

// AccessTier is the ordered capability level of a caller. It gates which
// tools the assistant may invoke on the caller's behalf; it does not gate
// data visibility.
type AccessTier int

const (
	TierNone AccessTier = iota
	TierReadOnly
	TierReadWrite
	TierFull
)

// ParseTier maps a configuration string to an AccessTier. Unknown values
// resolve to TierNone so a typo in the token table can never widen access.
func ParseTier(s string) AccessTier {
	switch s {
	case "read_only":
		return TierReadOnly
	case "read_write":
		return TierReadWrite
	case "full":
		return TierFull
	default:
		return TierNone
	}
}

func (t AccessTier) String() string {
	switch t {
	case TierReadOnly:
		return "read_only"
	case TierReadWrite:
		return "read_write"
	case TierFull:
		return "full"
	default:
		return "none"
	}
}

// AtLeast reports whether the tier grants at least the given level.
func (t AccessTier) AtLeast(min AccessTier) bool {
	return t >= min
}

// Caller identifies who is driving a turn. The zero value is an anonymous
// caller at TierNone.
type Caller struct {
	// ID is the caller's stable identifier; empty for anonymous callers.
	ID string `json:"id"`

	// Name is the caller's display name, used when write tools attribute
	// records ("created_by").
	Name string `json:"name"`

	// Tier is the caller's access tier, resolved once per turn by the
	// authentication layer.
	Tier AccessTier `json:"tier"`
}

// IsAnonymous reports whether the caller carries no identity.
func (c Caller) IsAnonymous() bool {
	return c.ID == ""
}
