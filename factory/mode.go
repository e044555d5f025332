package factory

// Mode identifies the ownership policy of a factory.
// It is fixed by the factory's type and never switches behavior at runtime.
type Mode uint8

const (
	// ModeOwned objects live from one Create to exactly one Destroy and are
	// reported to the host accountant.
	ModeOwned Mode = iota
	// ModeShared objects are reference counted and invisible to the host accountant.
	ModeShared
)

func (m Mode) String() string {
	switch m {
	case ModeOwned:
		return "owned"
	case ModeShared:
		return "shared"
	default:
		return "unknown"
	}
}

// Accounted reports whether factories of this mode report to the accountant.
func (m Mode) Accounted() bool {
	return m == ModeOwned
}

// ParseMode parses "owned" or "shared".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "owned":
		return ModeOwned, true
	case "shared":
		return ModeShared, true
	default:
		return 0, false
	}
}
