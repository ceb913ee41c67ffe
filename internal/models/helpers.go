package models

// Clamp constrains v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ValidPriority reports whether p is one of the known priorities.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// ValidTicketType reports whether t is one of the known ticket types.
func ValidTicketType(t string) bool {
	switch t {
	case TypeBug, TypeFeature, TypeEnhancement, TypeTask:
		return true
	}
	return false
}

// ValidAvailability reports whether a is a known availability state.
func ValidAvailability(a string) bool {
	switch a {
	case Available, Busy, Unavailable:
		return true
	}
	return false
}
