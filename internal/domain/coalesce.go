package domain

// StrFromPtr returns *p, or "" when p is nil.
func StrFromPtr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// IntFromPtrWithDefault returns the first non-nil *int value, or the fallback.
func IntFromPtrWithDefault(fallback int, ptrs ...*int) int {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}
