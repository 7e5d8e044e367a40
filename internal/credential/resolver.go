package credential

import "context"

// Set maps secret-key names to secret values for one integration reference.
// Absent keys are simply missing from the map, never empty-string placeholders.
type Set map[string]string

// Get returns the value for key and whether it is present and non-empty.
func (s Set) Get(key string) (string, bool) {
	v, ok := s[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Resolver looks up the stored secrets for an integration reference.
//
// Resolution never fails: an empty or unknown reference yields an empty set.
// Callers are responsible for detecting missing required keys and reporting
// a precise, user-actionable message. Implementations must be safe for
// concurrent read-only lookups.
type Resolver interface {
	Resolve(ctx context.Context, ref string) Set
}
