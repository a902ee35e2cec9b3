package ports

// IgnoreRules answers whether a pathname is excluded from capture.
type IgnoreRules interface {
	// Ignored reports whether the pathname matches the rule set.
	Ignored(pathname string) bool
}
