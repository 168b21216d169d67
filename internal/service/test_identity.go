package services

import "strings"

// TestIdentities recognises synthetic user ids used by integration tests.
// It is disabled in production, whatever the prefix.
type TestIdentities struct {
	prefix  string
	enabled bool
}

func NewTestIdentities(prefix string, production bool) *TestIdentities {
	return &TestIdentities{
		prefix:  prefix,
		enabled: !production && prefix != "",
	}
}

func (t *TestIdentities) Allows(id string) bool {
	return t != nil && t.enabled && strings.HasPrefix(id, t.prefix)
}

func (t *TestIdentities) Enabled() bool {
	return t != nil && t.enabled
}
