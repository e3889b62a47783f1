// Package identity provides the read-only display name attached to every
// remote community call. The value is owned by the settings UI; this daemon
// only reads it.
package identity

// Provider yields the current display name. Empty means the user has not
// configured one yet, which makes every mutation a precondition failure.
type Provider interface {
	Username() string
}

// Static is a Provider backed by a fixed value from configuration.
type Static string

// Username returns the configured display name.
func (s Static) Username() string { return string(s) }
