package netdog

import (
	"fmt"
	"strings"
)

// Target is a check target of Netdog, written as "kind:address#name".
//
// The kind is the check type such as "ping" or "dns".
// The address is an IP address or a hostname.
// The name is an optional human readable label that is only used for displaying.
type Target struct {
	Kind    string
	Address string
	Name    string
}

// ParseTarget is parse string as a Target.
//
// This function checks only the syntax.
// Use probe.New if you want to check the kind is actually supported.
func ParseTarget(s string) (Target, error) {
	raw := s

	var name string
	if i := strings.IndexByte(s, '#'); i >= 0 {
		s, name = s[:i], s[i+1:]
	}

	kind, address, ok := strings.Cut(s, ":")
	if !ok || kind == "" {
		return Target{}, fmt.Errorf("%w: %q: probe kind is required", ErrInvalidTarget, raw)
	}
	if address == "" {
		return Target{}, fmt.Errorf("%w: %q: address is required", ErrMissingAddress, raw)
	}

	return Target{
		Kind:    strings.ToLower(kind),
		Address: strings.ToLower(address),
		Name:    name,
	}, nil
}

// String is make Target a string like "ping:192.168.1.1#Default Gateway".
func (t Target) String() string {
	if t.Name == "" {
		return t.Kind + ":" + t.Address
	}
	return t.Kind + ":" + t.Address + "#" + t.Name
}

// Label returns the name of the target if it set, otherwise the address.
func (t Target) Label() string {
	if t.Name != "" {
		return t.Name
	}
	return t.Address
}

// MarshalText is marshal Target as text
func (t Target) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText is unmarshal text as Target
func (t *Target) UnmarshalText(text []byte) error {
	var err error
	*t, err = ParseTarget(string(text))
	return err
}
