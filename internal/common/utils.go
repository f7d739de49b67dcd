package common

import (
	"fmt"
	"strings"
)

// HasAny returns true if s equals any of the options, ignoring case.
func HasAny(s string, options ...string) bool {
	for _, opt := range options {
		if strings.EqualFold(s, opt) {
			return true
		}
	}
	return false
}

// ParseBool accepts the usual checkbox spellings of a boolean query value.
func ParseBool(s string) (bool, error) {
	s = strings.TrimSpace(s)
	switch {
	case HasAny(s, "1", "true", "yes", "on"):
		return true, nil
	case HasAny(s, "0", "false", "no", "off"):
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}
