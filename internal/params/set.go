// Package params reconciles structured catalog records and free-text analysis into the
// canonical design-parameter set. Reconciliation never fails: anything a source cannot
// resolve degrades to the sentinel value.
package params

import (
	"github.com/taperedworks/enquiry-tracker/constants"
)

// Set maps every canonical parameter name to its extracted value. A Set always carries
// all parameters; unresolved ones hold constants.NotFound.
type Set map[string]string

// New returns a Set with every canonical parameter at its sentinel default.
func New() Set {
	s := make(Set, len(constants.ParameterNames))
	for _, p := range constants.ParameterNames {
		s[string(p)] = constants.NotFound
	}
	return s
}

// Clone returns an independent copy.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Entry is one parameter/value pair in canonical order.
type Entry struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Ordered returns the parameters in canonical display/export order.
func (s Set) Ordered() []Entry {
	out := make([]Entry, 0, len(constants.ParameterNames))
	for _, p := range constants.ParameterNames {
		out = append(out, Entry{Name: string(p), Value: s[string(p)]})
	}
	return out
}

// Resolved reports whether the parameter holds a real value rather than a sentinel.
func (s Set) Resolved(p constants.Parameter) bool {
	v := s[string(p)]
	return v != "" && v != constants.NotFound
}
