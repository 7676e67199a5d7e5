package llm

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/taperedworks/enquiry-tracker/constants"
)

// StripCodeFences removes a surrounding markdown code fence from a model answer.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// SanitizeParameterDoc repairs a parameter JSON document that fails strict schema
// validation: unknown keys are dropped, scalar non-strings are coerced to strings, and
// missing parameters are filled with the sentinel. Returns the cleaned document and
// the keys that were dropped.
func SanitizeParameterDoc(doc []byte) ([]byte, []string, error) {
	var m map[string]any
	if err := json.Unmarshal(doc, &m); err != nil {
		return nil, nil, fmt.Errorf("unmarshal parameter doc: %w", err)
	}

	known := make(map[string]bool, len(constants.ParameterNames))
	for _, p := range constants.ParameterNames {
		known[string(p)] = true
	}

	var dropped []string
	out := make(map[string]string, len(constants.ParameterNames))
	for k, v := range m {
		if !known[k] {
			dropped = append(dropped, k)
			continue
		}
		switch tv := v.(type) {
		case string:
			out[k] = tv
		case float64:
			out[k] = strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", tv), "0"), ".")
		case bool:
			out[k] = fmt.Sprintf("%t", tv)
		case nil:
			out[k] = constants.NotFound
		default:
			dropped = append(dropped, k)
		}
	}
	for _, p := range constants.ParameterNames {
		if _, ok := out[string(p)]; !ok {
			out[string(p)] = constants.NotFound
		}
	}
	sort.Strings(dropped)

	cleaned, err := json.Marshal(out)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal cleaned doc: %w", err)
	}
	return cleaned, dropped, nil
}
