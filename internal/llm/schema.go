package llm

import "github.com/taperedworks/enquiry-tracker/constants"

// BuildParameterJSONSchema returns a JSON-Schema (draft 2020-12 subset) for the
// structured extraction mode: one string property per canonical parameter, all
// required, nothing else allowed.
func BuildParameterJSONSchema() map[string]any {
	names := constants.AsStringSlice()
	props := make(map[string]any, len(names))
	for _, name := range names {
		props[name] = map[string]any{"type": "string"}
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             names,
	}
}
