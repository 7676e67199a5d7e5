package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taperedworks/enquiry-tracker/constants"
)

func TestBuildProjectNamePrompt(t *testing.T) {
	p := BuildProjectNamePrompt("email body here")
	assert.Contains(t, p, "extract the project name")
	assert.Contains(t, p, "email body here")
}

func TestBuildAnalysisPromptPinsReasonForChange(t *testing.T) {
	p := BuildAnalysisPrompt("extracted text", "Amendment")
	assert.Contains(t, p, "Reason for Change: (Amendment)")
	assert.NotContains(t, p, constants.ReasonForChangePlaceholder)
	assert.Contains(t, p, "extracted text")
}

func TestBuildAnalysisPromptWithoutType(t *testing.T) {
	p := BuildAnalysisPrompt("extracted text", "")
	assert.Contains(t, p, constants.ReasonForChangePlaceholder,
		"unknown enquiry type leaves the model to decide")
}

func TestBuildJSONAnalysisPromptListsAllParameters(t *testing.T) {
	p := BuildJSONAnalysisPrompt("extracted text", "New Enquiry")
	assert.Contains(t, p, "Return ONLY a JSON object")
	for _, name := range constants.AsStringSlice() {
		assert.Contains(t, p, name)
	}
}
