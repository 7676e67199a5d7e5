package llm

import (
	"strings"

	"github.com/taperedworks/enquiry-tracker/constants"
)

// BuildProjectNamePrompt asks the oracle for the project name (drawing title) alone,
// which is usually the project location.
func BuildProjectNamePrompt(combinedText string) string {
	var b strings.Builder
	b.WriteString("Based on the following email content and attachments, extract the project name ")
	b.WriteString("(drawing title) which is usually the project location.\n")
	b.WriteString("Return only the project name, nothing else.\n\n")
	b.WriteString(combinedText)
	return b.String()
}

// BuildAnalysisPrompt wraps the extracted text with the canonical parameter query.
// Once the enquiry type has been determined, the Reason for Change line is pinned to
// it instead of asking the model to guess.
func BuildAnalysisPrompt(allText, enquiryType string) string {
	query := constants.DefaultQuery
	if enquiryType != "" {
		query = strings.Replace(query, constants.ReasonForChangePlaceholder,
			"Reason for Change: ("+enquiryType+")", 1)
	}

	var b strings.Builder
	b.WriteString("Please analyze the following information extracted from emails, PDF documents, and images:\n\n")
	b.WriteString(allText)
	b.WriteString("\n\nQUESTION: ")
	b.WriteString(query)
	b.WriteString("\n\nNote that information may be found in any of the content sources, including text from image descriptions.")
	return b.String()
}

// BuildJSONAnalysisPrompt is the structured variant: the oracle must answer with a
// single JSON object matching the parameter schema.
func BuildJSONAnalysisPrompt(allText, enquiryType string) string {
	var b strings.Builder
	b.WriteString(BuildAnalysisPrompt(allText, enquiryType))
	b.WriteString("\n\nReturn ONLY a JSON object whose keys are exactly: ")
	b.WriteString(strings.Join(constants.AsStringSlice(), ", "))
	b.WriteString(". Use the string \"Not found\" for parameters you cannot determine. Never output null.")
	return b.String()
}
