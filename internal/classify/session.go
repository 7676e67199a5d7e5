package classify

import (
	"github.com/google/uuid"

	"github.com/taperedworks/enquiry-tracker/internal/match"
	"github.com/taperedworks/enquiry-tracker/internal/params"
)

// Session carries the state of one classification run between the extraction layer,
// the classifier, and the reconciler. It is passed explicitly; nothing here lives in
// package-level state.
type Session struct {
	ID            string        `json:"id"`
	ExtractedText string        `json:"extracted_text,omitempty"`
	ProjectName   string        `json:"project_name,omitempty"`
	Search        *match.Result `json:"search,omitempty"`
	Resolution    *Resolution   `json:"resolution,omitempty"`
	Params        params.Set    `json:"params,omitempty"`
	Analysis      string        `json:"analysis,omitempty"`
}

// NewSession returns an empty session with a fresh identifier.
func NewSession() *Session {
	return &Session{ID: uuid.New().String()}
}

// Reset discards all accumulated state and returns a fresh session.
func (s *Session) Reset() *Session {
	return NewSession()
}
