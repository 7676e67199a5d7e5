package llm

import "context"

// Part is one piece of a completion request: a text prompt or binary content with a
// MIME type (PDF pages, drawing images).
type Part struct {
	Text     string
	Data     []byte
	MIMEType string
}

// TextPart wraps a prompt string.
func TextPart(text string) Part {
	return Part{Text: text}
}

// DataPart wraps binary content.
func DataPart(data []byte, mimeType string) Part {
	return Part{Data: data, MIMEType: mimeType}
}

// Completer is the text-completion oracle boundary. Implementations return
// natural-language text consistent with the prompt's field labels; the engine treats
// the model itself as a black box.
type Completer interface {
	Complete(ctx context.Context, model string, parts []Part) (string, error)
}
