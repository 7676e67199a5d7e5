// Package extract turns raw extracted text into canonical parameters via the
// completion oracle.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taperedworks/enquiry-tracker/constants"
	"github.com/taperedworks/enquiry-tracker/internal/llm"
	"github.com/taperedworks/enquiry-tracker/internal/params"
)

// Service wraps a Completer with the prompts and post-processing of the
// parameter-extraction flows.
type Service struct {
	completer llm.Completer
	model     string
	log       *slog.Logger
}

func NewService(completer llm.Completer, model string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{completer: completer, model: model, log: logger}
}

// ProjectName extracts the project name (drawing title) from combined email text.
func (s *Service) ProjectName(ctx context.Context, combinedText string) (string, error) {
	resp, err := s.completer.Complete(ctx, s.model, []llm.Part{
		llm.TextPart(llm.BuildProjectNamePrompt(combinedText)),
	})
	if err != nil {
		return "", fmt.Errorf("extract project name: %w", err)
	}
	return strings.TrimSpace(resp), nil
}

// AnalyzeText runs the canonical parameter query over the extracted text and scans
// the free-text answer. The raw analysis is returned alongside the parameters so the
// caller can display or export it. Once a completion is obtained this cannot fail:
// unmatched labels degrade to sentinels.
func (s *Service) AnalyzeText(ctx context.Context, allText, enquiryType string) (params.Set, string, error) {
	start := time.Now()

	resp, err := s.completer.Complete(ctx, s.model, []llm.Part{
		llm.TextPart(llm.BuildAnalysisPrompt(allText, enquiryType)),
	})
	if err != nil {
		return nil, "", fmt.Errorf("analyze text: %w", err)
	}

	set := params.FromFreeText(resp)
	s.log.Info("extract.analyze.ok",
		"mode", "text",
		"response_len", len(resp),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return set, resp, nil
}

// AnalyzeJSON is the structured variant: the oracle answers with a JSON object which
// is validated against the parameter schema, with one lenient sanitize pass before
// giving up. Values still run through the free-text normalization rules.
func (s *Service) AnalyzeJSON(ctx context.Context, allText, enquiryType string) (params.Set, []byte, error) {
	start := time.Now()

	resp, err := s.completer.Complete(ctx, s.model, []llm.Part{
		llm.TextPart(llm.BuildJSONAnalysisPrompt(allText, enquiryType)),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("analyze json: %w", err)
	}

	raw := []byte(llm.StripCodeFences(resp))
	schema := llm.BuildParameterJSONSchema()
	if err := llm.ValidateJSONAgainstSchema(schema, raw); err != nil {
		cleaned, dropped, sErr := llm.SanitizeParameterDoc(raw)
		if sErr != nil {
			return nil, raw, fmt.Errorf("sanitize failed: %w", sErr)
		}
		if vErr := llm.ValidateJSONAgainstSchema(schema, cleaned); vErr != nil {
			return nil, raw, fmt.Errorf("schema validation failed: %w", vErr)
		}
		s.log.Warn("extract.analyze.sanitize_applied", "dropped", dropped)
		raw = cleaned
	}

	var doc map[string]string
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, raw, fmt.Errorf("unmarshal parameters: %w", err)
	}

	set := params.New()
	for k, v := range doc {
		if _, ok := set[k]; !ok {
			continue
		}
		if v == "" {
			continue
		}
		set[k] = v
	}
	set[string(constants.TaperedInsulation)] = params.MapInsulationCategory(set[string(constants.TaperedInsulation)])
	set[string(constants.PostCode)] = params.NormalizePostCode(set[string(constants.PostCode)])

	s.log.Info("extract.analyze.ok",
		"mode", "json",
		"response_len", len(resp),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return set, raw, nil
}
