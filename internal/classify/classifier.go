// Package classify decides whether an inbound request amends an existing catalog
// project or opens a new enquiry.
package classify

import (
	"context"
	"errors"
	"log/slog"

	"github.com/taperedworks/enquiry-tracker/internal/catalog"
	"github.com/taperedworks/enquiry-tracker/internal/match"
)

// EnquiryType is the binary classification of an inbound request.
type EnquiryType string

const (
	Amendment  EnquiryType = "Amendment"
	NewEnquiry EnquiryType = "New Enquiry"
)

// ItemGetter is the slice of the catalog client the classifier needs to pull full
// detail for a confirmed amendment.
type ItemGetter interface {
	GetItemByName(ctx context.Context, name string) (*catalog.Item, error)
}

// Resolution is the final classification of one request. Item is populated only for
// amendments. Warning carries soft failures the caller may surface inline.
type Resolution struct {
	Type      EnquiryType      `json:"enquiry_type"`
	Candidate *match.Candidate `json:"candidate,omitempty"`
	Item      *catalog.Item    `json:"item,omitempty"`
	Warning   string           `json:"warning,omitempty"`
}

// Classifier orchestrates the matcher and the catalog client.
type Classifier struct {
	matcher *match.Matcher
	items   ItemGetter
	log     *slog.Logger
}

func NewClassifier(matcher *match.Matcher, items ItemGetter, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{matcher: matcher, items: items, log: logger}
}

// Classify ranks existing projects against the candidate name. An unreachable catalog
// or an empty candidate list fails open: the result is empty and the warning is set,
// and the request proceeds as a new enquiry unless a human later selects a match.
func (c *Classifier) Classify(ctx context.Context, projectName string) (match.Result, string) {
	result, err := c.matcher.FindMatches(ctx, projectName)
	if err != nil {
		c.log.Warn("classify.degraded", "project_name", projectName, "error", err)
		return match.Result{}, err.Error()
	}
	return result, ""
}

// Resolve applies the human selection to a match result. selection indexes into
// result.Matches; any out-of-range value (including -1 for "none of the above") yields
// a new enquiry. A confirmed selection fetches the full record for reconciliation;
// an ambiguous exact-name match downgrades to a warning on the resolution.
func (c *Classifier) Resolve(ctx context.Context, result match.Result, selection int) (Resolution, error) {
	if selection < 0 || selection >= len(result.Matches) {
		return Resolution{Type: NewEnquiry}, nil
	}

	cand := result.Matches[selection]
	item, err := c.items.GetItemByName(ctx, cand.Name)
	if err != nil && !errors.Is(err, catalog.ErrMultipleMatches) {
		return Resolution{}, err
	}

	res := Resolution{Type: Amendment, Candidate: &cand, Item: item}
	if err != nil {
		res.Warning = err.Error()
	}

	c.log.Info("classify.resolved",
		"enquiry_type", res.Type,
		"item_id", item.ID,
		"similarity", cand.Similarity,
	)
	return res, nil
}
