package match

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/taperedworks/enquiry-tracker/internal/catalog"
)

// DefaultThreshold balances false positives against missed amendments; tune per
// deployment via configuration.
const DefaultThreshold = 0.55

// ProjectFetcher is the slice of the catalog client the matcher depends on.
type ProjectFetcher interface {
	FetchActiveProjects(ctx context.Context, sinceDate string) ([]catalog.Item, error)
}

// Candidate is one catalog entry scored against the requested project name.
type Candidate struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Title      string  `json:"title"`
	Similarity float64 `json:"similarity"`
}

// Result ranks the candidates that met the threshold, best first. Exists is true iff
// Matches is non-empty, and Best points at the head of Matches in that case.
type Result struct {
	Exists  bool        `json:"exists"`
	Matches []Candidate `json:"matches"`
	Best    *Candidate  `json:"best_match,omitempty"`
}

// Matcher scores catalog titles against a candidate project name.
type Matcher struct {
	fetcher   ProjectFetcher
	threshold float64
	sinceDate string
	log       *slog.Logger
}

func NewMatcher(fetcher ProjectFetcher, threshold float64, sinceDate string, logger *slog.Logger) *Matcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Matcher{fetcher: fetcher, threshold: threshold, sinceDate: sinceDate, log: logger}
}

// FindMatches fetches the active projects and keeps every entry whose resolved title
// scores at or above the threshold, sorted by descending similarity. Equal scores keep
// catalog traversal order. A fetch failure is propagated verbatim with an empty result.
func (m *Matcher) FindMatches(ctx context.Context, projectName string) (Result, error) {
	start := time.Now()

	projects, err := m.fetcher.FetchActiveProjects(ctx, m.sinceDate)
	if err != nil {
		m.log.Warn("match.fetch_failed", "project_name", projectName, "error", err)
		return Result{}, err
	}

	var matches []Candidate
	for _, p := range projects {
		title := p.Title()
		score := Similarity(projectName, title)
		if score >= m.threshold {
			matches = append(matches, Candidate{
				ID:         p.ID,
				Name:       p.Name,
				Title:      title,
				Similarity: score,
			})
		}
	}

	// Stable sort keeps catalog traversal order for equal scores.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	result := Result{Matches: matches}
	if len(matches) > 0 {
		result.Exists = true
		result.Best = &matches[0]
	}

	m.log.Info("match.done",
		"project_name", projectName,
		"catalog_items", len(projects),
		"matches", len(matches),
		"threshold", m.threshold,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}
