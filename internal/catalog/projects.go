package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/taperedworks/enquiry-tracker/internal/common"
)

// itemsPage is one page of the cursor protocol. A nil cursor terminates pagination.
type itemsPage struct {
	Cursor *string `json:"cursor"`
	Items  []Item  `json:"items"`
}

type boardsPageEnvelope struct {
	Data *struct {
		Boards []struct {
			ItemsPage *itemsPage `json:"items_page"`
		} `json:"boards"`
	} `json:"data"`
	Errors []apiError `json:"errors"`
}

// page extracts the items_page of the first board, or nil when the nested structure
// is absent.
func (e *boardsPageEnvelope) page() *itemsPage {
	if e.Data == nil || len(e.Data.Boards) == 0 {
		return nil
	}
	return e.Data.Boards[0].ItemsPage
}

// FetchActiveProjects retrieves every active item on the enquiry board whose created
// date is on or after sinceDate, paging through the cursor protocol transparently.
//
// The first page must be well-formed; a malformed later page truncates pagination and
// the items collected so far are still returned. Exhausting pagination with zero items
// is an error, so callers can tell an empty catalog from an unreachable one.
func (c *Client) FetchActiveProjects(ctx context.Context, sinceDate string) ([]Item, error) {
	if sinceDate == "" {
		sinceDate = c.cfg.SinceDate
	}
	start := time.Now()
	c.log.Info("catalog.fetch.start", "board_id", c.cfg.BoardID, "since", sinceDate)

	var items []Item
	appendActive := func(p *itemsPage) {
		for _, it := range p.Items {
			if it.State == "active" {
				items = append(items, it)
			}
		}
	}

	query := activeProjectsQuery(c.cfg.BoardID, c.cfg.DateColumn, c.cfg.TitleColumn, sinceDate, c.cfg.PageLimit, "")
	raw, err := c.send(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("fetch active projects: %w", err)
	}

	var env boardsPageEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: decode first page: %v", common.ErrNoData, err)
	}
	if len(env.Errors) > 0 {
		return nil, fmt.Errorf("catalog API error: %s", joinAPIErrors(env.Errors))
	}
	page := env.page()
	if page == nil {
		return nil, fmt.Errorf("%w: unexpected payload structure", common.ErrNoData)
	}

	appendActive(page)
	cursor := page.Cursor
	pages := 1

	for cursor != nil && *cursor != "" {
		query = activeProjectsQuery(c.cfg.BoardID, c.cfg.DateColumn, c.cfg.TitleColumn, sinceDate, c.cfg.PageLimit, *cursor)
		raw, err = c.send(ctx, query)
		if err != nil {
			c.log.Warn("catalog.fetch.page_error", "page", pages+1, "error", err)
			break
		}
		env = boardsPageEnvelope{}
		if err := json.Unmarshal(raw, &env); err != nil {
			c.log.Warn("catalog.fetch.page_decode_error", "page", pages+1, "error", err)
			break
		}
		page = env.page()
		if page == nil {
			c.log.Warn("catalog.fetch.page_truncated", "page", pages+1)
			break
		}
		appendActive(page)
		cursor = page.Cursor
		pages++
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no active projects created on or after %s were found on board %s",
			common.ErrNotFound, sinceDate, c.cfg.BoardID)
	}

	c.log.Info("catalog.fetch.ok",
		"items", len(items),
		"pages", pages,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return items, nil
}
