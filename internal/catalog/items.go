package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/taperedworks/enquiry-tracker/internal/common"
)

type itemsByColumnEnvelope struct {
	Data *struct {
		ItemsPage *struct {
			Items []Item `json:"items"`
		} `json:"items_page_by_column_values"`
	} `json:"data"`
	Errors []apiError `json:"errors"`
}

// GetItemByName looks up an item by its exact internal name, returning full column
// and subitem detail. More than one match returns the first item in traversal order
// together with ErrMultipleMatches.
func (c *Client) GetItemByName(ctx context.Context, name string) (*Item, error) {
	raw, err := c.send(ctx, itemByNameQuery(c.cfg.BoardID, name))
	if err != nil {
		return nil, fmt.Errorf("get item %q: %w", name, err)
	}

	var env itemsByColumnEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: decode item response: %v", common.ErrNoData, err)
	}
	if env.Data == nil {
		if len(env.Errors) > 0 {
			return nil, fmt.Errorf("catalog API error: %s", joinAPIErrors(env.Errors))
		}
		return nil, fmt.Errorf("%w: no data in item response", common.ErrNoData)
	}

	var items []Item
	if env.Data.ItemsPage != nil {
		items = env.Data.ItemsPage.Items
	}

	switch len(items) {
	case 0:
		return nil, fmt.Errorf("%w: item %q", common.ErrNotFound, name)
	case 1:
		return &items[0], nil
	default:
		c.log.Warn("catalog.item.multiple_matches", "name", name, "count", len(items))
		return &items[0], fmt.Errorf("%w: item %q has %d matches", ErrMultipleMatches, name, len(items))
	}
}

type boardsItemsEnvelope struct {
	Data *struct {
		Boards []struct {
			ItemsPage *struct {
				Items []Item `json:"items"`
			} `json:"items_page"`
		} `json:"boards"`
	} `json:"data"`
	Errors []apiError `json:"errors"`
}

// GetProjectByTitle searches the title column for projects containing the given text.
// The 0/1/many semantics match GetItemByName.
func (c *Client) GetProjectByTitle(ctx context.Context, title string) (*Item, error) {
	raw, err := c.send(ctx, projectByTitleQuery(c.cfg.BoardID, c.cfg.TitleColumn, title, c.cfg.SearchLimit))
	if err != nil {
		return nil, fmt.Errorf("get project by title %q: %w", title, err)
	}

	var env boardsItemsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: decode project response: %v", common.ErrNoData, err)
	}
	if env.Data == nil {
		if len(env.Errors) > 0 {
			return nil, fmt.Errorf("catalog API error: %s", joinAPIErrors(env.Errors))
		}
		return nil, fmt.Errorf("%w: no data in project response", common.ErrNoData)
	}

	var items []Item
	if len(env.Data.Boards) > 0 && env.Data.Boards[0].ItemsPage != nil {
		items = env.Data.Boards[0].ItemsPage.Items
	}

	switch len(items) {
	case 0:
		return nil, fmt.Errorf("%w: project with title %q", common.ErrNotFound, title)
	case 1:
		return &items[0], nil
	default:
		c.log.Warn("catalog.project.multiple_matches", "title", title, "count", len(items))
		return &items[0], fmt.Errorf("%w: title %q has %d matches", ErrMultipleMatches, title, len(items))
	}
}

type boardsListEnvelope struct {
	Data *struct {
		Boards []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"boards"`
	} `json:"data"`
	Errors []apiError `json:"errors"`
}

// BoardIDByName resolves a board's opaque ID from its display name.
func (c *Client) BoardIDByName(ctx context.Context, name string) (string, error) {
	raw, err := c.send(ctx, boardsQuery())
	if err != nil {
		return "", fmt.Errorf("list boards: %w", err)
	}

	var env boardsListEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", fmt.Errorf("%w: decode boards response: %v", common.ErrNoData, err)
	}
	if env.Data == nil || len(env.Data.Boards) == 0 {
		return "", fmt.Errorf("%w: unable to list boards", common.ErrNoData)
	}

	for _, b := range env.Data.Boards {
		if b.Name == name {
			return b.ID, nil
		}
	}
	return "", fmt.Errorf("%w: board %q", common.ErrNotFound, name)
}
