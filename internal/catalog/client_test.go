package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taperedworks/enquiry-tracker/internal/common"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(common.CatalogConfig{
		APIURL:    srv.URL,
		APIToken:  "test-token",
		BoardID:   "1825117125",
		SinceDate: "2021-01-01",
	}, nil)
}

// pageBody renders a boards/items_page response. cursor "" means end of pagination.
func pageBody(cursor string, items ...map[string]any) string {
	page := map[string]any{"items": items}
	if cursor != "" {
		page["cursor"] = cursor
	} else {
		page["cursor"] = nil
	}
	body, _ := json.Marshal(map[string]any{
		"data": map[string]any{
			"boards": []any{map[string]any{"items_page": page}},
		},
	})
	return string(body)
}

func activeItem(id, name string) map[string]any {
	return map[string]any{"id": id, "name": name, "state": "active"}
}

func TestFetchActiveProjectsPaginates(t *testing.T) {
	var calls int
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "test-token", r.Header.Get("Authorization"))
		switch calls {
		case 1:
			fmt.Fprint(w, pageBody("c1",
				activeItem("1", "Riverside School"),
				map[string]any{"id": "2", "name": "Old Job", "state": "deleted"},
			))
		case 2:
			fmt.Fprint(w, pageBody("c2", activeItem("3", "Oak Lane Depot")))
		default:
			fmt.Fprint(w, pageBody("", activeItem("4", "Harbour View")))
		}
	})

	items, err := c.FetchActiveProjects(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 3, calls)

	require.Len(t, items, 3, "inactive items are filtered out")
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, "3", items[1].ID)
	assert.Equal(t, "4", items[2].ID)
}

func TestFetchActiveProjectsEmptyIsError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, pageBody(""))
	})

	_, err := c.FetchActiveProjects(context.Background(), "2021-01-01")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestFetchActiveProjectsTruncatesOnLaterPageFailure(t *testing.T) {
	var calls int
	c := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			fmt.Fprint(w, pageBody("c1", activeItem("1", "Riverside School")))
			return
		}
		fmt.Fprint(w, "{not json")
	})

	items, err := c.FetchActiveProjects(context.Background(), "")
	require.NoError(t, err, "a malformed later page truncates but keeps collected items")
	require.Len(t, items, 1)
	assert.Equal(t, "1", items[0].ID)
}

func TestFetchActiveProjectsFirstPageMalformedIsError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "{not json")
	})

	_, err := c.FetchActiveProjects(context.Background(), "")
	assert.ErrorIs(t, err, common.ErrNoData)
}

func TestFetchActiveProjectsAPIError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"errors":[{"message":"rate limit"},{"message":"try later"}]}`)
	})

	_, err := c.FetchActiveProjects(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit; try later")
}

func TestFetchActiveProjectsTransportError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.FetchActiveProjects(context.Background(), "")
	assert.ErrorIs(t, err, common.ErrTransport)
}

func itemsByNameBody(items ...map[string]any) string {
	body, _ := json.Marshal(map[string]any{
		"data": map[string]any{
			"items_page_by_column_values": map[string]any{"items": items},
		},
	})
	return string(body)
}

func TestGetItemByName(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req["query"], "items_page_by_column_values")
		fmt.Fprint(w, itemsByNameBody(activeItem("7", "Riverside School")))
	})

	item, err := c.GetItemByName(context.Background(), "Riverside School")
	require.NoError(t, err)
	assert.Equal(t, "7", item.ID)
}

func TestGetItemByNameNotFound(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, itemsByNameBody())
	})

	_, err := c.GetItemByName(context.Background(), "Missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetItemByNameMultipleMatches(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, itemsByNameBody(
			activeItem("7", "Riverside School"),
			activeItem("8", "Riverside School"),
		))
	})

	item, err := c.GetItemByName(context.Background(), "Riverside School")
	assert.ErrorIs(t, err, ErrMultipleMatches)
	require.NotNil(t, item, "first match is still returned")
	assert.Equal(t, "7", item.ID)
}

func TestGetItemByNameEscapesQuery(t *testing.T) {
	var query string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		query = req["query"]
		fmt.Fprint(w, itemsByNameBody(activeItem("7", `The "Quoted" Job`)))
	})

	_, err := c.GetItemByName(context.Background(), `The "Quoted" Job`)
	require.NoError(t, err)
	assert.Contains(t, query, `\"Quoted\"`)
	assert.False(t, strings.Contains(query, `["The "Quoted" Job"]`), "quotes must not break the literal")
}

func boardsItemsBody(items ...map[string]any) string {
	body, _ := json.Marshal(map[string]any{
		"data": map[string]any{
			"boards": []any{map[string]any{
				"items_page": map[string]any{"items": items},
			}},
		},
	})
	return string(body)
}

func TestGetProjectByTitle(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req["query"], "contains_text")
		assert.Contains(t, req["query"], `"text3__1"`)
		fmt.Fprint(w, boardsItemsBody(activeItem("5", "Riverside School")))
	})

	item, err := c.GetProjectByTitle(context.Background(), "Riverside")
	require.NoError(t, err)
	assert.Equal(t, "5", item.ID)
}

func TestGetProjectByTitleNotFound(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, boardsItemsBody())
	})

	_, err := c.GetProjectByTitle(context.Background(), "Missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetProjectByTitleMultipleMatches(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, boardsItemsBody(
			activeItem("5", "Riverside School"),
			activeItem("6", "Riverside Depot"),
		))
	})

	item, err := c.GetProjectByTitle(context.Background(), "Riverside")
	assert.ErrorIs(t, err, ErrMultipleMatches)
	require.NotNil(t, item)
	assert.Equal(t, "5", item.ID)
}

func TestBoardIDByName(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"data":{"boards":[{"id":"1","name":"Archive"},{"id":"1825117125","name":"Enquiries"}]}}`)
	})

	id, err := c.BoardIDByName(context.Background(), "Enquiries")
	require.NoError(t, err)
	assert.Equal(t, "1825117125", id)

	_, err = c.BoardIDByName(context.Background(), "Unknown Board")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
