package catalog

import (
	"fmt"
	"strings"
)

// escape makes a value safe inside a GraphQL double-quoted string literal.
func escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}

// columnValueFields is the selection shared by every item query: plain text plus the
// mirror-column display value.
const columnValueFields = `id text __typename ... on MirrorValue { display_value }`

// activeProjectsQuery pages the enquiry board, filtered to items whose created-date
// column is on or after sinceDate. cursor == "" builds the first page.
func activeProjectsQuery(boardID, dateColumn, titleColumn, sinceDate string, limit int, cursor string) string {
	cursorArg := ""
	if cursor != "" {
		cursorArg = fmt.Sprintf(`cursor: "%s",`, escape(cursor))
	}
	return fmt.Sprintf(`query {
  boards(ids: %s) {
    items_page(
      limit: %d,
      %s
      query_params: {
        rules: [{
          column_id: "%s",
          compare_value: ["EXACT", "%s"],
          operator: greater_than_or_equals
        }]
      }
    ) {
      cursor
      items {
        id
        name
        state
        column_values(ids: ["%s", "%s"]) { %s }
      }
    }
  }
}`, boardID, limit, cursorArg, dateColumn, escape(sinceDate), titleColumn, dateColumn, columnValueFields)
}

// itemByNameQuery looks an item up by exact name, with full column values and
// subitem (revision) detail.
func itemByNameQuery(boardID, name string) string {
	return fmt.Sprintf(`{
  items_page_by_column_values(board_id: %s, columns: [{ column_id: "name", column_values: ["%s"] }]) {
    items {
      id
      name
      column_values { %s }
      subitems {
        id
        name
        column_values { %s }
      }
    }
  }
}`, boardID, escape(name), columnValueFields, columnValueFields)
}

// projectByTitleQuery searches the title column with a contains_text rule.
func projectByTitleQuery(boardID, titleColumn, title string, limit int) string {
	return fmt.Sprintf(`query {
  boards(ids: %s) {
    items_page(
      limit: %d,
      query_params: {
        rules: [{
          column_id: "%s",
          compare_value: ["%s"],
          operator: contains_text
        }]
      }
    ) {
      items {
        id
        name
        column_values { %s }
        subitems {
          id
          name
          column_values { %s }
        }
      }
    }
  }
}`, boardID, limit, titleColumn, escape(title), columnValueFields, columnValueFields)
}

// boardsQuery lists every active board.
func boardsQuery() string {
	return `query Boards { boards(state: active, limit: 100000) { name id } }`
}
