package catalog

import "strconv"

// mirrorTypeName tags computed (rolled-up) columns; their rendered value arrives in
// display_value rather than text.
const mirrorTypeName = "MirrorValue"

// absentMarker is the literal string the remote API renders for missing values.
const absentMarker = "None"

// ColumnValue is one typed field entry on a catalog item.
type ColumnValue struct {
	ID           string `json:"id"`
	Text         string `json:"text"`
	TypeName     string `json:"__typename"`
	DisplayValue string `json:"display_value"`
}

// DisplayText resolves the rendered value of a column: the display_value of a mirror
// column wins when non-empty, otherwise the plain text. The remote absent-marker
// resolves to "". Every extraction path goes through this one rule.
func (c ColumnValue) DisplayText() string {
	if c.TypeName == mirrorTypeName && c.DisplayValue != "" && c.DisplayValue != absentMarker {
		return c.DisplayValue
	}
	if c.Text == absentMarker {
		return ""
	}
	return c.Text
}

// Item is a remote catalog record. Subitems are the item's revisions, each carrying
// its own column values.
type Item struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	State        string        `json:"state"`
	ColumnValues []ColumnValue `json:"column_values"`
	Subitems     []Item        `json:"subitems"`
}

// Title resolves the item's display title: the first column with a non-empty rendered
// value in traversal order, falling back to the item's internal name.
func (it *Item) Title() string {
	for _, cv := range it.ColumnValues {
		if v := cv.DisplayText(); v != "" {
			return v
		}
	}
	return it.Name
}

// LatestSubitem returns the subitem with the greatest ID, taken as the most recent
// revision. IDs compare numerically when both parse as integers.
// TODO: confirm against live boards that subitem IDs are assigned monotonically.
func (it *Item) LatestSubitem() *Item {
	if len(it.Subitems) == 0 {
		return nil
	}
	latest := &it.Subitems[0]
	for i := 1; i < len(it.Subitems); i++ {
		if idLess(latest.ID, it.Subitems[i].ID) {
			latest = &it.Subitems[i]
		}
	}
	return latest
}

func idLess(a, b string) bool {
	ai, aErr := strconv.ParseInt(a, 10, 64)
	bi, bErr := strconv.ParseInt(b, 10, 64)
	if aErr == nil && bErr == nil {
		return ai < bi
	}
	return a < b
}
