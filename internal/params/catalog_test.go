package params

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taperedworks/enquiry-tracker/constants"
	"github.com/taperedworks/enquiry-tracker/internal/catalog"
)

func mirror(id, displayValue string) catalog.ColumnValue {
	return catalog.ColumnValue{ID: id, TypeName: "MirrorValue", DisplayValue: displayValue}
}

func amendmentItem() *catalog.Item {
	return &catalog.Item{
		ID:   "101",
		Name: "Riverside School",
		ColumnValues: []catalog.ColumnValue{
			{ID: "dropdown_mknfpjbt", Text: "SW1A 1AA"},
			{ID: "text3__1", Text: "Riverside School"},
		},
		Subitems: []catalog.Item{
			{
				ID:   "9",
				Name: "16903_25.01",
				ColumnValues: []catalog.ColumnValue{
					mirror("mirror_1__1", "-"),
				},
			},
			{
				ID:   "10",
				Name: "16903_25.01 - A",
				ColumnValues: []catalog.ColumnValue{
					mirror("mirror_12__1", "Acme Roofing"),
					mirror("mirror_11__1", "J. Smith"),
					mirror("mirror0__1", "0.18"),
					mirror("mirror22__1", "1:60"),
					mirror("mirror875__1", "TissueFaced PIR"),
					mirror("mirror75__1", "Metal"),
					mirror("mirror_1__1", "A"),
				},
			},
		},
	}
}

func TestFromCatalogItem(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	set := FromCatalogItem(amendmentItem(), now)

	assert.Equal(t, "SW1A 1AA", set[string(constants.PostCode)], "catalog post code is kept verbatim")
	assert.Equal(t, "Riverside School", set[string(constants.DrawingTitle)])
	assert.Equal(t, "Amendment", set[string(constants.ReasonForChange)])
	assert.Equal(t, "2025-03-14", set[string(constants.DateReceived)])

	// Latest revision (greatest subitem ID) supplies the detail.
	assert.Equal(t, "16903_25.01 - A", set[string(constants.DrawingReference)])
	assert.Equal(t, "A", set[string(constants.Revision)])
	assert.Equal(t, "Acme Roofing", set[string(constants.Company)])
	assert.Equal(t, "J. Smith", set[string(constants.Contact)])
	assert.Equal(t, "0.18", set[string(constants.TargetUValue)])
	assert.Equal(t, "1:60", set[string(constants.FallOfTapered)])
	assert.Equal(t, "TissueFaced PIR", set[string(constants.TaperedInsulation)])
	assert.Equal(t, "Metal", set[string(constants.Decking)])

	assert.Equal(t, constants.NotFound, set[string(constants.Surveyor)])
	assert.Equal(t, constants.NotFound, set[string(constants.TargetMinUValue)])
}

func TestFromCatalogItemUValueOverride(t *testing.T) {
	item := amendmentItem()
	sub := &item.Subitems[1]
	sub.ColumnValues = append(sub.ColumnValues, mirror("mirror034__1", "0.15"))

	set := FromCatalogItem(item, time.Now())
	assert.Equal(t, "0.15", set[string(constants.TargetUValue)], "mislabeled column overrides the mapped one")
}

func TestFromCatalogItemNumericSubitemOrder(t *testing.T) {
	item := &catalog.Item{
		ID: "1",
		Subitems: []catalog.Item{
			{ID: "100", Name: "16903_25.01 - B", ColumnValues: []catalog.ColumnValue{mirror("mirror_1__1", "B")}},
			{ID: "99", Name: "16903_25.01 - A", ColumnValues: []catalog.ColumnValue{mirror("mirror_1__1", "A")}},
		},
	}
	set := FromCatalogItem(item, time.Now())
	assert.Equal(t, "B", set[string(constants.Revision)], "IDs compare numerically, not lexically")
}

func TestFromCatalogItemSubitemNameWithoutUnderscore(t *testing.T) {
	item := &catalog.Item{
		ID:       "1",
		Subitems: []catalog.Item{{ID: "5", Name: "Subitem"}},
	}
	set := FromCatalogItem(item, time.Now())
	assert.Equal(t, constants.NotFound, set[string(constants.DrawingReference)])
}

func TestFromCatalogItemNil(t *testing.T) {
	now := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	set := FromCatalogItem(nil, now)

	require.Len(t, set, len(constants.ParameterNames))
	assert.Equal(t, "Amendment", set[string(constants.ReasonForChange)])
	assert.Equal(t, "2025-03-14", set[string(constants.DateReceived)])
	assert.Equal(t, constants.NotFound, set[string(constants.PostCode)])
}

func TestFromCatalogItemIdempotent(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	item := amendmentItem()
	assert.Equal(t, FromCatalogItem(item, now), FromCatalogItem(item, now))
}

func TestFromCatalogItemAlwaysFourteenKeys(t *testing.T) {
	for _, item := range []*catalog.Item{nil, {}, amendmentItem()} {
		set := FromCatalogItem(item, time.Now())
		assert.Len(t, set, len(constants.ParameterNames))
		for _, p := range constants.ParameterNames {
			_, ok := set[string(p)]
			assert.True(t, ok, "missing key %q", p)
		}
	}
}
