package params

import (
	"strings"
	"time"

	"github.com/taperedworks/enquiry-tracker/constants"
	"github.com/taperedworks/enquiry-tracker/internal/catalog"
)

// Column IDs on the enquiry board's top-level items.
const (
	postCodeColumnID = "dropdown_mknfpjbt"
	titleColumnID    = "text3__1"
)

// subitemColumns maps the revision subitem's column IDs to canonical parameters.
var subitemColumns = map[string]constants.Parameter{
	"mirror_12__1": constants.Company,
	"mirror_11__1": constants.Contact,
	"mirror92__1":  constants.Surveyor,
	"mirror0__1":   constants.TargetUValue,
	"mirror12__1":  constants.TargetMinUValue,
	"mirror22__1":  constants.FallOfTapered,
	"mirror875__1": constants.TaperedInsulation,
	"mirror75__1":  constants.Decking,
	"mirror95__1":  constants.DateReceived,
	"mirror03__1":  constants.ReasonForChange,
	"mirror_1__1":  constants.Revision,
}

// uValueOverrideColumnID is mislabeled in the board schema; when populated it carries
// the real Target U-Value and overrides whatever the mapped column produced.
const uValueOverrideColumnID = "mirror034__1"

// FromCatalogItem extracts the canonical parameters from a full catalog record.
//
// Amendments are dated at processing time, so Date Received starts as now and Reason
// for Change defaults to "Amendment"; the selected revision's columns may override
// both. The most recent revision is the subitem with the greatest ID. The call is pure
// given (item, now): repeating it yields an identical Set.
func FromCatalogItem(item *catalog.Item, now time.Time) Set {
	s := New()
	s[string(constants.ReasonForChange)] = "Amendment"
	s[string(constants.DateReceived)] = now.Format("2006-01-02")

	if item == nil {
		return s
	}

	for _, cv := range item.ColumnValues {
		switch cv.ID {
		case postCodeColumnID:
			// Verbatim; postcode-area truncation applies only to free text.
			if cv.Text != "" {
				s[string(constants.PostCode)] = cv.Text
			}
		case titleColumnID:
			if v := cv.DisplayText(); v != "" {
				s[string(constants.DrawingTitle)] = v
			}
		}
	}

	sub := item.LatestSubitem()
	if sub == nil {
		return s
	}

	// The full subitem name (e.g. "16903_25.01 - A") is the drawing reference.
	if strings.Contains(sub.Name, "_") {
		s[string(constants.DrawingReference)] = sub.Name
	}

	for _, cv := range sub.ColumnValues {
		p, ok := subitemColumns[cv.ID]
		if !ok {
			continue
		}
		if v := cv.DisplayText(); v != "" {
			s[string(p)] = v
		}
	}

	// Second pass: the mislabeled column wins when populated.
	for _, cv := range sub.ColumnValues {
		if cv.ID != uValueOverrideColumnID {
			continue
		}
		if v := cv.DisplayText(); v != "" {
			s[string(constants.TargetUValue)] = v
		}
	}

	return s
}
