package params

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taperedworks/enquiry-tracker/constants"
)

const sampleAnalysis = `Here are the extracted parameters:

Post Code: SW1A 1AA, London
Drawing Reference: 16903_25.01 - A
Drawing Title: Riverside School
Revision: A
Date Received: 2025-03-14
Company: **Acme Roofing Ltd
Contact: J. Smith
Reason for Change: (Amendment)
Surveyor: Not found
Target U-Value: 0.18 W/m2K
Target Min U-Value: Not found
Fall of Tapered: 1:60
Tapered Insulation: TT47 board
Decking: Metal deck`

func TestFromFreeText(t *testing.T) {
	set := FromFreeText(sampleAnalysis)

	assert.Equal(t, "SW", set[string(constants.PostCode)], "postcode reduces to the area letters")
	assert.Equal(t, "16903_25.01 - A", set[string(constants.DrawingReference)])
	assert.Equal(t, "Riverside School", set[string(constants.DrawingTitle)])
	assert.Equal(t, "A", set[string(constants.Revision)])
	assert.Equal(t, "2025-03-14", set[string(constants.DateReceived)])
	assert.Equal(t, "Acme Roofing Ltd", set[string(constants.Company)], "leading markdown emphasis is stripped")
	assert.Equal(t, "J. Smith", set[string(constants.Contact)])
	assert.Equal(t, "(Amendment)", set[string(constants.ReasonForChange)])
	assert.Equal(t, constants.NotFound, set[string(constants.Surveyor)])
	assert.Equal(t, "0.18 W/m2K", set[string(constants.TargetUValue)])
	assert.Equal(t, "1:60", set[string(constants.FallOfTapered)])
	assert.Equal(t, "TissueFaced PIR", set[string(constants.TaperedInsulation)], "product code folds into its category")
	assert.Equal(t, "Metal deck", set[string(constants.Decking)])
}

func TestFromFreeTextEmptyInput(t *testing.T) {
	set := FromFreeText("")

	assert.Len(t, set, len(constants.ParameterNames))
	// An unmatched postcode sentinel normalizes further to "Not provided".
	assert.Equal(t, constants.NotProvided, set[string(constants.PostCode)])
	assert.Equal(t, constants.NotFound, set[string(constants.Company)])
	assert.Equal(t, constants.NotFound, set[string(constants.Decking)])
}

func TestFromFreeTextCaseInsensitiveLabels(t *testing.T) {
	set := FromFreeText("drawing title: Oak Lane Depot\nCOMPANY: Acme")
	assert.Equal(t, "Oak Lane Depot", set[string(constants.DrawingTitle)])
	assert.Equal(t, "Acme", set[string(constants.Company)])
}

func TestMapInsulationCategory(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"TT47", "TissueFaced PIR"},
		{"tt47 board", "TissueFaced PIR"},
		{"Powerdeck U", "TorchOn PIR"},
		{"TT44 torched felt", "TorchOn PIR"},
		{"Foil faced", "FoilFaced PIR"},
		{"Mineral wool slab", "ROCKWOOL HardRock MultiFix DD"},
		{"Cellular Glass", "Foamglas T3+"},
		{"Expanded Polystrene", "EPS"},
		{"Extruded Polystyrene", "XPS"},
		{"Some Unknown Board", "Some Unknown Board"},
		{"", ""},
		{constants.NotFound, constants.NotFound},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MapInsulationCategory(tt.in), "MapInsulationCategory(%q)", tt.in)
	}
}

func TestNormalizePostCode(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"SW1A 1AA", "SW"},
		{"ec2a 4bx", "EC"},
		{"M1 7ED", "M"},
		{"of Project Location: EC2A 4BX", "EC"},
		{"Not provided", constants.NotProvided},
		{"not found", constants.NotProvided},
		{"None", constants.NotProvided},
		{"somewhere rural", "somewhere rural"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePostCode(tt.in), "NormalizePostCode(%q)", tt.in)
	}
}
