package constants

// Parameter is the canonical name of one extracted design parameter.
type Parameter string

// Stable values (these exact strings appear in exports and prompts).
const (
	PostCode          Parameter = "Post Code"
	DrawingReference  Parameter = "Drawing Reference"
	DrawingTitle      Parameter = "Drawing Title"
	Revision          Parameter = "Revision"
	DateReceived      Parameter = "Date Received"
	Company           Parameter = "Company"
	Contact           Parameter = "Contact"
	ReasonForChange   Parameter = "Reason for Change"
	Surveyor          Parameter = "Surveyor"
	TargetUValue      Parameter = "Target U-Value"
	TargetMinUValue   Parameter = "Target Min U-Value"
	FallOfTapered     Parameter = "Fall of Tapered"
	TaperedInsulation Parameter = "Tapered Insulation"
	Decking           Parameter = "Decking"
)

// NotFound is the sentinel for a parameter no source could resolve.
const NotFound = "Not found"

// NotProvided is the normalized value for postcodes the sender explicitly omitted.
const NotProvided = "Not provided"

// ParameterNames lists every canonical parameter in display/export order.
var ParameterNames = []Parameter{
	PostCode,
	DrawingReference,
	DrawingTitle,
	Revision,
	DateReceived,
	Company,
	Contact,
	ReasonForChange,
	Surveyor,
	TargetUValue,
	TargetMinUValue,
	FallOfTapered,
	TaperedInsulation,
	Decking,
}

// AsStringSlice returns the canonical parameter names as plain strings.
func AsStringSlice() []string {
	result := make([]string, len(ParameterNames))
	for i, p := range ParameterNames {
		result[i] = string(p)
	}
	return result
}
