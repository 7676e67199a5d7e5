package constants

// InsulationCategory groups known tapered insulation product codes and trade names
// under the category header used on the enquiry board. Table order is priority order:
// the first category containing a match wins.
type InsulationCategory struct {
	Name     string
	Products []string
}

var InsulationCategories = []InsulationCategory{
	{
		Name: "TissueFaced PIR",
		Products: []string{
			"TT47", "TR27", "Glass Tissue PIR", "Powerdeck F", "Adhered",
			"MG", "TR/MG", "FR/MG", "BauderPIR FA-TE", "Evatherm A", "Hytherm ADH",
		},
	},
	{
		Name: "TorchOn PIR",
		Products: []string{
			"TT44", "TR24", "Torched", "Powerdeck U",
			"BGM", "TR/BGM", "FR/BGM", "BauderPIR FA",
		},
	},
	{
		Name: "FoilFaced PIR",
		Products: []string{
			"TT46", "TR26", "Foil", "Powerdeck Eurodeck", "Mech Fixed",
			"ALU", "TR/ALU", "FR/ALU", "Aluminium Faced",
		},
	},
	{
		Name: "ROCKWOOL HardRock MultiFix DD",
		Products: []string{
			"Mineral wool", "Hardrock", "stonewool", "stone wool", "rock wool", "bauderrock",
		},
	},
	{
		Name:     "Foamglas T3+",
		Products: []string{"Cellular Glass", "foamed glass", "Bauderglas"},
	},
	{
		Name:     "EPS",
		Products: []string{"Expanded Polystrene"},
	},
	{
		Name:     "XPS",
		Products: []string{"Extruded Polystyrene"},
	},
}
