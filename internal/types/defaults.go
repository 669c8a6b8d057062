package types

// NewRFP returns the document a new editing session starts with
func NewRFP() RFP {
	return RFP{
		Abbreviations: []Abbreviation{
			{ID: "1", Abbr: "RFP", FullName: "Request for Proposal"},
			{ID: "2", Abbr: "SOW", FullName: "Scope of Work"},
			{ID: "3", Abbr: "BFD", FullName: "Block Flow Diagram"},
			{ID: "4", Abbr: "TPD", FullName: "Tonnes Per Day"},
		},
		Feedstocks: FeedstockRows{
			FeedstockItem{ID: "temp", Description: "Temperature", Unit: "deg C", Value: "67.9"},
			FeedstockItem{ID: "pres", Description: "Pressure", Unit: "kg/cm2g", Value: "Atm"},
			FeedstockItem{ID: "flow", Description: "Mass Flowrate", Unit: "kg/h", Value: "830,100"},
			FeedstockItem{ID: "part", Description: "Particulate", Unit: "kg/h", Value: "1.8"},
			FeedstockSpacer{ID: "spc1"},
			FeedstockHeader{ID: "comp", Description: "Composition"},
			FeedstockItem{ID: "co2", Description: "CO2", Unit: "mol%", Value: "11.76", IsSubItem: true},
			FeedstockItem{ID: "o2", Description: "O2", Unit: "mol%", Value: "2.21", IsSubItem: true},
			FeedstockItem{ID: "h2o", Description: "H2O", Unit: "mol%", Value: "28.20", IsSubItem: true},
			FeedstockItem{ID: "n2", Description: "N2", Unit: "mol%", Value: "57.82", IsSubItem: true},
			FeedstockItem{ID: "so2", Description: "SO2", Unit: "molppm", Value: "0.5224", IsSubItem: true},
			FeedstockItem{ID: "co", Description: "CO", Unit: "molppm", Value: "3.0235", IsSubItem: true},
			FeedstockItem{ID: "nox", Description: "NOx", Unit: "molppm", Value: "34.9793", IsSubItem: true},
		},
		Utilities: []Utility{
			{ID: "steam", Name: "Superheated LP steam", Selected: true, Condition: "e.g., 5.5 kg/cm2g @ 250 deg C"},
			{ID: "cooling_water", Name: "Process cooling water", Selected: true, Condition: "e.g., Supply/Return 32/42 deg C"},
			{ID: "demin_water", Name: "Demineralized water", Selected: false, Condition: "e.g., BFW quality"},
			{ID: "power", Name: "Electrical power", Selected: true, Condition: "e.g., 440V / 380V / 220V, 3 Phase, 60Hz"},
		},
		EmissionRequirements: "Must comply with local environmental regulations. Specify limits for NOx, SOx, and other pollutants.",
		TechReqs: TechReqs{
			CaptureEfficiency: "90",
			ProductPurity:     "99.5",
			Lifetime:          "25",
			TurndownRatio:     "50",
		},
		Deliverables: selectAll(DeliverablesList),
		Submission: Submission{
			SubmissionFormat: "PDF",
		},
		Timeline: Timeline{
			ClarificationPeriod: "2",
			EvaluationPeriod:    "4",
		},
		CommercialTerms: selectAll(CommercialTermsList),
		Annexes: Annexes{
			A: "Detailed feed gas composition, including trace components and expected variations.",
			B: "Full design basis document including site conditions, battery limits, and integration points.",
			C: "Draft contract terms and conditions for review.",
			D: "Standard template for proposal submission format.",
		},
		QA: "All questions must be submitted in writing to the designated contact person by the Q&A deadline. Responses will be distributed to all participating bidders.",
	}
}

// Normalize fills collections that are nil after decoding a partial document,
// so every section renders (possibly empty) instead of being structurally absent.
func (d RFP) Normalize() RFP {
	if d.Abbreviations == nil {
		d.Abbreviations = []Abbreviation{}
	}
	if d.Feedstocks == nil {
		d.Feedstocks = FeedstockRows{}
	}
	if d.Utilities == nil {
		d.Utilities = []Utility{}
	}
	if d.Deliverables == nil {
		d.Deliverables = Selection{}
	}
	if d.CommercialTerms == nil {
		d.CommercialTerms = Selection{}
	}
	return d
}
