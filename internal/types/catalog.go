package types

// DeliverablesList is the canonical, ordered list of selectable deliverables
var DeliverablesList = []string{
	"Process Design Package (PDP)",
	"Process Flow Diagrams (PFD)",
	"Piping and Instrumentation Diagrams (P&ID)",
	"Heat & Material Balance (HMB)",
	"Utility and chemical consumption data",
	"Equipment specifications and datasheets",
}

// CommercialTermsList is the canonical, ordered list of commercial proposal items
var CommercialTermsList = []string{
	"License fee",
	"Basic Design & Engineering fee for Basic Design Package",
	"Budgetary Investment cost estimate",
	"Catalyst / Chemical type, amount and cost, if required",
	"Proprietary equipment and/or materials supply cost, delivery period, if required",
}

// CriterionKey identifies an evaluation criterion
type CriterionKey string

// Evaluation criterion keys, matching the EvaluationMetrics JSON field names
const (
	CriterionTechnicalFeasibility CriterionKey = "technicalFeasibility"
	CriterionReferences           CriterionKey = "references"
	CriterionCost                 CriterionKey = "cost"
	CriterionScheduleAdherence    CriterionKey = "scheduleAdherence"
	CriterionESG                  CriterionKey = "esg"
)

// Criterion is a fixed evaluation criterion with its non-editable description
type Criterion struct {
	Key    CriterionKey
	Title  string
	Points []string
}

// EvaluationCriteria lists the criteria in render order
var EvaluationCriteria = []Criterion{
	{
		Key:    CriterionTechnicalFeasibility,
		Title:  "Technical Feasibility",
		Points: []string{"Proven technology and operational experience", "Compliance with technical requirements"},
	},
	{
		Key:    CriterionReferences,
		Title:  "References",
		Points: []string{"List of similar projects and client testimonials"},
	},
	{
		Key:    CriterionCost,
		Title:  "Cost",
		Points: []string{"Total installed cost estimate", "Operating and maintenance cost projections"},
	},
	{
		Key:    CriterionScheduleAdherence,
		Title:  "Schedule Adherence",
		Points: []string{"Proposed project execution timeline", "Demonstrated ability to meet project milestones"},
	},
	{
		Key:    CriterionESG,
		Title:  "ESG Considerations",
		Points: []string{"Environmental impact assessment", "Social and governance policies"},
	},
}

// AnnexSlot identifies one of the four annexes
type AnnexSlot string

// Annex slots in render order
const (
	AnnexA AnnexSlot = "a"
	AnnexB AnnexSlot = "b"
	AnnexC AnnexSlot = "c"
	AnnexD AnnexSlot = "d"
)

// AnnexSlots lists the annex slots in render order
var AnnexSlots = []AnnexSlot{AnnexA, AnnexB, AnnexC, AnnexD}

// AnnexTitles holds the fixed caption of each annex
var AnnexTitles = map[AnnexSlot]string{
	AnnexA: "Annex A: Feed Gas Specifications",
	AnnexB: "Annex B: Design Basis Document",
	AnnexC: "Annex C: Sample Contract Terms",
	AnnexD: "Annex D: Proposal Submission Template",
}

// Get returns the text of an annex slot
func (a Annexes) Get(slot AnnexSlot) string {
	switch slot {
	case AnnexA:
		return a.A
	case AnnexB:
		return a.B
	case AnnexC:
		return a.C
	case AnnexD:
		return a.D
	}
	return ""
}
