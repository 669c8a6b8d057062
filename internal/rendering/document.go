package rendering

import (
	"html/template"
	"strings"

	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/types"
)

// Fixed captions shared by both views
const (
	FeedstockNote   = "Note: Licensor shall provide the feedstock contamintants limitations of CO2 capturing unit."
	NoUtilitiesText = "No specific utilities selected."
	utilitiesIntro  = "The design of the unit shall be based on available utilities and off-sites. All utilities, off-sites, and their properties and battery limit specifications are described in the design basis. The following utilities will be available:"
	formattingText  = "Proposals shall be submitted in two separate parts: a technical proposal and a commercial proposal."
	commercialIntro = "Commercial Proposal will consist of the following as a minimum:"
)

// Heading is a numbered section or subsection title
type Heading struct {
	Number string
	Title  string
}

// Text returns the heading as displayed, e.g. "5.1. Deliverables"
func (h Heading) Text() string {
	return h.Number + ". " + h.Title
}

// LabeledValue is one "Label: value" line
type LabeledValue struct {
	Label string
	Value string
}

// Document is the fully resolved content of an RFP. Both views render the same
// Document, so they can only differ in presentation.
type Document struct {
	Title         TitleBlock
	Introduction  NarrativeSection
	Abbreviations *AbbreviationsSection // nil when there are no abbreviations
	Scope         ScopeSection
	Design        ListSection
	Proposal      ProposalSection
	Footer        string
}

// TitleBlock is the document header
type TitleBlock struct {
	Kicker        string
	ProjectName   string
	IssuedBy      string
	CapacityLabel string
	Capacity      string
}

// NarrativeSection is a heading followed by free text
type NarrativeSection struct {
	Heading Heading
	Text    string
}

// AbbreviationsSection is the abbreviations table
type AbbreviationsSection struct {
	Heading Heading
	Rows    []types.Abbreviation
}

// ScopeSection is the scope of work with feed gas, utilities and emissions
type ScopeSection struct {
	Heading          Heading
	Text             string
	Diagram          *Diagram
	FeedHeading      string
	FeedRows         []FeedLine
	FeedNote         string
	UtilitiesHeading string
	UtilitiesIntro   string
	Utilities        []LabeledValue
	UtilitiesEmpty   string // set only when no utility is selected
	EmissionHeading  string
	Emission         string
}

// Diagram is the optional block flow diagram image
type Diagram struct {
	Heading string
	Src     template.URL
	Alt     string
}

// FeedLine is one rendered feed gas table row
type FeedLine struct {
	Kind        types.FeedstockKind
	Description string
	Unit        string
	Value       string
	Indent      bool
}

// IsSpacer reports whether the line is a blank separator
func (l FeedLine) IsSpacer() bool { return l.Kind == types.FeedstockKindSpacer }

// IsHeader reports whether the line is a group label
func (l FeedLine) IsHeader() bool { return l.Kind == types.FeedstockKindHeader }

// ListSection is a heading followed by label/value lines
type ListSection struct {
	Heading Heading
	Items   []LabeledValue
}

// ProposalSection is section 5 with its five subsections
type ProposalSection struct {
	Heading         Heading
	Deliverables    BulletSection
	Submission      SubmissionSection
	Timeline        ListSection
	CommercialTerms BulletSection
	Annexes         AnnexesSection
}

// BulletSection is a heading, an optional lead-in and a bullet list
type BulletSection struct {
	Heading Heading
	Intro   string
	Items   []string
}

// SubmissionSection holds submission instructions and evaluation metrics
type SubmissionSection struct {
	Heading             Heading
	InstructionsHeading string
	Instructions        []LabeledValue
	FormattingHeading   string
	Formatting          string
	MetricsHeading      string
	Metrics             []Metric
}

// Metric is one evaluation criterion with the user's optional notes
type Metric struct {
	Title  string
	Points []string
	Detail string // empty when the user entered nothing
}

// AnnexesSection lists the annexes and the Q&A process
type AnnexesSection struct {
	Heading Heading
	Annexes []LabeledValue
	QATitle string
	QA      string
}

// BuildDocument resolves every fallback, filter and date format of the document.
// It never fails: missing data is replaced by fallback text.
func BuildDocument(doc types.RFP) *Document {
	return &Document{
		Title: TitleBlock{
			Kicker:        "Request for Proposal (RFP)",
			ProjectName:   doc.ProjectName,
			IssuedBy:      "Issued by: " + doc.CompanyName,
			CapacityLabel: "CO₂ Capture Capacity Target:",
			Capacity:      withUnit(doc.CO2CaptureCapacity, "TPD"),
		},
		Introduction: NarrativeSection{
			Heading: Heading{Number: "1", Title: "Introduction"},
			Text:    orFallback(doc.Introduction, FallbackNotProvided),
		},
		Abbreviations: buildAbbreviations(doc.Abbreviations),
		Scope:         buildScope(doc),
		Design: ListSection{
			Heading: Heading{Number: "4", Title: "Design Requirements"},
			Items: []LabeledValue{
				{Label: "Min. CO₂ Capture Efficiency:", Value: withUnit(doc.TechReqs.CaptureEfficiency, "%")},
				{Label: "Min. CO₂ Product Purity:", Value: withUnit(doc.TechReqs.ProductPurity, "%")},
				{Label: "Plant Operational Lifetime:", Value: withUnit(doc.TechReqs.Lifetime, "years")},
				{Label: "Flexibility (Turndown Ratio):", Value: withUnit(doc.TechReqs.TurndownRatio, "%")},
			},
		},
		Proposal: buildProposal(doc),
		Footer:   "End of Document",
	}
}

func buildAbbreviations(rows []types.Abbreviation) *AbbreviationsSection {
	if len(rows) == 0 {
		return nil
	}
	return &AbbreviationsSection{
		Heading: Heading{Number: "2", Title: "Abbreviations"},
		Rows:    rows,
	}
}

func buildScope(doc types.RFP) ScopeSection {
	s := ScopeSection{
		Heading:          Heading{Number: "3", Title: "Scope of Work (SOW)"},
		Text:             orFallback(doc.ScopeOfWork, FallbackNotProvided),
		FeedHeading:      "Feed Gas Composition",
		FeedNote:         FeedstockNote,
		UtilitiesHeading: "Utility Supply Condition",
		UtilitiesIntro:   utilitiesIntro,
		EmissionHeading:  "Emission and Waste Treatment Requirements",
		Emission:         orFallback(doc.EmissionRequirements, FallbackNotProvided),
	}

	if src, ok := diagramSource(doc.BlockFlowDiagram); ok {
		s.Diagram = &Diagram{Heading: "Block Flow Diagram", Src: src, Alt: "Block Flow Diagram"}
	}

	s.FeedRows = make([]FeedLine, 0, len(doc.Feedstocks))
	for _, row := range doc.Feedstocks {
		switch r := row.(type) {
		case types.FeedstockItem:
			s.FeedRows = append(s.FeedRows, FeedLine{Kind: types.FeedstockKindItem, Description: r.Description, Unit: r.Unit, Value: r.Value, Indent: r.IsSubItem})
		case types.FeedstockHeader:
			s.FeedRows = append(s.FeedRows, FeedLine{Kind: types.FeedstockKindHeader, Description: r.Description})
		case types.FeedstockSpacer:
			s.FeedRows = append(s.FeedRows, FeedLine{Kind: types.FeedstockKindSpacer})
		}
	}

	for _, u := range doc.Utilities {
		if u.Selected {
			s.Utilities = append(s.Utilities, LabeledValue{Label: u.Name + ":", Value: string(u.Condition)})
		}
	}
	if len(s.Utilities) == 0 {
		s.UtilitiesEmpty = NoUtilitiesText
	}

	return s
}

func buildProposal(doc types.RFP) ProposalSection {
	sub := doc.Submission
	contact := orFallback(sub.ContactPerson, FallbackNotSpecified) +
		" (" + orFallback(sub.ContactEmail, FallbackNA) + ", " + orFallback(sub.Phone, FallbackNA) + ")"

	metrics := make([]Metric, 0, len(types.EvaluationCriteria))
	for _, c := range types.EvaluationCriteria {
		m := Metric{Title: c.Title, Points: c.Points}
		if detail := doc.EvaluationMetrics.Get(c.Key); strings.TrimSpace(detail) != "" {
			m.Detail = detail
		}
		metrics = append(metrics, m)
	}

	annexes := make([]LabeledValue, 0, len(types.AnnexSlots))
	for _, slot := range types.AnnexSlots {
		annexes = append(annexes, LabeledValue{
			Label: types.AnnexTitles[slot],
			Value: orFallback(doc.Annexes.Get(slot), FallbackNotProvided),
		})
	}

	return ProposalSection{
		Heading: Heading{Number: "5", Title: "Proposal Requirements"},
		Deliverables: BulletSection{
			Heading: Heading{Number: "5.1", Title: "Deliverables"},
			Items:   doc.Deliverables.Filter(types.DeliverablesList),
		},
		Submission: SubmissionSection{
			Heading:             Heading{Number: "5.2", Title: "Submission & Evaluation"},
			InstructionsHeading: "Submission Instructions",
			Instructions: []LabeledValue{
				{Label: "Format:", Value: orFallback(sub.SubmissionFormat, FallbackNotSpecified)},
				{Label: "Contact:", Value: contact},
				{Label: "Deadline:", Value: FormatDateTime(sub.Deadline)},
			},
			FormattingHeading: "Proposal Formatting",
			Formatting:        formattingText,
			MetricsHeading:    "Evaluation Metrics",
			Metrics:           metrics,
		},
		Timeline: ListSection{
			Heading: Heading{Number: "5.3", Title: "Project Timeline & Milestones"},
			Items: []LabeledValue{
				{Label: "Proposal Submission Deadline:", Value: FormatDateOnly(doc.Timeline.SubmissionDeadline)},
				{Label: "Final Selection & Contract Award:", Value: FormatDateOnly(doc.Timeline.ContractAward)},
				{Label: "Technical Clarification Period:", Value: withUnit(doc.Timeline.ClarificationPeriod, "weeks")},
				{Label: "Evaluation & Shortlisting:", Value: withUnit(doc.Timeline.EvaluationPeriod, "weeks")},
			},
		},
		CommercialTerms: BulletSection{
			Heading: Heading{Number: "5.4", Title: "Commercial Terms"},
			Intro:   commercialIntro,
			Items:   doc.CommercialTerms.Filter(types.CommercialTermsList),
		},
		Annexes: AnnexesSection{
			Heading: Heading{Number: "5.5", Title: "Annexes & Q&A"},
			Annexes: annexes,
			QATitle: "Q&A Process",
			QA:      orFallback(doc.QA, FallbackNotProvided),
		},
	}
}

// diagramPrefixes are the embedded image types a diagram may use
var diagramPrefixes = []string{
	"data:image/png;base64,",
	"data:image/jpeg;base64,",
	"data:image/jpg;base64,",
	"data:image/gif;base64,",
}

// diagramSource trusts the diagram as an image URL only when it is an inline
// raster image; anything else is treated as absent.
func diagramSource(value string) (template.URL, bool) {
	for _, prefix := range diagramPrefixes {
		if strings.HasPrefix(value, prefix) && len(value) > len(prefix) {
			return template.URL(value), true //nolint:gosec // restricted to base64 image data URIs
		}
	}
	return "", false
}
