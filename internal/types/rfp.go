// Package types provides type definitions for the RFP document edited and rendered by rfpgen.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// RFP is the whole request-for-proposal document. Every collection is non-nil
// after NewRFP; empty strings mean "not provided" and are resolved to fallback
// text at render time, never here.
type RFP struct {
	CompanyName          string            `json:"companyName"`
	ProjectName          string            `json:"projectName"`
	Introduction         string            `json:"introduction"`
	Abbreviations        []Abbreviation    `json:"abbreviations"`
	ScopeOfWork          string            `json:"scopeOfWork"`
	BlockFlowDiagram     string            `json:"blockFlowDiagram"`
	Feedstocks           FeedstockRows     `json:"feedstocks"`
	CO2CaptureCapacity   string            `json:"co2CaptureCapacity"`
	Utilities            []Utility         `json:"utilities"`
	EmissionRequirements string            `json:"emissionRequirements"`
	TechReqs             TechReqs          `json:"techReqs"`
	Deliverables         Selection         `json:"deliverables"`
	Submission           Submission        `json:"submission"`
	EvaluationMetrics    EvaluationMetrics `json:"evaluationMetrics"`
	Timeline             Timeline          `json:"timeline"`
	CommercialTerms      Selection         `json:"commercialTerms"`
	Annexes              Annexes           `json:"annexes"`
	QA                   string            `json:"qa"`
}

// Abbreviation is one row of the abbreviations table
type Abbreviation struct {
	ID       string `json:"id"`
	Abbr     string `json:"abbr"`
	FullName string `json:"fullName"`
}

// Utility is one utility supply line. Only selected utilities are rendered.
type Utility struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Selected  bool             `json:"selected"`
	Condition UtilityCondition `json:"condition"`
}

// UtilityCondition is the free-text supply condition of a utility
type UtilityCondition string

// placeholderPrefix marks a condition that is an example rather than an entered value
const placeholderPrefix = "e.g."

// IsPlaceholder reports whether the condition is an "e.g., ..." example.
// Editors use it to show the example as a hint; rendering ignores it.
func (c UtilityCondition) IsPlaceholder() bool {
	return strings.HasPrefix(string(c), placeholderPrefix)
}

// TechReqs holds the numeric design requirements, entered as text
type TechReqs struct {
	CaptureEfficiency string `json:"captureEfficiency"`
	ProductPurity     string `json:"productPurity"`
	Lifetime          string `json:"lifetime"`
	TurndownRatio     string `json:"turndownRatio"`
}

// Submission holds the proposal submission instructions
type Submission struct {
	SubmissionFormat string `json:"submissionFormat"`
	ContactPerson    string `json:"contactPerson"`
	ContactEmail     string `json:"contactEmail"`
	Phone            string `json:"phone"`
	Deadline         string `json:"deadline"` // date-time, e.g. 2024-03-05T09:07
}

// EvaluationMetrics holds the user's notes for each fixed evaluation criterion
type EvaluationMetrics struct {
	TechnicalFeasibility string `json:"technicalFeasibility"`
	References           string `json:"references"`
	Cost                 string `json:"cost"`
	ScheduleAdherence    string `json:"scheduleAdherence"`
	ESG                  string `json:"esg"`
}

// Get returns the note for a criterion key
func (m EvaluationMetrics) Get(key CriterionKey) string {
	switch key {
	case CriterionTechnicalFeasibility:
		return m.TechnicalFeasibility
	case CriterionReferences:
		return m.References
	case CriterionCost:
		return m.Cost
	case CriterionScheduleAdherence:
		return m.ScheduleAdherence
	case CriterionESG:
		return m.ESG
	}
	return ""
}

// Timeline holds the project milestones. Dates are date-only values (2024-03-05),
// periods are whole weeks entered as text.
type Timeline struct {
	SubmissionDeadline  string `json:"submissionDeadline"`
	ClarificationPeriod string `json:"clarificationPeriod"`
	EvaluationPeriod    string `json:"evaluationPeriod"`
	ContractAward       string `json:"contractAward"`
}

// Annexes holds the four fixed annex slots
type Annexes struct {
	A string `json:"a"`
	B string `json:"b"`
	C string `json:"c"`
	D string `json:"d"`
}

// Selection maps a canonical option label to whether it is included.
// Never range over a Selection to render it; filter the canonical list instead.
type Selection map[string]bool

// Filter returns the canonical labels that are selected, in canonical order
func (s Selection) Filter(canonical []string) []string {
	out := make([]string, 0, len(canonical))
	for _, label := range canonical {
		if s[label] {
			out = append(out, label)
		}
	}
	return out
}

func selectAll(labels []string) Selection {
	s := make(Selection, len(labels))
	for _, label := range labels {
		s[label] = true
	}
	return s
}
