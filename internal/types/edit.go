package types

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/google/uuid"
)

// Edit errors. A failed edit always returns the input document unchanged.
var (
	ErrUnknownField    = errors.New("unknown field")
	ErrRowNotFound     = errors.New("row not found")
	ErrRowNotRemovable = errors.New("only item rows can be removed")
	ErrFieldNotOnRow   = errors.New("field does not apply to this row")
	ErrUnknownOption   = errors.New("unknown option")
	ErrUnknownRowField = errors.New("unknown row field")
)

// IDFunc returns a fresh row id that has never been handed out before
type IDFunc func() string

// NewID is the default IDFunc
func NewID() string {
	return uuid.NewString()
}

// FieldPath names a scalar text field of the document, e.g. "techReqs.lifetime"
type FieldPath string

// fieldSetters is the table of editable scalar fields. Values are stored verbatim.
var fieldSetters = map[FieldPath]func(*RFP, string){
	"companyName":          func(d *RFP, v string) { d.CompanyName = v },
	"projectName":          func(d *RFP, v string) { d.ProjectName = v },
	"co2CaptureCapacity":   func(d *RFP, v string) { d.CO2CaptureCapacity = v },
	"introduction":         func(d *RFP, v string) { d.Introduction = v },
	"scopeOfWork":          func(d *RFP, v string) { d.ScopeOfWork = v },
	"emissionRequirements": func(d *RFP, v string) { d.EmissionRequirements = v },
	"qa":                   func(d *RFP, v string) { d.QA = v },

	"techReqs.captureEfficiency": func(d *RFP, v string) { d.TechReqs.CaptureEfficiency = v },
	"techReqs.productPurity":     func(d *RFP, v string) { d.TechReqs.ProductPurity = v },
	"techReqs.lifetime":          func(d *RFP, v string) { d.TechReqs.Lifetime = v },
	"techReqs.turndownRatio":     func(d *RFP, v string) { d.TechReqs.TurndownRatio = v },

	"submission.submissionFormat": func(d *RFP, v string) { d.Submission.SubmissionFormat = v },
	"submission.contactPerson":    func(d *RFP, v string) { d.Submission.ContactPerson = v },
	"submission.contactEmail":     func(d *RFP, v string) { d.Submission.ContactEmail = v },
	"submission.phone":            func(d *RFP, v string) { d.Submission.Phone = v },
	"submission.deadline":         func(d *RFP, v string) { d.Submission.Deadline = v },

	"evaluationMetrics.technicalFeasibility": func(d *RFP, v string) { d.EvaluationMetrics.TechnicalFeasibility = v },
	"evaluationMetrics.references":           func(d *RFP, v string) { d.EvaluationMetrics.References = v },
	"evaluationMetrics.cost":                 func(d *RFP, v string) { d.EvaluationMetrics.Cost = v },
	"evaluationMetrics.scheduleAdherence":    func(d *RFP, v string) { d.EvaluationMetrics.ScheduleAdherence = v },
	"evaluationMetrics.esg":                  func(d *RFP, v string) { d.EvaluationMetrics.ESG = v },

	"timeline.submissionDeadline":  func(d *RFP, v string) { d.Timeline.SubmissionDeadline = v },
	"timeline.clarificationPeriod": func(d *RFP, v string) { d.Timeline.ClarificationPeriod = v },
	"timeline.evaluationPeriod":    func(d *RFP, v string) { d.Timeline.EvaluationPeriod = v },
	"timeline.contractAward":       func(d *RFP, v string) { d.Timeline.ContractAward = v },

	"annexes.a": func(d *RFP, v string) { d.Annexes.A = v },
	"annexes.b": func(d *RFP, v string) { d.Annexes.B = v },
	"annexes.c": func(d *RFP, v string) { d.Annexes.C = v },
	"annexes.d": func(d *RFP, v string) { d.Annexes.D = v },
}

// FieldPaths returns the editable scalar field paths, sorted
func FieldPaths() []FieldPath {
	return slices.Sorted(maps.Keys(fieldSetters))
}

// SetField replaces one scalar field
func SetField(d RFP, path FieldPath, value string) (RFP, error) {
	set, ok := fieldSetters[path]
	if !ok {
		return d, fmt.Errorf("%w: %s", ErrUnknownField, path)
	}
	set(&d, value)
	return d, nil
}

// SetBlockFlowDiagram stores an embedded image data URI; "" removes the diagram
func SetBlockFlowDiagram(d RFP, dataURI string) RFP {
	d.BlockFlowDiagram = dataURI
	return d
}

// --- Abbreviations ---

// AbbreviationField names an editable abbreviation column
type AbbreviationField string

// Abbreviation columns
const (
	AbbreviationAbbr     AbbreviationField = "abbr"
	AbbreviationFullName AbbreviationField = "fullName"
)

// AddAbbreviation appends an empty abbreviation row and returns its id
func AddAbbreviation(d RFP, newID IDFunc) (RFP, string) {
	id := newID()
	d.Abbreviations = append(slices.Clone(d.Abbreviations), Abbreviation{ID: id})
	return d, id
}

// UpdateAbbreviation replaces one column of the row with the given id
func UpdateAbbreviation(d RFP, id string, field AbbreviationField, value string) (RFP, error) {
	i := slices.IndexFunc(d.Abbreviations, func(a Abbreviation) bool { return a.ID == id })
	if i < 0 {
		return d, fmt.Errorf("abbreviation %s: %w", id, ErrRowNotFound)
	}

	row := d.Abbreviations[i]
	switch field {
	case AbbreviationAbbr:
		row.Abbr = value
	case AbbreviationFullName:
		row.FullName = value
	default:
		return d, fmt.Errorf("abbreviation %q: %w", field, ErrUnknownRowField)
	}

	d.Abbreviations = slices.Clone(d.Abbreviations)
	d.Abbreviations[i] = row
	return d, nil
}

// RemoveAbbreviation deletes the row with the given id, keeping the order of the rest
func RemoveAbbreviation(d RFP, id string) (RFP, error) {
	i := slices.IndexFunc(d.Abbreviations, func(a Abbreviation) bool { return a.ID == id })
	if i < 0 {
		return d, fmt.Errorf("abbreviation %s: %w", id, ErrRowNotFound)
	}
	d.Abbreviations = slices.Delete(slices.Clone(d.Abbreviations), i, i+1)
	return d, nil
}

// --- Feedstocks ---

// FeedstockField names an editable feedstock column
type FeedstockField string

// Feedstock columns
const (
	FeedstockDescription FeedstockField = "description"
	FeedstockUnit        FeedstockField = "unit"
	FeedstockValue       FeedstockField = "value"
)

func feedstockIndex(rows FeedstockRows, id string) int {
	return slices.IndexFunc(rows, func(r FeedstockRow) bool { return r.RowID() == id })
}

// AddFeedstockItem appends an empty item row and returns its id
func AddFeedstockItem(d RFP, newID IDFunc) (RFP, string) {
	id := newID()
	d.Feedstocks = append(slices.Clone(d.Feedstocks), FeedstockItem{ID: id})
	return d, id
}

// UpdateFeedstock replaces one column of a row. Items accept every column,
// headers only a description, spacers nothing.
func UpdateFeedstock(d RFP, id string, field FeedstockField, value string) (RFP, error) {
	i := feedstockIndex(d.Feedstocks, id)
	if i < 0 {
		return d, fmt.Errorf("feedstock %s: %w", id, ErrRowNotFound)
	}

	var updated FeedstockRow
	switch r := d.Feedstocks[i].(type) {
	case FeedstockItem:
		switch field {
		case FeedstockDescription:
			r.Description = value
		case FeedstockUnit:
			r.Unit = value
		case FeedstockValue:
			r.Value = value
		default:
			return d, fmt.Errorf("feedstock %q: %w", field, ErrUnknownRowField)
		}
		updated = r
	case FeedstockHeader:
		if field != FeedstockDescription {
			return d, fmt.Errorf("header %s %q: %w", id, field, ErrFieldNotOnRow)
		}
		r.Description = value
		updated = r
	default:
		return d, fmt.Errorf("%s %s %q: %w", r.Kind(), id, field, ErrFieldNotOnRow)
	}

	d.Feedstocks = slices.Clone(d.Feedstocks)
	d.Feedstocks[i] = updated
	return d, nil
}

// SetFeedstockSubItem toggles the indentation of an item row
func SetFeedstockSubItem(d RFP, id string, subItem bool) (RFP, error) {
	i := feedstockIndex(d.Feedstocks, id)
	if i < 0 {
		return d, fmt.Errorf("feedstock %s: %w", id, ErrRowNotFound)
	}
	item, ok := d.Feedstocks[i].(FeedstockItem)
	if !ok {
		return d, fmt.Errorf("%s %s: %w", d.Feedstocks[i].Kind(), id, ErrFieldNotOnRow)
	}
	item.IsSubItem = subItem

	d.Feedstocks = slices.Clone(d.Feedstocks)
	d.Feedstocks[i] = item
	return d, nil
}

// RemoveFeedstock deletes an item row. Headers and spacers are structural and stay.
func RemoveFeedstock(d RFP, id string) (RFP, error) {
	i := feedstockIndex(d.Feedstocks, id)
	if i < 0 {
		return d, fmt.Errorf("feedstock %s: %w", id, ErrRowNotFound)
	}
	if d.Feedstocks[i].Kind() != FeedstockKindItem {
		return d, fmt.Errorf("%s %s: %w", d.Feedstocks[i].Kind(), id, ErrRowNotRemovable)
	}
	d.Feedstocks = slices.Delete(slices.Clone(d.Feedstocks), i, i+1)
	return d, nil
}

// --- Utilities ---

func utilityIndex(utilities []Utility, id string) int {
	return slices.IndexFunc(utilities, func(u Utility) bool { return u.ID == id })
}

// AddUtility appends an unselected utility with the given name and returns its id
func AddUtility(d RFP, newID IDFunc, name string) (RFP, string) {
	id := newID()
	d.Utilities = append(slices.Clone(d.Utilities), Utility{ID: id, Name: name})
	return d, id
}

// SetUtilitySelected includes or excludes a utility from the rendered list
func SetUtilitySelected(d RFP, id string, selected bool) (RFP, error) {
	return updateUtility(d, id, func(u *Utility) { u.Selected = selected })
}

// SetUtilityCondition replaces the supply condition text of a utility
func SetUtilityCondition(d RFP, id string, condition string) (RFP, error) {
	return updateUtility(d, id, func(u *Utility) { u.Condition = UtilityCondition(condition) })
}

func updateUtility(d RFP, id string, change func(*Utility)) (RFP, error) {
	i := utilityIndex(d.Utilities, id)
	if i < 0 {
		return d, fmt.Errorf("utility %s: %w", id, ErrRowNotFound)
	}
	d.Utilities = slices.Clone(d.Utilities)
	change(&d.Utilities[i])
	return d, nil
}

// RemoveUtility deletes the utility with the given id
func RemoveUtility(d RFP, id string) (RFP, error) {
	i := utilityIndex(d.Utilities, id)
	if i < 0 {
		return d, fmt.Errorf("utility %s: %w", id, ErrRowNotFound)
	}
	d.Utilities = slices.Delete(slices.Clone(d.Utilities), i, i+1)
	return d, nil
}

// --- Selections ---

// SetDeliverable selects or deselects a canonical deliverable
func SetDeliverable(d RFP, label string, selected bool) (RFP, error) {
	s, err := setOption(d.Deliverables, DeliverablesList, label, selected)
	if err != nil {
		return d, fmt.Errorf("deliverable: %w", err)
	}
	d.Deliverables = s
	return d, nil
}

// SetCommercialTerm selects or deselects a canonical commercial term
func SetCommercialTerm(d RFP, label string, selected bool) (RFP, error) {
	s, err := setOption(d.CommercialTerms, CommercialTermsList, label, selected)
	if err != nil {
		return d, fmt.Errorf("commercial term: %w", err)
	}
	d.CommercialTerms = s
	return d, nil
}

func setOption(current Selection, canonical []string, label string, selected bool) (Selection, error) {
	if !slices.Contains(canonical, label) {
		return current, fmt.Errorf("%w: %q", ErrUnknownOption, label)
	}
	next := maps.Clone(current)
	if next == nil {
		next = Selection{}
	}
	next[label] = selected
	return next, nil
}
