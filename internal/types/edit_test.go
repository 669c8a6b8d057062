package types

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequentialIDs returns an IDFunc handing out new-1, new-2, ...
func sequentialIDs() IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("new-%d", n)
	}
}

func rowIDs(rows FeedstockRows) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.RowID()
	}
	return ids
}

func TestSetField_KnownPaths(t *testing.T) {
	doc := NewRFP()

	for _, path := range FieldPaths() {
		t.Run(string(path), func(t *testing.T) {
			updated, err := SetField(doc, path, "changed")
			require.NoError(t, err)
			assert.NotEqual(t, doc, updated)
		})
	}
}

func TestSetField_UnknownPath(t *testing.T) {
	doc := NewRFP()
	updated, err := SetField(doc, "techReqs.colour", "blue")
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.Equal(t, doc, updated)
}

func TestSetField_DoesNotMutateInput(t *testing.T) {
	doc := NewRFP()
	updated, err := SetField(doc, "timeline.evaluationPeriod", "6")
	require.NoError(t, err)

	assert.Equal(t, "4", doc.Timeline.EvaluationPeriod)
	assert.Equal(t, "6", updated.Timeline.EvaluationPeriod)
}

func TestAbbreviations_AddRemoveRoundTrip(t *testing.T) {
	doc := NewRFP()

	added, id := AddAbbreviation(doc, sequentialIDs())
	require.Len(t, added.Abbreviations, 5)
	assert.Equal(t, "new-1", id)
	assert.Equal(t, Abbreviation{ID: "new-1"}, added.Abbreviations[4])
	assert.Len(t, doc.Abbreviations, 4, "input must not change")

	removed, err := RemoveAbbreviation(added, id)
	require.NoError(t, err)
	assert.Equal(t, doc.Abbreviations, removed.Abbreviations)
}

func TestUpdateAbbreviation_KeepsIDAndPosition(t *testing.T) {
	doc := NewRFP()

	updated, err := UpdateAbbreviation(doc, "2", AbbreviationFullName, "Statement of Work")
	require.NoError(t, err)

	assert.Equal(t, Abbreviation{ID: "2", Abbr: "SOW", FullName: "Statement of Work"}, updated.Abbreviations[1])
	assert.Equal(t, "Scope of Work", doc.Abbreviations[1].FullName)
	for i := range doc.Abbreviations {
		assert.Equal(t, doc.Abbreviations[i].ID, updated.Abbreviations[i].ID)
	}
}

func TestUpdateAbbreviation_Errors(t *testing.T) {
	doc := NewRFP()

	_, err := UpdateAbbreviation(doc, "missing", AbbreviationAbbr, "X")
	assert.ErrorIs(t, err, ErrRowNotFound)

	_, err = UpdateAbbreviation(doc, "1", "colour", "X")
	assert.ErrorIs(t, err, ErrUnknownRowField)
}

func TestRemoveAbbreviation_PreservesOrder(t *testing.T) {
	doc := NewRFP()

	updated, err := RemoveAbbreviation(doc, "2")
	require.NoError(t, err)

	var ids []string
	for _, a := range updated.Abbreviations {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"1", "3", "4"}, ids)
}

func TestFeedstocks_AddRemoveRoundTrip(t *testing.T) {
	doc := NewRFP()

	added, id := AddFeedstockItem(doc, sequentialIDs())
	require.Len(t, added.Feedstocks, len(doc.Feedstocks)+1)
	assert.Equal(t, FeedstockItem{ID: id}, added.Feedstocks[len(added.Feedstocks)-1])

	removed, err := RemoveFeedstock(added, id)
	require.NoError(t, err)
	assert.Equal(t, rowIDs(doc.Feedstocks), rowIDs(removed.Feedstocks))
	assert.Equal(t, doc.Feedstocks, removed.Feedstocks)
}

func TestRemoveFeedstock_OnlyItems(t *testing.T) {
	doc := NewRFP()

	tests := []struct {
		id      string
		wantErr error
	}{
		{id: "spc1", wantErr: ErrRowNotRemovable},
		{id: "comp", wantErr: ErrRowNotRemovable},
		{id: "missing", wantErr: ErrRowNotFound},
		{id: "o2", wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			updated, err := RemoveFeedstock(doc, tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, doc, updated)
				return
			}
			require.NoError(t, err)
			assert.NotContains(t, rowIDs(updated.Feedstocks), tt.id)
		})
	}
}

func TestUpdateFeedstock(t *testing.T) {
	doc := NewRFP()

	updated, err := UpdateFeedstock(doc, "temp", FeedstockValue, "70.1")
	require.NoError(t, err)
	assert.Equal(t, FeedstockItem{ID: "temp", Description: "Temperature", Unit: "deg C", Value: "70.1"}, updated.Feedstocks[0])
	assert.Equal(t, rowIDs(doc.Feedstocks), rowIDs(updated.Feedstocks))

	updated, err = UpdateFeedstock(doc, "comp", FeedstockDescription, "Dry Composition")
	require.NoError(t, err)
	assert.Equal(t, FeedstockHeader{ID: "comp", Description: "Dry Composition"}, updated.Feedstocks[5])

	_, err = UpdateFeedstock(doc, "comp", FeedstockUnit, "mol%")
	assert.ErrorIs(t, err, ErrFieldNotOnRow)

	_, err = UpdateFeedstock(doc, "spc1", FeedstockDescription, "x")
	assert.ErrorIs(t, err, ErrFieldNotOnRow)

	_, err = UpdateFeedstock(doc, "temp", "density", "x")
	assert.ErrorIs(t, err, ErrUnknownRowField)
}

func TestSetFeedstockSubItem(t *testing.T) {
	doc := NewRFP()

	updated, err := SetFeedstockSubItem(doc, "temp", true)
	require.NoError(t, err)
	assert.True(t, updated.Feedstocks[0].(FeedstockItem).IsSubItem)
	assert.False(t, doc.Feedstocks[0].(FeedstockItem).IsSubItem)

	_, err = SetFeedstockSubItem(doc, "comp", true)
	assert.ErrorIs(t, err, ErrFieldNotOnRow)
}

func TestUtilities_AddRemoveRoundTrip(t *testing.T) {
	doc := NewRFP()

	added, id := AddUtility(doc, sequentialIDs(), "Nitrogen")
	require.Len(t, added.Utilities, 5)
	assert.Equal(t, Utility{ID: id, Name: "Nitrogen"}, added.Utilities[4])

	removed, err := RemoveUtility(added, id)
	require.NoError(t, err)
	assert.Equal(t, doc.Utilities, removed.Utilities)
}

func TestUtilities_SelectAndCondition(t *testing.T) {
	doc := NewRFP()

	updated, err := SetUtilitySelected(doc, "demin_water", true)
	require.NoError(t, err)
	assert.True(t, updated.Utilities[2].Selected)
	assert.False(t, doc.Utilities[2].Selected)

	updated, err = SetUtilityCondition(updated, "demin_water", "Conductivity < 0.2 µS/cm")
	require.NoError(t, err)
	assert.Equal(t, UtilityCondition("Conductivity < 0.2 µS/cm"), updated.Utilities[2].Condition)
	assert.Equal(t, "demin_water", updated.Utilities[2].ID)

	_, err = SetUtilitySelected(doc, "missing", true)
	assert.ErrorIs(t, err, ErrRowNotFound)
}

func TestUtilityCondition_IsPlaceholder(t *testing.T) {
	assert.True(t, UtilityCondition("e.g., BFW quality").IsPlaceholder())
	assert.False(t, UtilityCondition("BFW quality").IsPlaceholder())
	assert.False(t, UtilityCondition("").IsPlaceholder())
}

func TestSetDeliverable(t *testing.T) {
	doc := NewRFP()

	updated, err := SetDeliverable(doc, "Process Flow Diagrams (PFD)", false)
	require.NoError(t, err)
	assert.False(t, updated.Deliverables["Process Flow Diagrams (PFD)"])
	assert.True(t, doc.Deliverables["Process Flow Diagrams (PFD)"], "input map must not change")

	_, err = SetDeliverable(doc, "Something else", true)
	assert.ErrorIs(t, err, ErrUnknownOption)
}

func TestSetCommercialTerm(t *testing.T) {
	doc := NewRFP()
	doc.CommercialTerms = nil

	updated, err := SetCommercialTerm(doc, "License fee", true)
	require.NoError(t, err)
	assert.Equal(t, Selection{"License fee": true}, updated.CommercialTerms)
}

func TestSelection_FilterUsesCanonicalOrder(t *testing.T) {
	s := Selection{"B": true, "A": true}
	assert.Equal(t, []string{"A", "B"}, s.Filter([]string{"A", "B", "C"}))
	assert.Empty(t, Selection{}.Filter([]string{"A"}))
}

func TestSetBlockFlowDiagram(t *testing.T) {
	doc := NewRFP()
	updated := SetBlockFlowDiagram(doc, "data:image/png;base64,AAAA")
	assert.Equal(t, "data:image/png;base64,AAAA", updated.BlockFlowDiagram)
	assert.Empty(t, SetBlockFlowDiagram(updated, "").BlockFlowDiagram)
}
