package types

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// FieldUpdateRequest sets one scalar field of a document
type FieldUpdateRequest struct {
	Field FieldPath `json:"field" validate:"required"`
	Value string    `json:"value"`
}

// RowFieldUpdateRequest sets one column of an abbreviation or feedstock row
type RowFieldUpdateRequest struct {
	Field string `json:"field" validate:"required"`
	Value string `json:"value"`
}

// FeedstockUpdateRequest changes a feedstock row; exactly one of Field or SubItem is used
type FeedstockUpdateRequest struct {
	Field   string `json:"field,omitempty" validate:"required_without=SubItem"`
	Value   string `json:"value"`
	SubItem *bool  `json:"isSubItem,omitempty" validate:"required_without=Field"`
}

// UtilityCreateRequest adds a utility line
type UtilityCreateRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// UtilityUpdateRequest changes a utility; nil fields are left untouched
type UtilityUpdateRequest struct {
	Selected  *bool   `json:"selected,omitempty"`
	Condition *string `json:"condition,omitempty" validate:"omitempty,max=500"`
}

// OptionUpdateRequest selects or deselects a deliverable or commercial term by label
type OptionUpdateRequest struct {
	Label    string `json:"label" validate:"required"`
	Selected bool   `json:"selected"`
}

// Validate validates the FieldUpdateRequest using the validator.
func (r *FieldUpdateRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the RowFieldUpdateRequest using the validator.
func (r *RowFieldUpdateRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the FeedstockUpdateRequest using the validator.
func (r *FeedstockUpdateRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the UtilityCreateRequest using the validator.
func (r *UtilityCreateRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the OptionUpdateRequest using the validator.
func (r *OptionUpdateRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the UtilityUpdateRequest using the validator.
func (r *UtilityUpdateRequest) Validate() error {
	return validate.Struct(r)
}
