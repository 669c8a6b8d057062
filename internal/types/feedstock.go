package types

import (
	"encoding/json"
	"fmt"
)

// FeedstockKind is the discriminant of a feed gas table row
type FeedstockKind string

const (
	// FeedstockKindItem is a data row with description, unit and value
	FeedstockKindItem FeedstockKind = "item"
	// FeedstockKindHeader is a bold label spanning all columns
	FeedstockKindHeader FeedstockKind = "header"
	// FeedstockKindSpacer is a blank visual break spanning all columns
	FeedstockKindSpacer FeedstockKind = "spacer"
)

// FeedstockRow is one row of the feed gas composition table.
// The concrete type is one of FeedstockItem, FeedstockHeader or FeedstockSpacer.
type FeedstockRow interface {
	RowID() string
	Kind() FeedstockKind
}

// FeedstockItem is a measured property of the feed gas
type FeedstockItem struct {
	ID          string
	Description string
	Unit        string
	Value       string
	IsSubItem   bool // indents the row under the preceding header
}

// FeedstockHeader groups the items that follow it
type FeedstockHeader struct {
	ID          string
	Description string
}

// FeedstockSpacer separates groups of rows
type FeedstockSpacer struct {
	ID string
}

func (r FeedstockItem) RowID() string       { return r.ID }
func (r FeedstockItem) Kind() FeedstockKind { return FeedstockKindItem }

func (r FeedstockHeader) RowID() string       { return r.ID }
func (r FeedstockHeader) Kind() FeedstockKind { return FeedstockKindHeader }

func (r FeedstockSpacer) RowID() string       { return r.ID }
func (r FeedstockSpacer) Kind() FeedstockKind { return FeedstockKindSpacer }

// FeedstockRows is the ordered feed gas table
type FeedstockRows []FeedstockRow

// feedstockWire is the flat JSON shape shared with documents exported by the web editor
type feedstockWire struct {
	ID          string        `json:"id"`
	Description string        `json:"description"`
	Unit        string        `json:"unit"`
	Value       string        `json:"value"`
	Type        FeedstockKind `json:"type"`
	IsSubItem   bool          `json:"isSubItem,omitempty"`
}

// MarshalJSON encodes the rows with a "type" discriminant
func (rows FeedstockRows) MarshalJSON() ([]byte, error) {
	wire := make([]feedstockWire, 0, len(rows))
	for _, row := range rows {
		switch r := row.(type) {
		case FeedstockItem:
			wire = append(wire, feedstockWire{ID: r.ID, Description: r.Description, Unit: r.Unit, Value: r.Value, Type: FeedstockKindItem, IsSubItem: r.IsSubItem})
		case FeedstockHeader:
			wire = append(wire, feedstockWire{ID: r.ID, Description: r.Description, Type: FeedstockKindHeader})
		case FeedstockSpacer:
			wire = append(wire, feedstockWire{ID: r.ID, Type: FeedstockKindSpacer})
		default:
			return nil, fmt.Errorf("unsupported feedstock row type %T", row)
		}
	}
	return json.Marshal(wire)
}

// UnmarshalJSON decodes rows, dropping fields that do not apply to a row's kind.
// A missing type is treated as an item.
func (rows *FeedstockRows) UnmarshalJSON(data []byte) error {
	var wire []feedstockWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	out := make(FeedstockRows, 0, len(wire))
	for i, w := range wire {
		switch w.Type {
		case FeedstockKindItem, "":
			out = append(out, FeedstockItem{ID: w.ID, Description: w.Description, Unit: w.Unit, Value: w.Value, IsSubItem: w.IsSubItem})
		case FeedstockKindHeader:
			out = append(out, FeedstockHeader{ID: w.ID, Description: w.Description})
		case FeedstockKindSpacer:
			out = append(out, FeedstockSpacer{ID: w.ID})
		default:
			return fmt.Errorf("feedstock row %d: unknown type %q", i, w.Type)
		}
	}
	*rows = out
	return nil
}
