package model

// Tag labels transactions. Names are unique in practice but not
// enforced. GroupID optionally references a BudgetGroup; deleting a tag
// does not cascade to transactions that reference it.
type Tag struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Color   string `json:"color"`
	GroupID string `json:"groupId,omitempty"`
}

// TagPatch describes a partial update to a tag. GroupID is double
// pointer so a patch can distinguish "leave alone" from "clear".
type TagPatch struct {
	Name    *string
	Color   *string
	GroupID **string
}

// BudgetGroup collects tags under a spending ceiling. Deleting a group
// un-categorizes its member tags (GroupID cleared) as one logical
// operation.
type BudgetGroup struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Limit float64 `json:"limit"`
	Color string  `json:"color"`
}

// BudgetGroupPatch describes a partial update to a budget group.
type BudgetGroupPatch struct {
	Name  *string
	Limit *float64
	Color *string
}

// InvestmentType names a class of investment for portfolio grouping.
// Investments reference it by name.
type InvestmentType struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}
