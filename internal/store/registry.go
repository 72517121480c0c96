package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cinenz0/finance-tracker/internal/common"
	"github.com/cinenz0/finance-tracker/internal/model"
)

// Default settings applied on first run.
const (
	DefaultAccountName = "My Finances"
	DefaultTheme       = "dark"
)

// defaultTags seeds the registry when nothing is stored yet.
var defaultTags = []model.Tag{
	{ID: "1", Name: "Dining Out", Color: "blue"},
	{ID: "2", Name: "Rent/Mortgage", Color: "red"},
	{ID: "3", Name: "Utilities", Color: "yellow"},
	{ID: "4", Name: "Groceries", Color: "green"},
	{ID: "5", Name: "Salary", Color: "green"},
	{ID: "6", Name: "Freelance", Color: "purple"},
}

// defaultInvestmentTypes seeds the portfolio type registry.
var defaultInvestmentTypes = []model.InvestmentType{
	{ID: "1", Name: "CDB", Color: "blue"},
	{ID: "2", Name: "LCI", Color: "green"},
	{ID: "3", Name: "LCA", Color: "green"},
	{ID: "4", Name: "Stock", Color: "purple"},
	{ID: "5", Name: "FII", Color: "orange"},
	{ID: "6", Name: "Treasury", Color: "yellow"},
	{ID: "7", Name: "Crypto", Color: "gray"},
	{ID: "8", Name: "Other", Color: "default"},
}

// Registry owns tag, budget-group, and investment-type definitions,
// plus the account-level settings.
type Registry struct {
	adapter      Adapter
	tags         []model.Tag
	groups       []model.BudgetGroup
	invTypes     []model.InvestmentType
	accountName  string
	theme        string
	profileImage string
}

// OpenRegistry loads the persisted registry state, seeding defaults on
// first run.
func OpenRegistry(ctx context.Context, adapter Adapter) (*Registry, error) {
	r := &Registry{adapter: adapter}
	if err := loadList(ctx, adapter, KeyTags, &r.tags); err != nil {
		return nil, err
	}
	if err := loadList(ctx, adapter, KeyBudgetGroups, &r.groups); err != nil {
		return nil, err
	}
	if err := loadList(ctx, adapter, KeyInvestmentTypes, &r.invTypes); err != nil {
		return nil, err
	}

	if r.tags == nil {
		r.tags = append([]model.Tag(nil), defaultTags...)
	}
	if r.invTypes == nil {
		r.invTypes = append([]model.InvestmentType(nil), defaultInvestmentTypes...)
	}

	r.accountName = r.loadSetting(ctx, KeyAccountName, DefaultAccountName)
	r.theme = r.loadSetting(ctx, KeyTheme, DefaultTheme)
	r.profileImage = r.loadSetting(ctx, KeyProfileImage, "")

	return r, nil
}

func (r *Registry) loadSetting(ctx context.Context, key, fallback string) string {
	value, ok, err := r.adapter.Get(ctx, key)
	if err != nil {
		common.LogError(err, "Failed to read setting", common.Fields{"key": key})
		return fallback
	}
	if !ok {
		return fallback
	}
	return value
}

func (r *Registry) persistSetting(ctx context.Context, key, value string) {
	if err := r.adapter.Set(ctx, key, value); err != nil {
		common.LogError(err, "Failed to persist setting", common.Fields{"key": key})
	}
}

// AddTag creates a tag. Duplicate names are permitted.
func (r *Registry) AddTag(ctx context.Context, name, color, groupID string) (*model.Tag, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: tag name is required", common.ErrValidation)
	}
	tag := model.Tag{
		ID:      uuid.NewString(),
		Name:    name,
		Color:   color,
		GroupID: groupID,
	}
	r.tags = append(r.tags, tag)
	persistList(ctx, r.adapter, KeyTags, r.tags)
	return &tag, nil
}

// UpdateTag merges the patch over the existing tag.
func (r *Registry) UpdateTag(ctx context.Context, id string, patch model.TagPatch) (*model.Tag, error) {
	idx := r.tagIndex(id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: tag %s", common.ErrNotFound, id)
	}

	tag := &r.tags[idx]
	if patch.Name != nil {
		tag.Name = *patch.Name
	}
	if patch.Color != nil {
		tag.Color = *patch.Color
	}
	if patch.GroupID != nil {
		if *patch.GroupID == nil {
			tag.GroupID = ""
		} else {
			tag.GroupID = **patch.GroupID
		}
	}

	persistList(ctx, r.adapter, KeyTags, r.tags)
	result := *tag
	return &result, nil
}

// DeleteTag removes the tag by id. Transactions referencing the tag
// keep their dangling reference; display falls back to the default
// color.
func (r *Registry) DeleteTag(ctx context.Context, id string) {
	idx := r.tagIndex(id)
	if idx < 0 {
		return
	}
	r.tags = append(r.tags[:idx], r.tags[idx+1:]...)
	persistList(ctx, r.adapter, KeyTags, r.tags)
}

func (r *Registry) tagIndex(id string) int {
	for i := range r.tags {
		if r.tags[i].ID == id {
			return i
		}
	}
	return -1
}

// Tags returns a copy of the tag list.
func (r *Registry) Tags() []model.Tag {
	return append([]model.Tag(nil), r.tags...)
}

// TagByName resolves a tag reference by name or id. The second return
// value is false when the reference dangles.
func (r *Registry) TagByName(ref string) (model.Tag, bool) {
	for _, tag := range r.tags {
		if tag.Name == ref || tag.ID == ref {
			return tag, true
		}
	}
	return model.Tag{}, false
}

// parseLimit coerces a textual spending ceiling to a non-negative value.
func parseLimit(raw string) (float64, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: limit %q is not a number", common.ErrValidation, raw)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: limit %q is negative", common.ErrValidation, raw)
	}
	return d.InexactFloat64(), nil
}

// AddBudgetGroup creates a budget group with a non-negative spending
// limit.
func (r *Registry) AddBudgetGroup(ctx context.Context, name, limit, color string) (*model.BudgetGroup, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: group name is required", common.ErrValidation)
	}
	parsed, err := parseLimit(limit)
	if err != nil {
		return nil, err
	}
	group := model.BudgetGroup{
		ID:    uuid.NewString(),
		Name:  name,
		Limit: parsed,
		Color: color,
	}
	r.groups = append(r.groups, group)
	persistList(ctx, r.adapter, KeyBudgetGroups, r.groups)
	return &group, nil
}

// UpdateBudgetGroup merges the patch; a new limit is re-validated.
func (r *Registry) UpdateBudgetGroup(ctx context.Context, id string, patch model.BudgetGroupPatch) (*model.BudgetGroup, error) {
	idx := -1
	for i := range r.groups {
		if r.groups[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: budget group %s", common.ErrNotFound, id)
	}

	group := r.groups[idx]
	if patch.Name != nil {
		group.Name = *patch.Name
	}
	if patch.Limit != nil {
		if *patch.Limit < 0 {
			return nil, fmt.Errorf("%w: limit is negative", common.ErrValidation)
		}
		group.Limit = *patch.Limit
	}
	if patch.Color != nil {
		group.Color = *patch.Color
	}

	r.groups[idx] = group
	persistList(ctx, r.adapter, KeyBudgetGroups, r.groups)
	result := group
	return &result, nil
}

// DeleteBudgetGroup removes the group and un-categorizes every member
// tag as one logical operation.
func (r *Registry) DeleteBudgetGroup(ctx context.Context, id string) {
	idx := -1
	for i := range r.groups {
		if r.groups[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	r.groups = append(r.groups[:idx], r.groups[idx+1:]...)

	tagsChanged := false
	for i := range r.tags {
		if r.tags[i].GroupID == id {
			r.tags[i].GroupID = ""
			tagsChanged = true
		}
	}

	persistList(ctx, r.adapter, KeyBudgetGroups, r.groups)
	if tagsChanged {
		persistList(ctx, r.adapter, KeyTags, r.tags)
	}
}

// BudgetGroups returns a copy of the group list.
func (r *Registry) BudgetGroups() []model.BudgetGroup {
	return append([]model.BudgetGroup(nil), r.groups...)
}

// AddInvestmentType creates an investment type.
func (r *Registry) AddInvestmentType(ctx context.Context, name, color string) (*model.InvestmentType, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: type name is required", common.ErrValidation)
	}
	it := model.InvestmentType{
		ID:    uuid.NewString(),
		Name:  name,
		Color: color,
	}
	r.invTypes = append(r.invTypes, it)
	persistList(ctx, r.adapter, KeyInvestmentTypes, r.invTypes)
	return &it, nil
}

// UpdateInvestmentType replaces the name and/or color of a type.
func (r *Registry) UpdateInvestmentType(ctx context.Context, id string, name, color *string) (*model.InvestmentType, error) {
	idx := -1
	for i := range r.invTypes {
		if r.invTypes[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: investment type %s", common.ErrNotFound, id)
	}

	it := &r.invTypes[idx]
	if name != nil {
		it.Name = *name
	}
	if color != nil {
		it.Color = *color
	}

	persistList(ctx, r.adapter, KeyInvestmentTypes, r.invTypes)
	result := *it
	return &result, nil
}

// DeleteInvestmentType removes the type by id; absent ids are a no-op.
// Investments referencing the type by name keep the dangling name.
func (r *Registry) DeleteInvestmentType(ctx context.Context, id string) {
	for i := range r.invTypes {
		if r.invTypes[i].ID == id {
			r.invTypes = append(r.invTypes[:i], r.invTypes[i+1:]...)
			persistList(ctx, r.adapter, KeyInvestmentTypes, r.invTypes)
			return
		}
	}
}

// InvestmentTypes returns a copy of the type list.
func (r *Registry) InvestmentTypes() []model.InvestmentType {
	return append([]model.InvestmentType(nil), r.invTypes...)
}

// InvestmentTypeByName resolves a type reference by its loose name
// binding.
func (r *Registry) InvestmentTypeByName(name string) (model.InvestmentType, bool) {
	for _, it := range r.invTypes {
		if it.Name == name {
			return it, true
		}
	}
	return model.InvestmentType{}, false
}

// ResolveColor resolves a stored color reference to a display pair.
func (r *Registry) ResolveColor(ref string) model.ColorPair {
	return model.ParseColor(ref).Resolve()
}

// AccountName returns the display name of the account.
func (r *Registry) AccountName() string { return r.accountName }

// SetAccountName updates and persists the account display name.
func (r *Registry) SetAccountName(ctx context.Context, name string) {
	r.accountName = name
	r.persistSetting(ctx, KeyAccountName, name)
}

// Theme returns the active theme, "dark" or "light".
func (r *Registry) Theme() string { return r.theme }

// SetTheme updates and persists the theme.
func (r *Registry) SetTheme(ctx context.Context, theme string) error {
	if theme != "dark" && theme != "light" {
		return fmt.Errorf("%w: theme must be dark or light", common.ErrValidation)
	}
	r.theme = theme
	r.persistSetting(ctx, KeyTheme, theme)
	return nil
}

// ProfileImage returns the stored profile image data-URL, if any.
func (r *Registry) ProfileImage() string { return r.profileImage }

// SetProfileImage updates the profile image; an empty value removes it.
func (r *Registry) SetProfileImage(ctx context.Context, dataURL string) {
	r.profileImage = dataURL
	if dataURL == "" {
		if err := r.adapter.Remove(ctx, KeyProfileImage); err != nil {
			common.LogError(err, "Failed to remove setting", common.Fields{"key": KeyProfileImage})
		}
		return
	}
	r.persistSetting(ctx, KeyProfileImage, dataURL)
}
