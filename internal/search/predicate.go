// Package search turns a sparse SearchFilter into a single predicate over
// recipes and describes the page window a search should return.
//
// A Predicate is a conjunction of Conditions. It can be evaluated directly
// against recipes (Match, Filter) or compiled by a store into its own query
// language; both paths must agree on the semantics documented on Operator.
package search

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pageza/recipemanager/backend/internal/models"
	"github.com/pageza/recipemanager/backend/internal/types"
)

// Field names a recipe attribute a Condition looks at
type Field string

const (
	FieldName         Field = "name"
	FieldFoodCategory Field = "foodCategory"
	FieldServings     Field = "servings"
	FieldIngredients  Field = "ingredients"
	FieldInstructions Field = "instructions"
)

// Operator is how a Condition compares its Field to its operand
type Operator int

const (
	// OpEquals is exact equality on name, foodCategory or servings.
	OpEquals Operator = iota
	// OpAnyOf holds when at least one ingredient name is in Values.
	OpAnyOf
	// OpNoneOf holds when no ingredient name is in Values. Stores evaluate
	// it as an anti-join: collect the ids of recipes having any of Values,
	// then keep the recipes whose id is not in that set.
	OpNoneOf
	// OpContainsFold is case-insensitive substring containment. Text is
	// already lower-cased.
	OpContainsFold
)

func (o Operator) String() string {
	switch o {
	case OpEquals:
		return "="
	case OpAnyOf:
		return "any-of"
	case OpNoneOf:
		return "none-of"
	case OpContainsFold:
		return "contains"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// Condition is one atomic constraint. Only the operand matching Field is
// meaningful: Text for name, foodCategory and instructions, Number for
// servings, Values for ingredients.
type Condition struct {
	Field  Field
	Op     Operator
	Text   string
	Number int
	Values []string
}

// Match evaluates c against a single recipe.
func (c Condition) Match(r *models.Recipe) bool {
	switch c.Field {
	case FieldName:
		return r.Name == c.Text
	case FieldFoodCategory:
		return r.FoodCategory != nil && string(*r.FoodCategory) == c.Text
	case FieldServings:
		return r.Servings == c.Number
	case FieldIngredients:
		hit := hasAnyIngredient(r, c.Values)
		if c.Op == OpNoneOf {
			return !hit
		}
		return hit
	case FieldInstructions:
		return strings.Contains(strings.ToLower(r.Instructions), c.Text)
	}
	return false
}

func (c Condition) String() string {
	switch c.Field {
	case FieldServings:
		return fmt.Sprintf("%s %s %d", c.Field, c.Op, c.Number)
	case FieldIngredients:
		return fmt.Sprintf("%s %s [%s]", c.Field, c.Op, strings.Join(c.Values, ","))
	default:
		return fmt.Sprintf("%s %s %q", c.Field, c.Op, c.Text)
	}
}

func hasAnyIngredient(r *models.Recipe, names []string) bool {
	for _, ing := range r.Ingredients {
		if slices.Contains(names, ing.Name) {
			return true
		}
	}
	return false
}

// Predicate is the AND of its conditions. The zero value matches every
// recipe.
type Predicate struct {
	conditions []Condition
}

// And returns a predicate that holds when every condition holds.
func And(conds ...Condition) Predicate {
	return Predicate{conditions: slices.Clone(conds)}
}

// Conditions returns a copy of the conjuncts.
func (p Predicate) Conditions() []Condition {
	return slices.Clone(p.conditions)
}

// IsEmpty reports whether p places no constraint at all.
func (p Predicate) IsEmpty() bool {
	return len(p.conditions) == 0
}

// Match reports whether r satisfies every condition.
func (p Predicate) Match(r *models.Recipe) bool {
	for _, c := range p.conditions {
		if !c.Match(r) {
			return false
		}
	}
	return true
}

// Filter returns the recipes of rs that satisfy p, preserving order.
// Exclusion conditions run as a two-phase anti-join over the whole
// candidate set before the per-recipe conditions are applied.
func (p Predicate) Filter(rs []*models.Recipe) []*models.Recipe {
	var rowConds []Condition
	disqualified := make(map[uint]struct{})
	for _, c := range p.conditions {
		if c.Field == FieldIngredients && c.Op == OpNoneOf {
			for id := range idsWithAnyIngredient(rs, c.Values) {
				disqualified[id] = struct{}{}
			}
			continue
		}
		rowConds = append(rowConds, c)
	}

	out := make([]*models.Recipe, 0, len(rs))
	for _, r := range rs {
		if _, ok := disqualified[r.ID]; ok {
			continue
		}
		if And(rowConds...).Match(r) {
			out = append(out, r)
		}
	}
	return out
}

func idsWithAnyIngredient(rs []*models.Recipe, names []string) map[uint]struct{} {
	ids := make(map[uint]struct{})
	for _, r := range rs {
		if hasAnyIngredient(r, names) {
			ids[r.ID] = struct{}{}
		}
	}
	return ids
}

func (p Predicate) String() string {
	if p.IsEmpty() {
		return "true"
	}
	parts := make([]string, len(p.conditions))
	for i, c := range p.conditions {
		parts[i] = c.String()
	}
	return strings.Join(parts, " AND ")
}

// Build composes the predicate for f. It never fails: unset, blank or
// unparseable criteria add no constraint. An unknown foodCategory string is
// therefore the same as no category filter.
func Build(f types.SearchFilter) Predicate {
	atoms := []func() (Condition, bool){
		func() (Condition, bool) { return hasName(f.Name) },
		func() (Condition, bool) { return hasFoodCategory(f.FoodCategory) },
		func() (Condition, bool) { return hasServings(f.Servings) },
		func() (Condition, bool) { return hasIncludedIngredients(f.IncludedIngredients) },
		func() (Condition, bool) { return hasExcludedIngredients(f.ExcludedIngredients) },
		func() (Condition, bool) { return hasSearchText(f.SearchTextInInstructions) },
	}

	var conds []Condition
	for _, atom := range atoms {
		if c, ok := atom(); ok {
			conds = append(conds, c)
		}
	}
	return Predicate{conditions: conds}
}

func hasName(name *string) (Condition, bool) {
	if name == nil {
		return Condition{}, false
	}
	return Condition{Field: FieldName, Op: OpEquals, Text: *name}, true
}

func hasFoodCategory(raw string) (Condition, bool) {
	fc, ok := models.ParseFoodCategory(raw)
	if !ok {
		return Condition{}, false
	}
	return Condition{Field: FieldFoodCategory, Op: OpEquals, Text: string(fc)}, true
}

func hasServings(servings *int) (Condition, bool) {
	if servings == nil {
		return Condition{}, false
	}
	return Condition{Field: FieldServings, Op: OpEquals, Number: *servings}, true
}

func hasIncludedIngredients(names []string) (Condition, bool) {
	set := nameSet(names)
	if len(set) == 0 {
		return Condition{}, false
	}
	return Condition{Field: FieldIngredients, Op: OpAnyOf, Values: set}, true
}

func hasExcludedIngredients(names []string) (Condition, bool) {
	set := nameSet(names)
	if len(set) == 0 {
		return Condition{}, false
	}
	return Condition{Field: FieldIngredients, Op: OpNoneOf, Values: set}, true
}

func hasSearchText(text string) (Condition, bool) {
	if strings.TrimSpace(text) == "" {
		return Condition{}, false
	}
	return Condition{Field: FieldInstructions, Op: OpContainsFold, Text: strings.ToLower(text)}, true
}

// nameSet drops blanks and duplicates and sorts, so equal sets produce
// equal conditions.
func nameSet(names []string) []string {
	var out []string
	for _, n := range names {
		if strings.TrimSpace(n) == "" || slices.Contains(out, n) {
			continue
		}
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}
