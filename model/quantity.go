package model

import (
	"errors"
	"fmt"
)

var (
	ErrUnitMismatch = errors.New("mismatched units")
	ErrNotInUnits   = errors.New("no such unit")
	ErrNonPositive  = errors.New("weight must be positive")
)

// Quantity can only be interpreted relative to some food, in which the unit
// name is looked up to find its gram equivalent.
type Quantity struct {
	Count float64
	Unit  string
}

// Zero returns an empty quantity of unit.
func Zero(unit string) Quantity {
	return Quantity{Count: 0, Unit: unit}
}

// Mul scales the count by k.
func (q Quantity) Mul(k float64) Quantity {
	return Quantity{Count: q.Count * k, Unit: q.Unit}
}

// Add adds two quantities, provided they have the exact same unit. No
// conversion is made, not even between two weight units.
func (q Quantity) Add(other Quantity) (Quantity, error) {
	if q.Unit != other.Unit {
		return Quantity{}, fmt.Errorf(
			"%w: quantity of %s cannot be added to quantity of %s",
			ErrUnitMismatch, q.Unit, other.Unit,
		)
	}
	return Quantity{Count: q.Count + other.Count, Unit: q.Unit}, nil
}

// Weigh computes the weight in grams of this quantity of food.
func (q Quantity) Weigh(food Food) (float64, error) {
	w, err := food.UnitWeight(q.Unit)
	if err != nil {
		return 0, err
	}
	return q.Count * w, nil
}

func (q Quantity) String() string {
	return fmt.Sprintf("%.2f %s", q.Count, q.Unit)
}

// QuantifiedFood is a Quantity together with a Food. The unit of the quantity
// is one of the units of the food. Tags are free-form annotations; they ride
// along through scaling and are unioned by Merge.
type QuantifiedFood struct {
	Quantity Quantity
	Food     Food
	Tags     Tags
}

// NewQuantifiedFood checks that qty's unit is defined for food.
func NewQuantifiedFood(qty Quantity, food Food, tags ...string) (QuantifiedFood, error) {
	if !HasUnit(food, qty.Unit) {
		return QuantifiedFood{}, fmt.Errorf("%w: unit %s does not exist for food %s", ErrNotInUnits, qty.Unit, food.Name())
	}
	return QuantifiedFood{Quantity: qty, Food: food, Tags: NewTags(tags...)}, nil
}

// Mul scales the quantity by k.
func (qf QuantifiedFood) Mul(k float64) QuantifiedFood {
	return QuantifiedFood{Quantity: qf.Quantity.Mul(k), Food: qf.Food, Tags: qf.Tags}
}

// Merge adds two quantities of the same food. The units must match, and the
// result carries the union of both tag sets.
func (qf QuantifiedFood) Merge(other QuantifiedFood) (QuantifiedFood, error) {
	if qf.Food.Name() != other.Food.Name() {
		return QuantifiedFood{}, fmt.Errorf("cannot merge %s with %s", qf.Food.Name(), other.Food.Name())
	}
	qty, err := qf.Quantity.Add(other.Quantity)
	if err != nil {
		return QuantifiedFood{}, err
	}
	return QuantifiedFood{Quantity: qty, Food: qf.Food, Tags: qf.Tags.Union(other.Tags)}, nil
}

// Weight is the weight of this quantity of food, in grams.
func (qf QuantifiedFood) Weight() (float64, error) {
	return qf.Quantity.Weigh(qf.Food)
}

// NutritionFacts is the nutrition facts of the food scaled from its reference
// quantity to this quantity.
func (qf QuantifiedFood) NutritionFacts() (NutritionFacts, error) {
	nut, err := qf.Food.NutritionFacts()
	if err != nil {
		return NutritionFacts{}, err
	}
	weight, err := qf.Weight()
	if err != nil {
		return NutritionFacts{}, err
	}
	referenceWeight, err := qf.Food.ReferenceQuantity().Weigh(qf.Food)
	if err != nil {
		return NutritionFacts{}, err
	}
	return nut.Mul(weight / referenceWeight), nil
}

func (qf QuantifiedFood) String() string {
	return fmt.Sprintf("%v %s", qf.Quantity, qf.Food.Name())
}

// Tags is a set of strings.
type Tags map[string]struct{}

func NewTags(tags ...string) Tags {
	if len(tags) == 0 {
		return nil
	}
	t := make(Tags, len(tags))
	for _, tag := range tags {
		t[tag] = struct{}{}
	}
	return t
}

func (t Tags) Has(tag string) bool {
	_, ok := t[tag]
	return ok
}

func (t Tags) Union(other Tags) Tags {
	if len(t) == 0 && len(other) == 0 {
		return nil
	}
	u := make(Tags, len(t)+len(other))
	for tag := range t {
		u[tag] = struct{}{}
	}
	for tag := range other {
		u[tag] = struct{}{}
	}
	return u
}
