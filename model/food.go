package model

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrNotWeight  = errors.New("natural unit must be a weight")
	ErrUnitExists = errors.New("unit already defined")
)

// Food is either a *Nutrient or a *CompoundFood.
type Food interface {
	Name() string
	// Units lists the units in which quantities of the food may be given.
	Units() []Unit
	// UnitWeight retrieves the weight in grams of the named unit of the food.
	UnitWeight(name string) (float64, error)
	// ReferenceQuantity is the amount the nutrition facts are given for.
	ReferenceQuantity() Quantity
	NutritionFacts() (NutritionFacts, error)
	food()
}

// HasUnit reports whether food defines the named unit.
func HasUnit(food Food, name string) bool {
	return slices.ContainsFunc(food.Units(), func(u Unit) bool { return u.Name == name })
}

// Nutrient is an indivisible measured substance. Its only unit is its natural
// unit, a weight. Nutrients are immutable.
type Nutrient struct {
	name        string
	energy      float64
	naturalUnit string
}

// NewNutrient makes a nutrient providing energy kcal per gram.
func NewNutrient(name string, energy float64, naturalUnit string) (*Nutrient, error) {
	if !IsWeight(naturalUnit) {
		return nil, fmt.Errorf("%w: nutrient %s has natural unit %s", ErrNotWeight, name, naturalUnit)
	}
	return &Nutrient{name: name, energy: energy, naturalUnit: naturalUnit}, nil
}

func (n *Nutrient) Name() string { return n.name }

// Energy is the energy in kcal per gram.
func (n *Nutrient) Energy() float64 { return n.energy }

func (n *Nutrient) NaturalUnit() string { return n.naturalUnit }

func (n *Nutrient) Units() []Unit {
	u, _ := Weight(n.naturalUnit)
	return []Unit{u}
}

func (n *Nutrient) UnitWeight(name string) (float64, error) {
	if name != n.naturalUnit {
		return 0, fmt.Errorf(
			"%w: cannot retrieve weight of %s in %s; its natural unit is %s",
			ErrNotInUnits, n.name, name, n.naturalUnit,
		)
	}
	u, _ := Weight(name)
	return u.GramEquivalent, nil
}

func (n *Nutrient) ReferenceQuantity() Quantity {
	return Quantity{Count: 1, Unit: n.naturalUnit}
}

func (n *Nutrient) NutritionFacts() (NutritionFacts, error) {
	nut := EmptyFacts()
	nut.set(n, n.ReferenceQuantity())
	return nut, nil
}

func (*Nutrient) food() {}

// CompoundFood is a food consisting of several constituent foods, and
// possessing several units. The constituent amounts are for 100 g of the
// compound food.
type CompoundFood struct {
	name         string
	units        []Unit
	constituents []QuantifiedFood
}

// FromReferenceQuantity constructs a compound food from the constituents of a
// given reference quantity, normalizing them to the standard 100 g reference.
func FromReferenceQuantity(name string, units []Unit, constituents []QuantifiedFood, reference Quantity) (*CompoundFood, error) {
	i := slices.IndexFunc(units, func(u Unit) bool { return u.Name == reference.Unit })
	if i < 0 {
		return nil, fmt.Errorf(
			"%w: unit of reference quantity %v is not among the units of food %s",
			ErrNotInUnits, reference, name,
		)
	}
	w := reference.Count * units[i].GramEquivalent
	if w <= 0 {
		return nil, fmt.Errorf("%w: reference quantity %v of food %s weighs %g g", ErrNonPositive, reference, name, w)
	}
	scale := 100 / w
	food := &CompoundFood{
		name:         name,
		units:        slices.Clone(units),
		constituents: make([]QuantifiedFood, len(constituents)),
	}
	for i, c := range constituents {
		food.constituents[i] = c.Mul(scale)
	}
	return food, nil
}

// FromConstituentSum constructs a compound food together with a new unit, the
// unit of qty, whose gram equivalent is the total weight of the constituents
// divided by the count of qty.
func FromConstituentSum(name string, units []Unit, constituents []QuantifiedFood, qty Quantity) (*CompoundFood, error) {
	total := 0.0
	for _, c := range constituents {
		w, err := c.Weight()
		if err != nil {
			return nil, err
		}
		total += w
	}
	if qty.Count <= 0 {
		return nil, fmt.Errorf("%w: cannot define unit %s of food %s from %v", ErrNonPositive, qty.Unit, name, qty)
	}
	if slices.ContainsFunc(units, func(u Unit) bool { return u.Name == qty.Unit }) {
		return nil, fmt.Errorf("%w: unit %s already defined for food %s", ErrUnitExists, qty.Unit, name)
	}
	unit := Unit{Name: qty.Unit, GramEquivalent: total / qty.Count}
	return FromReferenceQuantity(name, append(slices.Clone(units), unit), constituents, qty)
}

func (c *CompoundFood) Name() string { return c.name }

func (c *CompoundFood) Units() []Unit {
	return slices.Clone(c.units)
}

// Constituents returns what 100 g of the food is made of.
func (c *CompoundFood) Constituents() []QuantifiedFood {
	return slices.Clone(c.constituents)
}

func (c *CompoundFood) UnitWeight(name string) (float64, error) {
	for _, u := range c.units {
		if u.Name == name {
			return u.GramEquivalent, nil
		}
	}
	return 0, fmt.Errorf("%w: no unit %s for food %s", ErrNotInUnits, name, c.name)
}

func (c *CompoundFood) ReferenceQuantity() Quantity {
	return Quantity{Count: 100, Unit: G.Name}
}

// NutritionFacts sums the facts of the constituents, so nested compound foods
// aggregate transitively.
func (c *CompoundFood) NutritionFacts() (NutritionFacts, error) {
	nut := EmptyFacts()
	for _, constituent := range c.constituents {
		facts, err := constituent.NutritionFacts()
		if err != nil {
			return NutritionFacts{}, err
		}
		if nut, err = nut.Add(facts); err != nil {
			return NutritionFacts{}, err
		}
	}
	return nut, nil
}

// DefineUnit defines a new unit so that qty weighs the same as reference,
// which is given in a unit the food already has.
func (c *CompoundFood) DefineUnit(qty Quantity, reference Quantity) error {
	if HasUnit(c, qty.Unit) {
		return fmt.Errorf("%w: unit %s already defined for food %s", ErrUnitExists, qty.Unit, c.name)
	}
	if qty.Count <= 0 {
		return fmt.Errorf("%w: cannot define unit %s of food %s from %v", ErrNonPositive, qty.Unit, c.name, qty)
	}
	w, err := reference.Weigh(c)
	if err != nil {
		return err
	}
	if w <= 0 {
		return fmt.Errorf("%w: cannot define unit %s of food %s as %v", ErrNonPositive, qty.Unit, c.name, reference)
	}
	c.units = append(c.units, Unit{Name: qty.Unit, GramEquivalent: w / qty.Count})
	return nil
}

func (*CompoundFood) food() {}
