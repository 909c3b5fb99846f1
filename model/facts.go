package model

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// NutritionFacts wraps an ordered map of nutrients to quantities. Facts form a
// commutative monoid under Add with EmptyFacts as identity.
type NutritionFacts struct {
	order []string
	data  map[string]fact
}

type fact struct {
	nutrient *Nutrient
	qty      Quantity
}

func EmptyFacts() NutritionFacts {
	return NutritionFacts{}
}

func (n *NutritionFacts) set(nutrient *Nutrient, qty Quantity) {
	if n.data == nil {
		n.data = make(map[string]fact)
	}
	if _, ok := n.data[nutrient.Name()]; !ok {
		n.order = append(n.order, nutrient.Name())
	}
	n.data[nutrient.Name()] = fact{nutrient: nutrient, qty: qty}
}

func (n NutritionFacts) clone() NutritionFacts {
	c := NutritionFacts{order: slices.Clone(n.order), data: make(map[string]fact, len(n.data))}
	for k, v := range n.data {
		c.data[k] = v
	}
	return c
}

// Add merges the two maps, adding the quantities of nutrients present in
// both. The quantities of a nutrient must have the same unit.
func (n NutritionFacts) Add(other NutritionFacts) (NutritionFacts, error) {
	nut := n.clone()
	for _, name := range other.order {
		f := other.data[name]
		sum := f.qty
		if existing, ok := nut.data[name]; ok {
			var err error
			if sum, err = existing.qty.Add(f.qty); err != nil {
				return NutritionFacts{}, fmt.Errorf("%s: %w", name, err)
			}
		}
		nut.set(f.nutrient, sum)
	}
	return nut, nil
}

// Mul scales every quantity by k.
func (n NutritionFacts) Mul(k float64) NutritionFacts {
	nut := n.clone()
	for name, f := range nut.data {
		nut.data[name] = fact{nutrient: f.nutrient, qty: f.qty.Mul(k)}
	}
	return nut
}

func (n NutritionFacts) Len() int {
	return len(n.order)
}

func (n NutritionFacts) Get(name string) (Quantity, bool) {
	f, ok := n.data[name]
	return f.qty, ok
}

// Names lists the nutrients in the order they were first added.
func (n NutritionFacts) Names() []string {
	return slices.Clone(n.order)
}

// Map returns the facts as a plain map.
func (n NutritionFacts) Map() map[string]Quantity {
	m := make(map[string]Quantity, len(n.data))
	for name, f := range n.data {
		m[name] = f.qty
	}
	return m
}

// Energy is the energy content in kcal of these nutrition facts.
func (n NutritionFacts) Energy() float64 {
	total := 0.0
	for _, name := range n.order {
		f := n.data[name]
		total += f.nutrient.Energy() * f.qty.Count
	}
	return total
}

// Pretty renders an energy line, then one line per nutrient in catalog order.
// Nutrients outside the catalog come last, in insertion order.
func (n NutritionFacts) Pretty() string {
	rows := []string{"energy: " + Quantity{Count: n.Energy(), Unit: "kcal"}.String()}
	names := slices.Clone(n.order)
	slices.SortStableFunc(names, func(a, b string) int {
		return cmp.Compare(catalogRank(a), catalogRank(b))
	})
	for _, name := range names {
		rows = append(rows, fmt.Sprintf("%s: %v", name, n.data[name].qty))
	}
	return strings.Join(rows, "\n")
}
