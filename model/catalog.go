package model

// Energy in kcal per gram of the macronutrients.
const (
	ProteinEnergy = 4
	CarbsEnergy   = 4
	FatEnergy     = 9
)

var (
	milliNutrients = []string{
		"calcium", "iron", "magnesium", "phosphorus", "potassium", "sodium",
		"zinc", "copper", "flouride", "manganese", "VitC", "VitE", "riboflavin",
		"niacin", "cholesterol",
	}
	microNutrients = []string{"selenium", "carotene", "folate"}

	// Vitamins are often labeled in IU, which has no fixed gram equivalent, so
	// they are tracked by weight instead.
	vitamins = []struct{ name, unit string }{
		{"VitA", MCG.Name},
		{"VitD", MCG.Name},
		{"VitB6", MG.Name},
		{"VitB12", MCG.Name},
		{"VitK", MCG.Name},
	}
)

// catalog lists every built-in nutrient in declaration order: macros, water,
// minerals, vitamins. This is the order of nutrition reports.
var catalog = func() []*Nutrient {
	var nutrients []*Nutrient
	add := func(name string, energy float64, unit string) {
		n, err := NewNutrient(name, energy, unit)
		if err != nil {
			panic(err)
		}
		nutrients = append(nutrients, n)
	}
	add("protein", ProteinEnergy, G.Name)
	add("fat", FatEnergy, G.Name)
	add("carbs", CarbsEnergy, G.Name)
	add("water", 0, G.Name)
	for _, name := range milliNutrients {
		add(name, 0, MG.Name)
	}
	for _, name := range microNutrients {
		add(name, 0, MCG.Name)
	}
	for _, v := range vitamins {
		add(v.name, 0, v.unit)
	}
	return nutrients
}()

var catalogIndex = func() map[string]int {
	m := make(map[string]int, len(catalog))
	for i, n := range catalog {
		m[n.Name()] = i
	}
	return m
}()

func catalogRank(name string) int {
	if i, ok := catalogIndex[name]; ok {
		return i
	}
	return len(catalog)
}

// Catalog returns the built-in nutrients in declaration order. Nutrients are
// immutable, so the same values are shared by every caller.
func Catalog() []*Nutrient {
	return append([]*Nutrient(nil), catalog...)
}

// LookupNutrient finds a built-in nutrient by name.
func LookupNutrient(name string) (*Nutrient, bool) {
	i, ok := catalogIndex[name]
	if !ok {
		return nil, false
	}
	return catalog[i], true
}
