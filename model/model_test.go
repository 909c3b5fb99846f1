package model_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/tsani/nutcalc/model"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func nutrient(t *testing.T, name string) *model.Nutrient {
	t.Helper()
	n, ok := model.LookupNutrient(name)
	if !ok {
		t.Fatalf("no nutrient %s", name)
	}
	return n
}

func quantified(t *testing.T, count float64, unit string, food model.Food) model.QuantifiedFood {
	t.Helper()
	qf, err := model.NewQuantifiedFood(model.Quantity{Count: count, Unit: unit}, food)
	if err != nil {
		t.Fatal(err)
	}
	return qf
}

func facts(t *testing.T, qfs ...model.QuantifiedFood) model.NutritionFacts {
	t.Helper()
	nut := model.EmptyFacts()
	for _, qf := range qfs {
		f, err := qf.NutritionFacts()
		if err != nil {
			t.Fatal(err)
		}
		if nut, err = nut.Add(f); err != nil {
			t.Fatal(err)
		}
	}
	return nut
}

func TestQuantityAdd(t *testing.T) {
	t.Parallel()

	sum, err := model.Quantity{Count: 2, Unit: "g"}.Add(model.Quantity{Count: 3, Unit: "g"})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(model.Quantity{Count: 5, Unit: "g"}, sum); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	// weights are not converted into each other
	_, err = model.Quantity{Count: 2, Unit: "g"}.Add(model.Quantity{Count: 1, Unit: "kg"})
	if !errors.Is(err, model.ErrUnitMismatch) {
		t.Errorf("2 g + 1 kg = %v, want %v", err, model.ErrUnitMismatch)
	}
}

func TestQuantityString(t *testing.T) {
	t.Parallel()

	if got := (model.Quantity{Count: 1.0 / 3, Unit: "cup"}).String(); got != "0.33 cup" {
		t.Errorf("got %q, want %q", got, "0.33 cup")
	}
}

func TestNutrient(t *testing.T) {
	t.Parallel()

	iron := nutrient(t, "iron")
	if diff := cmp.Diff([]model.Unit{model.MG}, iron.Units()); diff != "" {
		t.Errorf("units mismatch (-want +got):\n%s", diff)
	}
	if _, err := iron.UnitWeight("g"); !errors.Is(err, model.ErrNotInUnits) {
		t.Errorf("UnitWeight(g) = %v, want %v", err, model.ErrNotInUnits)
	}
	if _, err := model.NewQuantifiedFood(model.Quantity{Count: 1, Unit: "g"}, iron); !errors.Is(err, model.ErrNotInUnits) {
		t.Errorf("1 g iron = %v, want %v", err, model.ErrNotInUnits)
	}
	if _, err := model.NewNutrient("fibre", 2, "cup"); !errors.Is(err, model.ErrNotWeight) {
		t.Errorf("NewNutrient with a cup = %v, want %v", err, model.ErrNotWeight)
	}

	nut := facts(t, quantified(t, 5, "mg", iron))
	if diff := cmp.Diff(map[string]model.Quantity{"iron": {Count: 5, Unit: "mg"}}, nut.Map(), approx); diff != "" {
		t.Errorf("facts mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalog(t *testing.T) {
	t.Parallel()

	catalog := model.Catalog()
	var names []string
	for _, n := range catalog {
		names = append(names, n.Name())
		if !model.IsWeight(n.NaturalUnit()) {
			t.Errorf("%s has natural unit %s", n.Name(), n.NaturalUnit())
		}
	}
	if diff := cmp.Diff([]string{"protein", "fat", "carbs", "water"}, names[:4]); diff != "" {
		t.Errorf("macros mismatch (-want +got):\n%s", diff)
	}
	if len(names) != 27 {
		t.Errorf("catalog has %d nutrients, want 27", len(names))
	}

	energy := map[string]float64{}
	for _, n := range catalog {
		energy[n.Name()] = n.Energy()
	}
	for name, want := range map[string]float64{"protein": 4, "fat": 9, "carbs": 4, "water": 0, "sodium": 0} {
		if energy[name] != want {
			t.Errorf("energy of %s = %v, want %v", name, energy[name], want)
		}
	}
	if vitA := nutrient(t, "VitA"); vitA.NaturalUnit() != "mcg" {
		t.Errorf("VitA is measured in %s, want mcg", vitA.NaturalUnit())
	}
}

func TestFromReferenceQuantity(t *testing.T) {
	t.Parallel()

	fat := nutrient(t, "fat")
	food, err := model.FromReferenceQuantity(
		"butter", model.Weights(),
		[]model.QuantifiedFood{quantified(t, 40, "g", fat)},
		model.Quantity{Count: 50, Unit: "g"},
	)
	if err != nil {
		t.Fatal(err)
	}
	constituents := food.Constituents()
	if len(constituents) != 1 || constituents[0].Quantity != (model.Quantity{Count: 80, Unit: "g"}) {
		t.Errorf("constituents = %v, want 80 g fat", constituents)
	}

	if _, err := model.FromReferenceQuantity("butter", model.Weights(), nil, model.Quantity{Count: 1, Unit: "cup"}); !errors.Is(err, model.ErrNotInUnits) {
		t.Errorf("reference in cups = %v, want %v", err, model.ErrNotInUnits)
	}
	if _, err := model.FromReferenceQuantity("butter", model.Weights(), nil, model.Quantity{Count: 0, Unit: "g"}); !errors.Is(err, model.ErrNonPositive) {
		t.Errorf("reference of 0 g = %v, want %v", err, model.ErrNonPositive)
	}
}

func TestFromConstituentSum(t *testing.T) {
	t.Parallel()

	fat, carbs := nutrient(t, "fat"), nutrient(t, "carbs")
	constituents := []model.QuantifiedFood{quantified(t, 20, "g", fat), quantified(t, 10, "g", carbs)}

	food, err := model.FromConstituentSum("snack", model.Weights(), constituents, model.Quantity{Count: 2, Unit: "bar"})
	if err != nil {
		t.Fatal(err)
	}
	w, err := food.UnitWeight("bar")
	if err != nil {
		t.Fatal(err)
	}
	if w != 15 {
		t.Errorf("a bar weighs %v g, want 15", w)
	}
	if !model.HasUnit(food, "kg") {
		t.Error("snack lacks the weight units")
	}

	if _, err := model.FromConstituentSum("snack", model.Weights(), constituents, model.Quantity{Count: 1, Unit: "g"}); !errors.Is(err, model.ErrUnitExists) {
		t.Errorf("defining g = %v, want %v", err, model.ErrUnitExists)
	}
	if _, err := model.FromConstituentSum("snack", model.Weights(), constituents, model.Quantity{Count: 0, Unit: "bar"}); !errors.Is(err, model.ErrNonPositive) {
		t.Errorf("defining 0 bar = %v, want %v", err, model.ErrNonPositive)
	}
}

func TestReferenceWeight(t *testing.T) {
	t.Parallel()

	fat := nutrient(t, "fat")
	for _, reference := range []model.Quantity{{Count: 1, Unit: "kg"}, {Count: 3, Unit: "oz"}, {Count: 250, Unit: "mg"}} {
		food, err := model.FromReferenceQuantity("x", model.Weights(), []model.QuantifiedFood{quantified(t, 1, "g", fat)}, reference)
		if err != nil {
			t.Fatal(err)
		}
		w, err := food.ReferenceQuantity().Weigh(food)
		if err != nil {
			t.Fatal(err)
		}
		if w != 100 {
			t.Errorf("reference quantity of food defined per %v weighs %v g, want 100", reference, w)
		}
	}
}

func TestDefineUnit(t *testing.T) {
	t.Parallel()

	carbs := nutrient(t, "carbs")
	bread, err := model.FromReferenceQuantity("bread", model.Weights(), []model.QuantifiedFood{quantified(t, 50, "g", carbs)}, model.Quantity{Count: 100, Unit: "g"})
	if err != nil {
		t.Fatal(err)
	}
	if err := bread.DefineUnit(model.Quantity{Count: 2, Unit: "slice"}, model.Quantity{Count: 60, Unit: "g"}); err != nil {
		t.Fatal(err)
	}
	// in terms of the unit just defined
	if err := bread.DefineUnit(model.Quantity{Count: 1, Unit: "loaf"}, model.Quantity{Count: 20, Unit: "slice"}); err != nil {
		t.Fatal(err)
	}

	for unit, want := range map[string]float64{"slice": 30, "loaf": 600} {
		w, err := bread.UnitWeight(unit)
		if err != nil {
			t.Fatal(err)
		}
		if w != want {
			t.Errorf("a %s weighs %v g, want %v", unit, w, want)
		}
	}

	if err := bread.DefineUnit(model.Quantity{Count: 1, Unit: "slice"}, model.Quantity{Count: 1, Unit: "g"}); !errors.Is(err, model.ErrUnitExists) {
		t.Errorf("redefining slice = %v, want %v", err, model.ErrUnitExists)
	}
	if err := bread.DefineUnit(model.Quantity{Count: 1, Unit: "crumb"}, model.Quantity{Count: 1, Unit: "cup"}); !errors.Is(err, model.ErrNotInUnits) {
		t.Errorf("defining from cups = %v, want %v", err, model.ErrNotInUnits)
	}
	if model.HasUnit(bread, "crumb") {
		t.Error("failed definition left unit crumb behind")
	}
}

func TestNestedCompound(t *testing.T) {
	t.Parallel()

	fat, protein := nutrient(t, "fat"), nutrient(t, "protein")
	cheese, err := model.FromReferenceQuantity("cheese", model.Weights(),
		[]model.QuantifiedFood{quantified(t, 30, "g", fat), quantified(t, 20, "g", protein)},
		model.Quantity{Count: 100, Unit: "g"})
	if err != nil {
		t.Fatal(err)
	}
	pizza, err := model.FromConstituentSum("pizza", model.Weights(),
		[]model.QuantifiedFood{quantified(t, 50, "g", cheese), quantified(t, 5, "g", fat)},
		model.Quantity{Count: 1, Unit: "slice"})
	if err != nil {
		t.Fatal(err)
	}

	nut := facts(t, quantified(t, 2, "slice", pizza))
	want := map[string]model.Quantity{
		"fat":     {Count: 40, Unit: "g"},
		"protein": {Count: 20, Unit: "g"},
	}
	if diff := cmp.Diff(want, nut.Map(), approx); diff != "" {
		t.Errorf("facts mismatch (-want +got):\n%s", diff)
	}
	if energy := nut.Energy(); energy < 440-1e-9 || energy > 440+1e-9 {
		t.Errorf("energy = %v, want 440", energy)
	}
}

func TestFactsMonoid(t *testing.T) {
	t.Parallel()

	fat, carbs, sodium := nutrient(t, "fat"), nutrient(t, "carbs"), nutrient(t, "sodium")
	a := facts(t, quantified(t, 1, "g", fat))
	b := facts(t, quantified(t, 2, "g", carbs), quantified(t, 3, "g", fat))
	c := facts(t, quantified(t, 400, "mg", sodium))

	add := func(x, y model.NutritionFacts) model.NutritionFacts {
		sum, err := x.Add(y)
		if err != nil {
			t.Fatal(err)
		}
		return sum
	}

	testcases := []struct {
		label    string
		lhs, rhs model.NutritionFacts
	}{
		{"left identity", add(model.EmptyFacts(), b), b},
		{"right identity", add(b, model.EmptyFacts()), b},
		{"commutative", add(a, b), add(b, a)},
		{"associative", add(add(a, b), c), add(a, add(b, c))},
	}
	for _, testcase := range testcases {
		if diff := cmp.Diff(testcase.lhs.Map(), testcase.rhs.Map(), approx); diff != "" {
			t.Errorf("%s mismatch (-lhs +rhs):\n%s", testcase.label, diff)
		}
	}

	if got := add(a, b).Map()["fat"]; got != (model.Quantity{Count: 4, Unit: "g"}) {
		t.Errorf("fat = %v, want 4.00 g", got)
	}
}

func TestPretty(t *testing.T) {
	t.Parallel()

	nut := facts(t,
		quantified(t, 200, "mg", nutrient(t, "sodium")),
		quantified(t, 3, "g", nutrient(t, "carbs")),
		quantified(t, 2, "g", nutrient(t, "protein")),
	)
	want := "energy: 20.00 kcal\nprotein: 2.00 g\ncarbs: 3.00 g\nsodium: 200.00 mg"
	if diff := cmp.Diff(want, nut.Pretty()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"sodium", "carbs", "protein"}, nut.Names()); diff != "" {
		t.Errorf("insertion order mismatch (-want +got):\n%s", diff)
	}

	if got := model.EmptyFacts().Pretty(); got != "energy: 0.00 kcal" {
		t.Errorf("empty facts = %q", got)
	}
}

func TestMergeTags(t *testing.T) {
	t.Parallel()

	fat := nutrient(t, "fat")
	a, err := model.NewQuantifiedFood(model.Quantity{Count: 1, Unit: "g"}, fat, "breakfast.nut")
	if err != nil {
		t.Fatal(err)
	}
	b, err := model.NewQuantifiedFood(model.Quantity{Count: 2, Unit: "g"}, fat, "lunch.nut")
	if err != nil {
		t.Fatal(err)
	}

	merged, err := a.Merge(b)
	if err != nil {
		t.Fatal(err)
	}
	if merged.Quantity != (model.Quantity{Count: 3, Unit: "g"}) {
		t.Errorf("merged quantity = %v, want 3.00 g", merged.Quantity)
	}
	if diff := cmp.Diff(model.NewTags("breakfast.nut", "lunch.nut"), merged.Tags); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}
	if !merged.Mul(2).Tags.Has("lunch.nut") {
		t.Error("scaling dropped the tags")
	}

	c, err := model.NewQuantifiedFood(model.Quantity{Count: 1, Unit: "mg"}, nutrient(t, "sodium"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.Merge(c); err == nil {
		t.Error("merging fat with sodium succeeded")
	}
}
