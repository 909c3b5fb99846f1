package model

// Unit represents an amount of a particular food.
type Unit struct {
	Name           string
	GramEquivalent float64
}

// The weights are special units in that they are independent of any food.
// Every food has them as a basis, plus whatever extra units get defined for
// that food.
var (
	G   = Unit{Name: "g", GramEquivalent: 1}
	KG  = Unit{Name: "kg", GramEquivalent: 1000}
	MG  = Unit{Name: "mg", GramEquivalent: 0.001}
	MCG = Unit{Name: "mcg", GramEquivalent: 0.000001}
	OZ  = Unit{Name: "oz", GramEquivalent: 28}
	LB  = Unit{Name: "lb", GramEquivalent: 454}
)

var allWeights = []Unit{G, KG, MG, MCG, OZ, LB}

var weights = func() map[string]Unit {
	m := make(map[string]Unit, len(allWeights))
	for _, w := range allWeights {
		m[w.Name] = w
	}
	return m
}()

// Weights returns a fresh copy of the weight units, suitable as the initial
// unit list of a new food.
func Weights() []Unit {
	return append([]Unit(nil), allWeights...)
}

// IsWeight reports whether name is one of the weight units.
func IsWeight(name string) bool {
	_, ok := weights[name]
	return ok
}

// Weight looks up a weight unit by name.
func Weight(name string) (Unit, bool) {
	u, ok := weights[name]
	return u, ok
}
