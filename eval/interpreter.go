// Package eval executes nutcalc statements against a food registry.
package eval

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"github.com/tsani/nutcalc/ast"
	"github.com/tsani/nutcalc/model"
	"github.com/tsani/nutcalc/token"
)

// Interpreter owns a food registry and the set of loaded modules. It is not
// safe for concurrent use.
type Interpreter struct {
	Foods *FoodDB
	// Out receives the reports of print statements.
	Out io.Writer
	Log *log.Logger
	// ResolveImport maps an import in the module at importer to the path under
	// which the imported module is loaded. The default is the bare name.
	ResolveImport func(importer, name string) string

	loaded map[string]struct{}
}

func NewInterpreter() *Interpreter {
	return &Interpreter{
		Foods:         NewFoodDB(),
		Out:           os.Stdout,
		Log:           log.New(io.Discard, "", 0),
		ResolveImport: func(_, name string) string { return name },
		loaded:        make(map[string]struct{}),
	}
}

// IsLoaded reports whether the module at path has been loaded.
func (in *Interpreter) IsLoaded(path string) bool {
	_, ok := in.loaded[path]
	return ok
}

// Loaded lists the loaded module paths, sorted.
func (in *Interpreter) Loaded() []string {
	paths := make([]string, 0, len(in.loaded))
	for p := range in.loaded {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// LoadModule executes the body of module and marks path as loaded. Loading
// an already loaded path does nothing. Every import of module must have been
// loaded beforehand; LoadModule does not fetch imports itself.
// Execution stops at the first failing statement, keeping the effects of the
// statements before it, and path is then not marked as loaded.
func (in *Interpreter) LoadModule(path string, module *ast.Module) error {
	if in.IsLoaded(path) {
		in.Log.Printf("module %s already loaded", path)
		return nil
	}
	for _, imp := range module.Imports {
		dep := in.ResolveImport(path, imp.Path)
		if !in.IsLoaded(dep) {
			return errorf(
				span(imp), ErrImportsNotLoaded,
				"module %s cannot be loaded; its import %s is not loaded yet", path, dep,
			)
		}
	}
	for _, stmt := range module.Body {
		if err := in.Execute(stmt); err != nil {
			return err
		}
	}
	in.loaded[path] = struct{}{}
	in.Log.Printf("loaded module %s", path)
	return nil
}

// Execute runs one statement.
func (in *Interpreter) Execute(stmt ast.Stmt) error {
	switch stmt := stmt.(type) {
	case *ast.FoodStmt:
		return in.foodStmt(stmt)
	case *ast.WeightStmt:
		return in.weightStmt(stmt)
	case *ast.PrintStmt:
		return in.printStmt(stmt)
	default:
		panic(fmt.Sprintf("unhandled statement %T", stmt))
	}
}

// Facts computes the aggregate nutrition facts of a food expression.
func (in *Interpreter) Facts(expr *ast.Expr) (model.NutritionFacts, error) {
	qfs, err := in.quantifiedFoods(expr.Items)
	if err != nil {
		return model.NutritionFacts{}, err
	}
	nut := model.EmptyFacts()
	for i, qf := range qfs {
		facts, err := qf.NutritionFacts()
		if err != nil {
			return model.NutritionFacts{}, locate(span(expr.Items[i]), err)
		}
		if nut, err = nut.Add(facts); err != nil {
			return model.NutritionFacts{}, locate(span(expr), err)
		}
	}
	return nut, nil
}

func (in *Interpreter) printStmt(stmt *ast.PrintStmt) error {
	nut, err := in.Facts(stmt.Body)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(in.Out, nut.Pretty())
	return err
}

// definitionShape selects how a food statement defines its food.
type definitionShape struct {
	weightUnit bool // the unit on the left-hand side is a weight
	weighs     bool // a `weighs` clause is present
}

func (in *Interpreter) foodStmt(stmt *ast.FoodStmt) error {
	name := stmt.Lhs.Food
	lhs := quantity(stmt.Lhs.Quantity)
	rhs, err := in.quantifiedFoods(stmt.Body.Items)
	if err != nil {
		return err
	}

	var food *model.CompoundFood
	switch (definitionShape{weightUnit: model.IsWeight(lhs.Unit), weighs: stmt.Weight != nil}) {
	case definitionShape{weightUnit: true, weighs: false}:
		// e.g. `20 g foo = ...`
		food, err = model.FromReferenceQuantity(name, model.Weights(), rhs, lhs)
		if err == nil {
			in.Log.Printf("defined food %s, ref qty %v", name, lhs)
		}
	case definitionShape{weightUnit: true, weighs: true}:
		// e.g. `20 g foo weighs 25 g = ...`
		return errorf(span(stmt), ErrUnitRedefined, "unit %s already defined for food %s", lhs.Unit, name)
	case definitionShape{weightUnit: false, weighs: false}:
		// e.g. `1 x foo = ...`
		food, err = model.FromConstituentSum(name, model.Weights(), rhs, lhs)
		if err == nil {
			in.Log.Printf("defined food %s from constituent sum", name)
		}
	case definitionShape{weightUnit: false, weighs: true}:
		// e.g. `1 x foo weighs 20 g = ...`
		weight := quantity(stmt.Weight)
		food, err = model.FromReferenceQuantity(name, model.Weights(), rhs, weight)
		if err == nil {
			err = food.DefineUnit(lhs, weight)
		}
		if err == nil {
			in.Log.Printf("defined food %s @ qty %v weight %v", name, lhs, weight)
		}
	}
	if err != nil {
		return locate(span(stmt), err)
	}

	if err := in.Foods.Register(food); err != nil {
		return locate(span(stmt.Lhs), err)
	}
	return nil
}

func (in *Interpreter) weightStmt(stmt *ast.WeightStmt) error {
	food, err := in.Foods.Get(stmt.Lhs.Food)
	if err != nil {
		return locate(span(stmt.Lhs), err)
	}
	lhs := quantity(stmt.Lhs.Quantity)
	if model.IsWeight(lhs.Unit) {
		return errorf(span(stmt), ErrUnitRedefined, "unit %s already exists for food %s", lhs.Unit, food.Name())
	}

	var compound *model.CompoundFood
	switch food := food.(type) {
	case *model.Nutrient:
		return errorf(span(stmt), ErrNutrientUnit, "new units cannot be defined for nutrient %s", food.Name())
	case *model.CompoundFood:
		compound = food
	default:
		panic(fmt.Sprintf("unhandled food %T", food))
	}
	if model.HasUnit(compound, lhs.Unit) {
		return errorf(span(stmt), ErrUnitRedefined, "unit %s already defined for food %s", lhs.Unit, compound.Name())
	}

	rhs, err := in.quantifiedFood(stmt.Rhs)
	if err != nil {
		return err
	}
	grams, err := rhs.Weight()
	if err != nil {
		return locate(span(stmt.Rhs), err)
	}
	if err := compound.DefineUnit(lhs, model.Quantity{Count: grams, Unit: model.G.Name}); err != nil {
		return locate(span(stmt), err)
	}
	in.Log.Printf("defined unit %s for food %s", lhs.Unit, compound.Name())
	return nil
}

func quantity(qty *ast.Quantity) model.Quantity {
	return model.Quantity{Count: qty.Count, Unit: qty.Unit}
}

// quantifiedFood looks up the food and checks the unit against it. The result
// is tagged with the file the expression came from.
func (in *Interpreter) quantifiedFood(syn *ast.QuantifiedFood) (model.QuantifiedFood, error) {
	food, err := in.Foods.Get(syn.Food)
	if err != nil {
		return model.QuantifiedFood{}, locate(span(syn), err)
	}
	var tags []string
	if origin := syn.Span().Filename; origin != "" {
		tags = append(tags, origin)
	}
	qf, err := model.NewQuantifiedFood(quantity(syn.Quantity), food, tags...)
	if err != nil {
		return model.QuantifiedFood{}, errorf(
			span(syn.Quantity), ErrUnknownUnit,
			"unit %s does not exist for food %s", syn.Quantity.Unit, food.Name(),
		)
	}
	return qf, nil
}

func (in *Interpreter) quantifiedFoods(syns []*ast.QuantifiedFood) ([]model.QuantifiedFood, error) {
	qfs := make([]model.QuantifiedFood, len(syns))
	for i, syn := range syns {
		var err error
		if qfs[i], err = in.quantifiedFood(syn); err != nil {
			return nil, err
		}
	}
	return qfs, nil
}

// span returns the location of n, or nil for a node built outside the parser.
func span(n ast.Node) *token.Span {
	s := n.Span()
	if s.Start.Line == 0 {
		return nil
	}
	return &s
}
