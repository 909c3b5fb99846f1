package eval

import (
	"sort"

	"github.com/tsani/nutcalc/model"
)

// FoodDB maps food names to foods. It only grows: a name, once registered,
// can be neither replaced nor removed.
type FoodDB struct {
	data map[string]model.Food
}

// NewFoodDB returns a registry holding the built-in nutrients.
func NewFoodDB() *FoodDB {
	db := &FoodDB{data: make(map[string]model.Food)}
	for _, n := range model.Catalog() {
		db.data[n.Name()] = n
	}
	return db
}

func (db *FoodDB) Register(food model.Food) error {
	if db.Has(food.Name()) {
		return errorf(nil, ErrDuplicateFood, "food %s already defined", food.Name())
	}
	db.data[food.Name()] = food
	return nil
}

func (db *FoodDB) Get(name string) (model.Food, error) {
	food, ok := db.data[name]
	if !ok {
		return nil, errorf(nil, ErrUnknownFood, "food %s is not defined", name)
	}
	return food, nil
}

func (db *FoodDB) Has(name string) bool {
	_, ok := db.data[name]
	return ok
}

func (db *FoodDB) Len() int {
	return len(db.data)
}

// Names returns every registered name, sorted.
func (db *FoodDB) Names() []string {
	names := make([]string, 0, len(db.data))
	for name := range db.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
