package utils

import (
	"gopkg.in/yaml.v3"

	"github.com/tsani/nutcalc/token"
)

// PosError is an error located at a span of the source.
type PosError struct {
	Where token.Span
	Err   error
}

func (e PosError) Error() string {
	return e.Where.Prefix() + e.Err.Error()
}

func (e PosError) Unwrap() error {
	return e.Err
}

// TestData is one case of a YAML test table. Expected maps the name of a
// stage (e.g. "parser", "output", "error") to its expected rendering.
type TestData struct {
	Label    string
	Enable   bool
	Input    string
	Expected map[string]string
}

func ReadTestData(s []byte) []TestData {
	var data []TestData
	if err := yaml.Unmarshal(s, &data); err != nil {
		panic(err)
	}

	// Remove disabled test cases.
	i := 0
	for _, d := range data {
		if d.Enable {
			data[i] = d
			i++
		}
	}
	data = data[:i]

	return data
}
