package driver

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tsani/nutcalc/ast"
	"github.com/tsani/nutcalc/eval"
	"github.com/tsani/nutcalc/parser"
)

// Extension is the file extension of nutcalc modules.
const Extension = ".nut"

// FileReader reads module sources. fstest.MapFS satisfies it.
type FileReader interface {
	ReadFile(name string) ([]byte, error)
}

type osFiles struct{}

func (osFiles) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// OS reads modules from the file system.
var OS FileReader = osFiles{}

// ModulePath resolves `import name` in the module at importer to the file
// name.nut next to it.
func ModulePath(importer, name string) string {
	return filepath.Join(filepath.Dir(importer), name+Extension)
}

// CycleError reports modules that import each other. Chain starts and ends
// with the same path.
type CycleError struct {
	Chain []string
}

func (e *CycleError) Error() string {
	return "import cycle: " + strings.Join(e.Chain, " -> ")
}

// Loader feeds modules to an interpreter, imports first.
type Loader struct {
	interp *eval.Interpreter
	files  FileReader
	Log    *log.Logger

	// modules whose imports are being loaded, outermost first
	stack []string
}

// NewLoader makes interp resolve imports the way the loader finds them.
func NewLoader(interp *eval.Interpreter, files FileReader) *Loader {
	interp.ResolveImport = ModulePath
	return &Loader{interp: interp, files: files, Log: interp.Log}
}

// LoadFile loads the module at path, loading what it imports depth-first
// before it. Modules already loaded are skipped.
func (l *Loader) LoadFile(path string) error {
	path = filepath.Clean(path)
	if l.interp.IsLoaded(path) {
		return nil
	}
	if i := slices.Index(l.stack, path); i >= 0 {
		return &CycleError{Chain: append(slices.Clone(l.stack[i:]), path)}
	}
	source, err := l.files.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return l.LoadSource(path, string(source))
}

// LoadSource is like LoadFile with the contents of path already at hand.
func (l *Loader) LoadSource(path, source string) error {
	module, err := parser.ParseModule(path, source)
	if err != nil {
		return err
	}
	return l.load(path, module)
}

func (l *Loader) load(path string, module *ast.Module) error {
	l.stack = append(l.stack, path)
	defer func() { l.stack = l.stack[:len(l.stack)-1] }()

	for _, imp := range module.Imports {
		dep := ModulePath(path, imp.Path)
		l.Log.Printf("%s imports %s", path, dep)
		if err := l.LoadFile(dep); err != nil {
			return err
		}
	}
	return l.interp.LoadModule(path, module)
}
