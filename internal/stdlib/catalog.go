// Package stdlib describes the built-in functions available to every Pain program.
package stdlib

import (
	"slices"

	"pain/internal/ast"
)

type Param struct {
	Name string
	Type *ast.Type
}

// Function is a built-in signature.
type Function struct {
	Name        string
	Params      []Param
	Return      *ast.Type
	Description string
	// Variadic functions accept any number of arguments after the declared ones.
	Variadic bool
}

var (
	tInt     = ast.Simple(ast.TypeInt)
	tStr     = ast.Simple(ast.TypeStr)
	tFloat   = ast.Simple(ast.TypeFloat64)
	tBool    = ast.Simple(ast.TypeBool)
	tDynamic = ast.Simple(ast.TypeDynamic)
	tVoid    = ast.Simple(ast.TypeVoid)
	tList    = ast.ListOf(tDynamic)
	tMap     = &ast.Type{Kind: ast.TypeMap, Args: []*ast.Type{tStr, tDynamic}}
)

func p(name string, t *ast.Type) Param { return Param{Name: name, Type: t} }

// catalog порядок важен: completion показывает первые N.
var catalog = []Function{
	{Name: "print", Params: []Param{p("value", tDynamic)}, Return: tVoid, Description: "Print a value to standard output", Variadic: true},
	{Name: "println", Params: []Param{p("value", tDynamic)}, Return: tVoid, Description: "Print a value followed by a newline", Variadic: true},
	{Name: "len", Params: []Param{p("value", tDynamic)}, Return: tInt, Description: "Length of a string, list, array or map"},
	{Name: "str", Params: []Param{p("value", tDynamic)}, Return: tStr, Description: "Convert a value to its string form"},
	{Name: "int", Params: []Param{p("value", tDynamic)}, Return: tInt, Description: "Convert a value to an integer"},
	{Name: "float", Params: []Param{p("value", tDynamic)}, Return: tFloat, Description: "Convert a value to a float"},
	{Name: "abs", Params: []Param{p("x", tFloat)}, Return: tFloat, Description: "Absolute value"},
	{Name: "min", Params: []Param{p("a", tFloat), p("b", tFloat)}, Return: tFloat, Description: "Smaller of two numbers"},
	{Name: "max", Params: []Param{p("a", tFloat), p("b", tFloat)}, Return: tFloat, Description: "Larger of two numbers"},
	{Name: "range", Params: []Param{p("n", tInt)}, Return: ast.ListOf(tInt), Description: "List of integers from 0 to n-1"},
	{Name: "append", Params: []Param{p("list", tList), p("value", tDynamic)}, Return: tList, Description: "Append a value to a list"},
	{Name: "keys", Params: []Param{p("map", tMap)}, Return: ast.ListOf(tStr), Description: "Keys of a map"},
	{Name: "values", Params: []Param{p("map", tMap)}, Return: tList, Description: "Values of a map"},
	{Name: "input", Params: []Param{p("prompt", tStr)}, Return: tStr, Description: "Read a line from standard input"},
	{Name: "read_file", Params: []Param{p("path", tStr)}, Return: tStr, Description: "Read a whole file as a string"},
	{Name: "write_file", Params: []Param{p("path", tStr), p("contents", tStr)}, Return: tVoid, Description: "Write a string to a file"},
	{Name: "sqrt", Params: []Param{p("x", tFloat)}, Return: tFloat, Description: "Square root"},
	{Name: "pow", Params: []Param{p("base", tFloat), p("exp", tFloat)}, Return: tFloat, Description: "Raise base to the power exp"},
	{Name: "floor", Params: []Param{p("x", tFloat)}, Return: tInt, Description: "Round down to an integer"},
	{Name: "ceil", Params: []Param{p("x", tFloat)}, Return: tInt, Description: "Round up to an integer"},
	{Name: "type_of", Params: []Param{p("value", tDynamic)}, Return: tStr, Description: "Name of the runtime type of a value"},
	{Name: "assert", Params: []Param{p("cond", tBool), p("message", tStr)}, Return: tVoid, Description: "Abort when cond is false"},
	{Name: "pml_load_file", Params: []Param{p("path", tStr)}, Return: tDynamic, Description: "Load and parse a PML file"},
	{Name: "pml_parse", Params: []Param{p("source", tStr)}, Return: tDynamic, Description: "Parse PML source text"},
	{Name: "pml_to_string", Params: []Param{p("value", tDynamic)}, Return: tStr, Description: "Serialize a value as PML"},
	{Name: "pml_get", Params: []Param{p("doc", tDynamic), p("path", tStr)}, Return: tDynamic, Description: "Look up a dotted path in a PML document"},
}

var byName = func() map[string]int {
	m := make(map[string]int, len(catalog))
	for i, fn := range catalog {
		m[fn.Name] = i
	}
	return m
}()

// Functions returns the catalog in its fixed order. The slice is a copy;
// the signatures it points to are shared and must not be modified.
func Functions() []Function {
	return slices.Clone(catalog)
}

// Lookup finds a built-in by name.
func Lookup(name string) (Function, bool) {
	i, ok := byName[name]
	if !ok {
		return Function{}, false
	}
	return catalog[i], true
}

// Signature renders `name(p1: t1, p2: t2) -> ret`.
func (f Function) Signature() string {
	s := f.Name + "("
	for i, prm := range f.Params {
		if i > 0 {
			s += ", "
		}
		s += prm.Name + ": " + prm.Type.String()
	}
	return s + ") -> " + f.Return.String()
}
