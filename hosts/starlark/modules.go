package starlark

import (
	"maps"

	starlarkJSON "go.starlark.net/lib/json"
	starlarkMath "go.starlark.net/lib/math"
	starlarkTime "go.starlark.net/lib/time"
	starlarkLib "go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

const (
	namespaceJSON   = "json"
	namespaceMath   = "math"
	namespaceTime   = "time"
	namespaceStruct = "struct"
)

// standardModules returns a copy of the Starlark universe with the json,
// math and time modules and the struct constructor added.
func standardModules() starlarkLib.StringDict {
	universe := maps.Clone(starlarkLib.Universe)
	universe[namespaceJSON] = starlarkJSON.Module
	universe[namespaceMath] = starlarkMath.Module
	universe[namespaceTime] = starlarkTime.Module
	universe[namespaceStruct] = starlarkLib.NewBuiltin(namespaceStruct, starlarkstruct.Make)
	return universe
}
