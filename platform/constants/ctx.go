// Package constants holds the keys shared by the data providers and the
// evaluator.
package constants

// ContextKey is the type of context keys owned by this module.
type ContextKey string

// EvalData is the context key under which a ContextProvider stores the scope
// data of an evaluation.
const EvalData ContextKey = "bindexpr_eval_data"
