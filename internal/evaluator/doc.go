// Package evaluator executes postfix programs produced by package compiler
// and formats their results for the calculator display.
//
// EvaluateExpression is the single entry point callers outside the engine
// need: it composes compiler.Compile and Evaluate and rejects non-finite
// results. Every failure is returned, never recovered; package engine is the
// only place that turns an error into display state.
package evaluator
