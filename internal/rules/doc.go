// Package rules implements the fixed table of optimization rules applied to
// a single recipe. Each rule is a plain function of
// (recipe, manifest?, ignore, oracle?) that appends to a shared result;
// rules never interact except through the Recipe they're all handed, and
// the engine runs them in a fixed order.
package rules
