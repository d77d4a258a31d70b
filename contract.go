package forge

import (
	"fmt"
	"slices"
)

// CallContract declares, per endpoint, the shape every call must resolve to:
// which positional identifiers are mandatory, which named options are
// understood, which of those are mandatory, and which defaults apply.
// Contracts are declared once per endpoint and never mutated afterwards.
type CallContract struct {
	// RequiredPositional names the mandatory identifiers, in the order
	// callers supply them (e.g. "owner", "repo").
	RequiredPositional []string

	// AllowedOptions is the allow-list for named options. Options outside
	// it are silently dropped.
	AllowedOptions []string

	// RequiredOptions names the options that must be present and non-empty
	// after normalization. Must be a subset of AllowedOptions.
	RequiredOptions []string

	// DefaultOptions are applied before user-supplied options; a caller's
	// value for the same key wins.
	DefaultOptions map[string]any

	// ContextCarrying names the positional identifiers whose resolved
	// values persist in the instance's ResourceContext for later calls.
	// Nil means all of RequiredPositional carry. Transient identifiers
	// (a key id, a branch name) are excluded so they never shadow the
	// scope identifiers on repeated calls.
	ContextCarrying []string
}

// MustContract validates a contract declaration and returns it.
// It panics on structural mistakes: these are programmer errors in endpoint
// declarations, caught the first time the package is loaded.
func MustContract(c CallContract) *CallContract {
	for _, name := range c.RequiredOptions {
		if !slices.Contains(c.AllowedOptions, name) {
			panic(fmt.Sprintf("forge: contract requires option %q that is not in AllowedOptions", name))
		}
	}
	for name := range c.DefaultOptions {
		if !slices.Contains(c.AllowedOptions, name) {
			panic(fmt.Sprintf("forge: contract defaults option %q that is not in AllowedOptions", name))
		}
	}
	for _, name := range c.ContextCarrying {
		if !slices.Contains(c.RequiredPositional, name) {
			panic(fmt.Sprintf("forge: contract carries identifier %q that is not in RequiredPositional", name))
		}
	}
	return &c
}

// carriesContext reports whether a resolved value for name should be
// written back into the instance context.
func (c *CallContract) carriesContext(name string) bool {
	if c.ContextCarrying == nil {
		return true
	}
	return slices.Contains(c.ContextCarrying, name)
}

// allowsOption reports whether name is in the contract's allow-list.
func (c *CallContract) allowsOption(name string) bool {
	return slices.Contains(c.AllowedOptions, name)
}

// ReturnShape declares what an endpoint yields on success.
type ReturnShape int

const (
	// ShapeSingle endpoints return one resource (or NotFound).
	ShapeSingle ReturnShape = iota
	// ShapeSequence endpoints return an ordered list, possibly empty.
	ShapeSequence
	// ShapeEmpty endpoints return nothing on success (deletes, boolean checks).
	ShapeEmpty
)

// Endpoint binds an HTTP verb and path template to a call contract.
// Endpoint values are the entire declarative surface of an API method; the
// method body is a single invoke call.
type Endpoint struct {
	Verb     string // GET, POST, PATCH, PUT, DELETE
	Path     string // template with {name} segments, e.g. "/repos/{owner}/{repo}"
	Contract *CallContract
	Shape    ReturnShape
}

// NormalizedCall is the canonical, validated form of one invocation:
// positional identifiers resolved by name, plus the sifted, defaulted,
// required-checked parameter map. Immutable once produced.
type NormalizedCall struct {
	Positional map[string]string
	Params     map[string]any
}
