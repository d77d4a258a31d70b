package forge

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

var (
	validate      = validator.New()
	schemaEncoder = schema.NewEncoder()
)

// CallInvocation is the tagged form of one loose endpoint call: ordered
// positional identifiers, an optional named-option value, and an optional
// per-element observer for sequence results. Raw argument shape is inspected
// here, once, and nowhere else.
type CallInvocation struct {
	// Args are positional identifiers, consumed left-to-right against the
	// contract. A trailing map is treated as Options.
	Args []any

	// Options is nil, a map (map[string]any, map[string]string, url.Values),
	// or a struct with `schema` tags.
	Options any

	// OnEach, if set, is invoked once per element of a sequence result.
	OnEach func(Resource)
}

// normalize resolves an invocation against a contract and the instance's
// bound context, producing the canonical call. All caller-misuse failures
// surface here, before any request is made.
//
// Positional identifiers missing from Args fall back to rctx; identifiers
// resolved from explicit Args are written back into rctx so later calls on
// the same instance may omit them.
func normalize(contract *CallContract, rctx *ResourceContext, inv CallInvocation) (*NormalizedCall, *Error) {
	args := inv.Args
	options := inv.Options

	// A trailing map (or option struct) is always options, never a
	// positional identifier.
	if len(args) > 0 && isOptionsValue(args[len(args)-1]) {
		if options != nil {
			return nil, NewError(CodeInvalidArgument, "options supplied both positionally and as a named argument")
		}
		options = args[len(args)-1]
		args = args[:len(args)-1]
	}

	if len(args) > len(contract.RequiredPositional) {
		return nil, Errorf(CodeInvalidArgument, "too many positional arguments: got %d, contract declares %d",
			len(args), len(contract.RequiredPositional))
	}

	names := contract.RequiredPositional
	argFor := assignPositional(names, len(args), rctx)

	positional := make(map[string]string, len(names))
	var missing []string
	for i, name := range names {
		if j := argFor[i]; j >= 0 {
			v, err := identifierString(args[j])
			if err != nil {
				return nil, Errorf(CodeInvalidArgument, "positional argument %q: %v", name, err)
			}
			positional[name] = v
			continue
		}
		if v, ok := rctx.Get(name); ok && v != "" {
			positional[name] = v
			continue
		}
		missing = append(missing, name)
	}
	if len(missing) > 0 {
		return nil, Errorf(CodeInvalidArgument, "missing required identifier(s): %s", strings.Join(missing, ", "))
	}

	// Write back identifiers the caller supplied explicitly, but only the
	// ones the contract declares context-carrying. Transient identifiers
	// must not leak into the shared context: a deploy-key id written back
	// would satisfy the fallback on the next call and shadow real scope.
	for i, name := range names {
		if argFor[i] >= 0 && contract.carriesContext(name) {
			rctx.Set(name, positional[name])
		}
	}

	supplied, verr := optionValues(options)
	if verr != nil {
		return nil, verr
	}

	params := make(map[string]any, len(contract.DefaultOptions)+len(supplied))
	for k, v := range contract.DefaultOptions {
		params[k] = v
	}
	// Sift: unknown keys are dropped, not rejected. Forward compatibility
	// with options the server understands before this SDK does.
	for k, v := range supplied {
		if contract.allowsOption(k) {
			params[k] = v
		}
	}

	if verr := assertRequired(params, contract.RequiredOptions); verr != nil {
		return nil, verr
	}

	return &NormalizedCall{Positional: positional, Params: params}, nil
}

// assignPositional decides which declared identifier each explicit argument
// binds to, returning per-name argument indices (-1 for "not supplied").
//
// With as many arguments as names, binding is left-to-right. With fewer,
// arguments bind to the names that lack a context value, in declaration
// order, so a bound instance can take just the trailing identifier
// (keys.Remove(ctx, id)); when arguments outnumber the unbound names they
// rebind the trailing names, since leading names are the stable scope.
func assignPositional(names []string, nargs int, rctx *ResourceContext) []int {
	argFor := make([]int, len(names))
	for i := range argFor {
		argFor[i] = -1
	}

	if nargs >= len(names) {
		for i := range names {
			argFor[i] = i
		}
		return argFor
	}

	var unbound []int
	for i, name := range names {
		if v, ok := rctx.Get(name); !ok || v == "" {
			unbound = append(unbound, i)
		}
	}

	if nargs <= len(unbound) {
		for j := 0; j < nargs; j++ {
			argFor[unbound[j]] = j
		}
		return argFor
	}

	for j := 0; j < nargs; j++ {
		argFor[len(names)-nargs+j] = j
	}
	return argFor
}

// assertRequired checks that every required name is present with a non-empty
// value, reporting every missing name rather than the first.
func assertRequired(params map[string]any, required []string) *Error {
	var missing []string
	for _, name := range required {
		v, ok := params[name]
		if !ok || v == nil || validate.Var(v, "required") != nil {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return Errorf(CodeInvalidArgument, "missing required option(s): %s", strings.Join(missing, ", "))
}

// isOptionsValue reports whether v is one of the forms accepted as options:
// the map forms, or a schema-tagged struct. Identifier types never qualify.
func isOptionsValue(v any) bool {
	switch v.(type) {
	case nil, string, int, int64, fmt.Stringer:
		return false
	case map[string]any, map[string]string, url.Values:
		return true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	return rv.Kind() == reflect.Struct
}

// identifierString coerces a positional argument into a path identifier.
// Maps and other composite values are rejected: a map in a scalar slot is a
// call-shape mistake, not an identifier.
func identifierString(v any) (string, error) {
	switch t := v.(type) {
	case string:
		if t == "" {
			return "", fmt.Errorf("empty identifier")
		}
		return t, nil
	case int:
		return fmt.Sprintf("%d", t), nil
	case int64:
		return fmt.Sprintf("%d", t), nil
	case fmt.Stringer:
		return t.String(), nil
	default:
		return "", fmt.Errorf("cannot use %T as an identifier", v)
	}
}

// optionValues flattens the accepted option forms into one map.
// Structs go through the gorilla/schema encoder so field naming follows the
// same `schema` tags used for query decoding elsewhere in the ecosystem.
func optionValues(options any) (map[string]any, *Error) {
	switch t := options.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, v := range t {
			out[k] = v
		}
		return out, nil
	case map[string]string:
		out := make(map[string]any, len(t))
		for k, v := range t {
			out[k] = v
		}
		return out, nil
	case url.Values:
		out := make(map[string]any, len(t))
		for k, vs := range t {
			if len(vs) > 0 {
				out[k] = vs[0]
			}
		}
		return out, nil
	}

	rv := reflect.ValueOf(options)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return map[string]any{}, nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, Errorf(CodeInvalidArgument, "unsupported options type %T", options)
	}

	encoded := make(map[string][]string)
	if err := schemaEncoder.Encode(rv.Interface(), encoded); err != nil {
		return nil, Errorf(CodeInvalidArgument, "failed to encode options: %v", err)
	}
	out := make(map[string]any, len(encoded))
	for k, vs := range encoded {
		if len(vs) > 0 {
			out[k] = vs[0]
		}
	}
	return out, nil
}
