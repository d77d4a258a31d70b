package forge

import (
	"net/url"
	"reflect"
	"strings"
	"testing"
)

var testContract = MustContract(CallContract{
	RequiredPositional: []string{"owner", "repo"},
	AllowedOptions:     []string{"protected", "per_page", "page"},
})

func TestNormalizePositional(t *testing.T) {
	rc := NewResourceContext()
	call, err := normalize(testContract, rc, CallInvocation{Args: []any{"acme", "widget"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]string{"owner": "acme", "repo": "widget"}
	if !reflect.DeepEqual(call.Positional, want) {
		t.Errorf("expected %v, got %v", want, call.Positional)
	}
	if len(call.Params) != 0 {
		t.Errorf("expected no params, got %v", call.Params)
	}
}

func TestNormalizeContextFallback(t *testing.T) {
	rc := NewResourceContext()
	rc.Set("owner", "acme")
	rc.Set("repo", "widget")

	call, err := normalize(testContract, rc, CallInvocation{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if call.Positional["owner"] != "acme" || call.Positional["repo"] != "widget" {
		t.Errorf("expected context fallback, got %v", call.Positional)
	}
}

func TestNormalizeWriteBack(t *testing.T) {
	rc := NewResourceContext()
	if _, err := normalize(testContract, rc, CallInvocation{Args: []any{"acme", "widget"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A later call on the same instance may omit the identifiers.
	call, err := normalize(testContract, rc, CallInvocation{})
	if err != nil {
		t.Fatalf("expected bound identifiers to be reused, got error: %v", err)
	}
	if call.Positional["owner"] != "acme" {
		t.Errorf("expected owner written back, got %v", call.Positional)
	}
}

func TestNormalizeMissingIdentifiers(t *testing.T) {
	rc := NewResourceContext()
	_, err := normalize(testContract, rc, CallInvocation{Args: []any{"acme"}})
	if err == nil {
		t.Fatal("expected error for missing identifier")
	}
	if err.Code != CodeInvalidArgument {
		t.Errorf("expected %s, got %s", CodeInvalidArgument, err.Code)
	}
	if !strings.Contains(err.Message, "repo") {
		t.Errorf("expected message to name the missing identifier, got %q", err.Message)
	}
}

func TestNormalizeMissingIdentifiersListsAll(t *testing.T) {
	rc := NewResourceContext()
	_, err := normalize(testContract, rc, CallInvocation{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Message, "owner") || !strings.Contains(err.Message, "repo") {
		t.Errorf("expected every missing identifier listed, got %q", err.Message)
	}
}

func TestNormalizeTrailingMap(t *testing.T) {
	rc := NewResourceContext()
	call, err := normalize(testContract, rc, CallInvocation{
		Args: []any{"acme", "widget", map[string]any{"protected": true}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if call.Params["protected"] != true {
		t.Errorf("expected trailing map treated as options, got %v", call.Params)
	}
}

func TestNormalizeTrailingMapWinsOverPositionalSlot(t *testing.T) {
	// The map fills the last positional slot by count, but a trailing map is
	// always options; the identifier must come from context instead.
	rc := NewResourceContext()
	rc.Set("repo", "widget")

	call, err := normalize(testContract, rc, CallInvocation{
		Args: []any{"acme", map[string]any{"page": 2}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if call.Positional["repo"] != "widget" {
		t.Errorf("expected repo from context, got %v", call.Positional)
	}
	if call.Params["page"] != 2 {
		t.Errorf("expected page option, got %v", call.Params)
	}
}

func TestNormalizeOptionsSuppliedTwice(t *testing.T) {
	rc := NewResourceContext()
	_, err := normalize(testContract, rc, CallInvocation{
		Args:    []any{"acme", "widget", map[string]any{"page": 2}},
		Options: map[string]any{"page": 3},
	})
	if err == nil || err.Code != CodeInvalidArgument {
		t.Fatalf("expected invalid_argument, got %v", err)
	}
}

func TestNormalizeTooManyArgs(t *testing.T) {
	rc := NewResourceContext()
	_, err := normalize(testContract, rc, CallInvocation{Args: []any{"acme", "widget", "extra"}})
	if err == nil || err.Code != CodeInvalidArgument {
		t.Fatalf("expected invalid_argument, got %v", err)
	}
}

func TestNormalizeWrongShapePositional(t *testing.T) {
	rc := NewResourceContext()
	_, err := normalize(testContract, rc, CallInvocation{
		Args: []any{map[string]any{"oops": true}, "widget"},
	})
	if err == nil || err.Code != CodeInvalidArgument {
		t.Fatalf("expected invalid_argument for map used as identifier, got %v", err)
	}
}

func TestNormalizeSiftDropsUnknownKeys(t *testing.T) {
	rc := NewResourceContext()
	call, err := normalize(testContract, rc, CallInvocation{
		Args:    []any{"acme", "widget"},
		Options: map[string]any{"protected": true, "color": "red", "frobnicate": 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := call.Params["color"]; ok {
		t.Error("expected unknown key color to be dropped")
	}
	if _, ok := call.Params["frobnicate"]; ok {
		t.Error("expected unknown key frobnicate to be dropped")
	}
	if call.Params["protected"] != true {
		t.Errorf("expected allowed key kept, got %v", call.Params)
	}
}

func TestNormalizeDefaultsAndOverrides(t *testing.T) {
	contract := MustContract(CallContract{
		AllowedOptions: []string{"permission", "page"},
		DefaultOptions: map[string]any{"permission": "push"},
	})

	tests := []struct {
		name    string
		options any
		want    any
	}{
		{"default applies", nil, "push"},
		{"user value wins", map[string]any{"permission": "admin"}, "admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call, err := normalize(contract, NewResourceContext(), CallInvocation{Options: tt.options})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if call.Params["permission"] != tt.want {
				t.Errorf("expected %v, got %v", tt.want, call.Params["permission"])
			}
		})
	}
}

func TestNormalizeRequiredOptions(t *testing.T) {
	contract := MustContract(CallContract{
		AllowedOptions:  []string{"title", "key", "read_only"},
		RequiredOptions: []string{"title", "key"},
	})

	tests := []struct {
		name    string
		options any
		missing []string
	}{
		{"all missing", nil, []string{"key", "title"}},
		{"one missing", map[string]any{"title": "deploy"}, []string{"key"}},
		{"empty value counts as missing", map[string]any{"title": "", "key": "ssh-ed25519 abc"}, []string{"title"}},
		{"nil value counts as missing", map[string]any{"title": nil, "key": "ssh-ed25519 abc"}, []string{"title"}},
		{"all present", map[string]any{"title": "deploy", "key": "ssh-ed25519 abc"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := normalize(contract, NewResourceContext(), CallInvocation{Options: tt.options})
			if len(tt.missing) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Code != CodeInvalidArgument {
				t.Errorf("expected %s, got %s", CodeInvalidArgument, err.Code)
			}
			for _, name := range tt.missing {
				if !strings.Contains(err.Message, name) {
					t.Errorf("expected message to list %q, got %q", name, err.Message)
				}
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	rc := NewResourceContext()
	rc.Set("owner", "acme")
	rc.Set("repo", "widget")
	inv := CallInvocation{Options: map[string]any{"protected": true}}

	first, err := normalize(testContract, rc, inv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := normalize(testContract, rc, inv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected structurally equal calls, got %v and %v", first, second)
	}
}

func TestNormalizeStructOptions(t *testing.T) {
	rc := NewResourceContext()
	call, err := normalize(testContract, rc, CallInvocation{
		Args: []any{"acme", "widget"},
		Options: struct {
			Protected bool   `schema:"protected"`
			PerPage   int    `schema:"per_page,omitempty"`
			Color     string `schema:"color,omitempty"`
		}{Protected: true, PerPage: 50, Color: "red"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if call.Params["protected"] != "true" {
		t.Errorf("expected protected from struct, got %v", call.Params)
	}
	if call.Params["per_page"] != "50" {
		t.Errorf("expected per_page from struct, got %v", call.Params)
	}
	if _, ok := call.Params["color"]; ok {
		t.Error("expected unknown struct field to be sifted out")
	}
}

func TestNormalizeTrailingStructOptions(t *testing.T) {
	rc := NewResourceContext()
	call, err := normalize(testContract, rc, CallInvocation{
		Args: []any{"acme", "widget", &ListRepoOptions{PerPage: 10}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if call.Params["per_page"] != "10" {
		t.Errorf("expected trailing struct treated as options, got %v", call.Params)
	}
}

func TestNormalizeURLValuesOptions(t *testing.T) {
	rc := NewResourceContext()
	call, err := normalize(testContract, rc, CallInvocation{
		Args:    []any{"acme", "widget"},
		Options: url.Values{"page": {"3"}, "bogus": {"x"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if call.Params["page"] != "3" {
		t.Errorf("expected page from url.Values, got %v", call.Params)
	}
	if _, ok := call.Params["bogus"]; ok {
		t.Error("expected unknown url.Values key to be sifted out")
	}
}

func TestNormalizeTailIdentifierBindsUnboundName(t *testing.T) {
	// On a bound instance, a single explicit value goes to the identifier
	// without a context binding, not to the leftmost name.
	contract := MustContract(CallContract{RequiredPositional: []string{"owner", "repo", "id"}})
	rc := NewResourceContext()
	rc.Set("owner", "acme")
	rc.Set("repo", "widget")

	call, err := normalize(contract, rc, CallInvocation{Args: []any{12}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if call.Positional["id"] != "12" || call.Positional["owner"] != "acme" {
		t.Errorf("expected id bound from arg, got %v", call.Positional)
	}
}

func TestNormalizeRebindTrailingWhenFullyBound(t *testing.T) {
	// With every identifier already bound, explicit values rebind the
	// trailing names; the leading names are the stable scope.
	rc := NewResourceContext()
	rc.Set("owner", "acme")
	rc.Set("repo", "widget")

	call, err := normalize(testContract, rc, CallInvocation{Args: []any{"gadget"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if call.Positional["owner"] != "acme" || call.Positional["repo"] != "gadget" {
		t.Errorf("unexpected binding: %v", call.Positional)
	}
	if v, _ := rc.Get("repo"); v != "gadget" {
		t.Errorf("expected repo rebound in context, got %q", v)
	}
}

func TestNormalizeTransientIdentifierNotWrittenBack(t *testing.T) {
	// Identifiers outside ContextCarrying never persist: the id from one
	// call must not satisfy the fallback on the next.
	contract := MustContract(CallContract{
		RequiredPositional: []string{"owner", "repo", "id"},
		ContextCarrying:    []string{"owner", "repo"},
	})
	rc := NewResourceContext()
	rc.Set("owner", "acme")
	rc.Set("repo", "widget")

	if _, err := normalize(contract, rc, CallInvocation{Args: []any{12}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := rc.Get("id"); ok {
		t.Fatal("expected transient id to stay out of the context")
	}

	call, err := normalize(contract, rc, CallInvocation{Args: []any{13}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]string{"owner": "acme", "repo": "widget", "id": "13"}
	if !reflect.DeepEqual(call.Positional, want) {
		t.Errorf("expected %v, got %v", want, call.Positional)
	}
}

func TestNormalizeIntIdentifier(t *testing.T) {
	contract := MustContract(CallContract{RequiredPositional: []string{"owner", "repo", "id"}})
	rc := NewResourceContext()
	call, err := normalize(contract, rc, CallInvocation{Args: []any{"acme", "widget", 42}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if call.Positional["id"] != "42" {
		t.Errorf("expected numeric identifier coerced, got %v", call.Positional)
	}
}

func TestNormalizeUnsupportedOptionsType(t *testing.T) {
	rc := NewResourceContext()
	_, err := normalize(testContract, rc, CallInvocation{
		Args:    []any{"acme", "widget"},
		Options: 17,
	})
	if err == nil || err.Code != CodeInvalidArgument {
		t.Fatalf("expected invalid_argument, got %v", err)
	}
}
