package forge

// ResourceContext holds identifiers previously bound to a resource instance
// (owner, repo, branch, ...) so later calls on the same instance may omit
// them. It is a plain accessor with last-write-wins semantics and no
// validation of its own.
//
// A ResourceContext belongs to exactly one resource instance and is meant for
// sequential use; guard it externally if an instance must be shared across
// goroutines.
type ResourceContext struct {
	values map[string]string
}

// NewResourceContext creates an empty context.
func NewResourceContext() *ResourceContext {
	return &ResourceContext{values: make(map[string]string)}
}

// Get returns the bound value for name, and whether one is bound.
func (rc *ResourceContext) Get(name string) (string, bool) {
	v, ok := rc.values[name]
	return v, ok
}

// Set binds value under name, replacing any previous binding.
func (rc *ResourceContext) Set(name, value string) {
	rc.values[name] = value
}

// Len returns the number of bound identifiers.
func (rc *ResourceContext) Len() int {
	return len(rc.values)
}
