// Package forge is a client SDK for the Forge hosted source-control API.
//
// Endpoint methods accept loose call shapes: positional identifiers, an
// optional trailing options map (or schema-tagged struct), and an optional
// trailing per-element observer func(Resource). Every call is resolved
// against a declared contract, validated, dispatched, and mapped into a
// Resource value, an ordered []Resource, or a typed *Error.
//
//	client := forge.New(token)
//	repo := client.Repo("acme", "widget")
//	branches, err := repo.Branches(ctx, map[string]any{"protected": true})
package forge

import (
	"log/slog"
)

// DefaultBaseURL is the production Forge API endpoint.
const DefaultBaseURL = "https://api.forgehub.dev"

// Client is the entry point for the SDK. It owns the transport, the
// interceptor chain, and the resource service registry, which is built once
// at construction rather than lazily on first access.
type Client struct {
	transport    Transport
	logger       *slog.Logger
	interceptors []UnaryInterceptor

	repos         *ReposService
	collaborators *CollaboratorsService
	hooks         *HooksService
	keys          *KeysService
}

// New creates a client for the production API using the default HTTP
// transport. Token may be empty for unauthenticated access.
func New(token string) *Client {
	return NewClient(NewHTTPTransport(DefaultBaseURL, token))
}

// NewClient creates a client over the given transport. Use this to point the
// SDK at a different deployment or to substitute a test transport.
func NewClient(transport Transport) *Client {
	c := &Client{transport: transport}
	c.repos = &ReposService{client: c, rctx: NewResourceContext()}
	c.collaborators = &CollaboratorsService{client: c, rctx: NewResourceContext()}
	c.hooks = &HooksService{client: c, rctx: NewResourceContext()}
	c.keys = &KeysService{client: c, rctx: NewResourceContext()}
	return c
}

// WithLogger sets a custom logger. If not set, slog.Default() is used.
// It returns the client for chaining.
func (c *Client) WithLogger(logger *slog.Logger) *Client {
	c.logger = logger
	return c
}

// WithUnaryInterceptor adds an interceptor around every dispatched request.
// Interceptors execute in the order added (first added is outermost).
// It returns the client for chaining.
func (c *Client) WithUnaryInterceptor(i UnaryInterceptor) *Client {
	c.interceptors = append(c.interceptors, i)
	return c
}

// log returns the configured logger, or slog.Default().
func (c *Client) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.Default()
}

// Repos returns the repository service.
func (c *Client) Repos() *ReposService { return c.repos }

// Collaborators returns the collaborator service.
func (c *Client) Collaborators() *CollaboratorsService { return c.collaborators }

// Hooks returns the webhook service.
func (c *Client) Hooks() *HooksService { return c.hooks }

// Keys returns the deploy-key service.
func (c *Client) Keys() *KeysService { return c.keys }

// Repo returns a resource instance bound to owner/name. Calls on the
// returned value may omit both identifiers; supplying new ones rebinds the
// defaults for subsequent calls on the same instance.
func (c *Client) Repo(owner, name string) *Repo {
	rctx := NewResourceContext()
	rctx.Set("owner", owner)
	rctx.Set("repo", name)
	return &Repo{
		client:        c,
		rctx:          rctx,
		collaborators: &CollaboratorsService{client: c, rctx: rctx},
		hooks:         &HooksService{client: c, rctx: rctx},
		keys:          &KeysService{client: c, rctx: rctx},
	}
}

// splitInvocation separates a loose argument list into invocation parts: a
// trailing func(Resource) is the per-element observer. The trailing options
// map is left in place for the normalizer, which owns that disambiguation.
func splitInvocation(args []any) CallInvocation {
	inv := CallInvocation{}
	if n := len(args); n > 0 {
		if fn, ok := args[n-1].(func(Resource)); ok {
			inv.OnEach = fn
			args = args[:n-1]
		}
	}
	inv.Args = args
	return inv
}
