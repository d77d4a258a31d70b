package forge

import (
	"context"
)

var (
	epKeyList = Endpoint{
		Verb: "GET", Path: "/repos/{owner}/{repo}/keys", Shape: ShapeSequence,
		Contract: MustContract(CallContract{
			RequiredPositional: []string{"owner", "repo"},
			AllowedOptions:     []string{"per_page", "page"},
		}),
	}

	epKeyGet = Endpoint{
		Verb: "GET", Path: "/repos/{owner}/{repo}/keys/{id}", Shape: ShapeSingle,
		Contract: MustContract(CallContract{
			RequiredPositional: []string{"owner", "repo", "id"},
			ContextCarrying:    []string{"owner", "repo"},
		}),
	}

	epKeyAdd = Endpoint{
		Verb: "POST", Path: "/repos/{owner}/{repo}/keys", Shape: ShapeSingle,
		Contract: MustContract(CallContract{
			RequiredPositional: []string{"owner", "repo"},
			AllowedOptions:     []string{"title", "key", "read_only"},
			RequiredOptions:    []string{"title", "key"},
		}),
	}

	epKeyRemove = Endpoint{
		Verb: "DELETE", Path: "/repos/{owner}/{repo}/keys/{id}", Shape: ShapeEmpty,
		Contract: MustContract(CallContract{
			RequiredPositional: []string{"owner", "repo", "id"},
			ContextCarrying:    []string{"owner", "repo"},
		}),
	}
)

// KeysService exposes the repository deploy-key endpoints.
type KeysService struct {
	client *Client
	rctx   *ResourceContext
}

// List lists a repository's deploy keys.
func (s *KeysService) List(ctx context.Context, args ...any) ([]Resource, error) {
	return s.client.invokeSequence(ctx, epKeyList, s.rctx, splitInvocation(args))
}

// Get fetches a deploy key by id.
func (s *KeysService) Get(ctx context.Context, args ...any) (Resource, error) {
	return s.client.invokeSingle(ctx, epKeyGet, s.rctx, splitInvocation(args))
}

// Add registers a deploy key. Options must include "title" and "key".
func (s *KeysService) Add(ctx context.Context, args ...any) (Resource, error) {
	return s.client.invokeSingle(ctx, epKeyAdd, s.rctx, splitInvocation(args))
}

// Remove deletes a deploy key.
func (s *KeysService) Remove(ctx context.Context, args ...any) error {
	return s.client.invokeEmpty(ctx, epKeyRemove, s.rctx, splitInvocation(args))
}
