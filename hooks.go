package forge

import (
	"context"
)

var (
	epHookList = Endpoint{
		Verb: "GET", Path: "/repos/{owner}/{repo}/hooks", Shape: ShapeSequence,
		Contract: MustContract(CallContract{
			RequiredPositional: []string{"owner", "repo"},
			AllowedOptions:     []string{"per_page", "page"},
		}),
	}

	epHookGet = Endpoint{
		Verb: "GET", Path: "/repos/{owner}/{repo}/hooks/{id}", Shape: ShapeSingle,
		Contract: MustContract(CallContract{
			RequiredPositional: []string{"owner", "repo", "id"},
			ContextCarrying:    []string{"owner", "repo"},
		}),
	}

	epHookCreate = Endpoint{
		Verb: "POST", Path: "/repos/{owner}/{repo}/hooks", Shape: ShapeSingle,
		Contract: MustContract(CallContract{
			RequiredPositional: []string{"owner", "repo"},
			AllowedOptions:     []string{"name", "config", "events", "active"},
			RequiredOptions:    []string{"name", "config"},
			DefaultOptions:     map[string]any{"active": true},
		}),
	}

	epHookEdit = Endpoint{
		Verb: "PATCH", Path: "/repos/{owner}/{repo}/hooks/{id}", Shape: ShapeSingle,
		Contract: MustContract(CallContract{
			RequiredPositional: []string{"owner", "repo", "id"},
			ContextCarrying:    []string{"owner", "repo"},
			AllowedOptions:     []string{"config", "events", "add_events", "remove_events", "active"},
		}),
	}

	epHookDelete = Endpoint{
		Verb: "DELETE", Path: "/repos/{owner}/{repo}/hooks/{id}", Shape: ShapeEmpty,
		Contract: MustContract(CallContract{
			RequiredPositional: []string{"owner", "repo", "id"},
			ContextCarrying:    []string{"owner", "repo"},
		}),
	}

	epHookTest = Endpoint{
		Verb: "POST", Path: "/repos/{owner}/{repo}/hooks/{id}/tests", Shape: ShapeEmpty,
		Contract: MustContract(CallContract{
			RequiredPositional: []string{"owner", "repo", "id"},
			ContextCarrying:    []string{"owner", "repo"},
		}),
	}
)

// HooksService exposes the repository webhook endpoints.
type HooksService struct {
	client *Client
	rctx   *ResourceContext
}

// List lists a repository's webhooks.
func (s *HooksService) List(ctx context.Context, args ...any) ([]Resource, error) {
	return s.client.invokeSequence(ctx, epHookList, s.rctx, splitInvocation(args))
}

// Get fetches a webhook by id.
func (s *HooksService) Get(ctx context.Context, args ...any) (Resource, error) {
	return s.client.invokeSingle(ctx, epHookGet, s.rctx, splitInvocation(args))
}

// Create creates a webhook. Options must include "name" and "config".
func (s *HooksService) Create(ctx context.Context, args ...any) (Resource, error) {
	return s.client.invokeSingle(ctx, epHookCreate, s.rctx, splitInvocation(args))
}

// Edit updates a webhook.
func (s *HooksService) Edit(ctx context.Context, args ...any) (Resource, error) {
	return s.client.invokeSingle(ctx, epHookEdit, s.rctx, splitInvocation(args))
}

// Delete deletes a webhook.
func (s *HooksService) Delete(ctx context.Context, args ...any) error {
	return s.client.invokeEmpty(ctx, epHookDelete, s.rctx, splitInvocation(args))
}

// Test triggers a test delivery for a webhook.
func (s *HooksService) Test(ctx context.Context, args ...any) error {
	return s.client.invokeEmpty(ctx, epHookTest, s.rctx, splitInvocation(args))
}
