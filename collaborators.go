package forge

import (
	"context"
)

var (
	epCollabList = Endpoint{
		Verb: "GET", Path: "/repos/{owner}/{repo}/collaborators", Shape: ShapeSequence,
		Contract: MustContract(CallContract{
			RequiredPositional: []string{"owner", "repo"},
			AllowedOptions:     []string{"affiliation", "per_page", "page"},
		}),
	}

	epCollabCheck = Endpoint{
		Verb: "GET", Path: "/repos/{owner}/{repo}/collaborators/{username}", Shape: ShapeEmpty,
		Contract: MustContract(CallContract{
			RequiredPositional: []string{"owner", "repo", "username"},
			ContextCarrying:    []string{"owner", "repo"},
		}),
	}

	epCollabAdd = Endpoint{
		Verb: "PUT", Path: "/repos/{owner}/{repo}/collaborators/{username}", Shape: ShapeSingle,
		Contract: MustContract(CallContract{
			RequiredPositional: []string{"owner", "repo", "username"},
			ContextCarrying:    []string{"owner", "repo"},
			AllowedOptions:     []string{"permission"},
			DefaultOptions:     map[string]any{"permission": "push"},
		}),
	}

	epCollabRemove = Endpoint{
		Verb: "DELETE", Path: "/repos/{owner}/{repo}/collaborators/{username}", Shape: ShapeEmpty,
		Contract: MustContract(CallContract{
			RequiredPositional: []string{"owner", "repo", "username"},
			ContextCarrying:    []string{"owner", "repo"},
		}),
	}
)

// CollaboratorsService exposes the repository collaborator endpoints.
type CollaboratorsService struct {
	client *Client
	rctx   *ResourceContext
}

// List lists a repository's collaborators.
func (s *CollaboratorsService) List(ctx context.Context, args ...any) ([]Resource, error) {
	return s.client.invokeSequence(ctx, epCollabList, s.rctx, splitInvocation(args))
}

// IsCollaborator reports whether username is a collaborator. The API answers
// 204 for yes and 404 for no; only the 404 maps to a false result rather
// than an error.
func (s *CollaboratorsService) IsCollaborator(ctx context.Context, args ...any) (bool, error) {
	err := s.client.invokeEmpty(ctx, epCollabCheck, s.rctx, splitInvocation(args))
	if err == nil {
		return true, nil
	}
	if IsNotFound(err) {
		return false, nil
	}
	return false, err
}

// Add invites username as a collaborator. Permission defaults to "push".
func (s *CollaboratorsService) Add(ctx context.Context, args ...any) (Resource, error) {
	return s.client.invokeSingle(ctx, epCollabAdd, s.rctx, splitInvocation(args))
}

// Remove removes username as a collaborator.
func (s *CollaboratorsService) Remove(ctx context.Context, args ...any) error {
	return s.client.invokeEmpty(ctx, epCollabRemove, s.rctx, splitInvocation(args))
}
