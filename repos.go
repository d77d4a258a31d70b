package forge

import (
	"context"
)

// Endpoint table for the repository surface. Contracts are validated once,
// at package load.
var (
	epRepoList = Endpoint{
		Verb: "GET", Path: "/user/repos", Shape: ShapeSequence,
		Contract: MustContract(CallContract{
			AllowedOptions: []string{"type", "sort", "direction", "per_page", "page"},
		}),
	}

	epRepoListFor = Endpoint{
		Verb: "GET", Path: "/users/{user}/repos", Shape: ShapeSequence,
		Contract: MustContract(CallContract{
			RequiredPositional: []string{"user"},
			AllowedOptions:     []string{"type", "sort", "direction", "per_page", "page"},
		}),
	}

	epRepoGet = Endpoint{
		Verb: "GET", Path: "/repos/{owner}/{repo}", Shape: ShapeSingle,
		Contract: MustContract(CallContract{
			RequiredPositional: []string{"owner", "repo"},
		}),
	}

	epRepoCreate = Endpoint{
		Verb: "POST", Path: "/user/repos", Shape: ShapeSingle,
		Contract: MustContract(CallContract{
			AllowedOptions: []string{
				"name", "description", "homepage", "private",
				"has_issues", "has_wiki", "has_downloads", "auto_init",
			},
			RequiredOptions: []string{"name"},
			DefaultOptions:  map[string]any{"private": false},
		}),
	}

	epRepoEdit = Endpoint{
		Verb: "PATCH", Path: "/repos/{owner}/{repo}", Shape: ShapeSingle,
		Contract: MustContract(CallContract{
			RequiredPositional: []string{"owner", "repo"},
			AllowedOptions: []string{
				"name", "description", "homepage", "private", "default_branch",
			},
		}),
	}

	epRepoDelete = Endpoint{
		Verb: "DELETE", Path: "/repos/{owner}/{repo}", Shape: ShapeEmpty,
		Contract: MustContract(CallContract{
			RequiredPositional: []string{"owner", "repo"},
		}),
	}

	epRepoFork = Endpoint{
		Verb: "POST", Path: "/repos/{owner}/{repo}/forks", Shape: ShapeSingle,
		Contract: MustContract(CallContract{
			RequiredPositional: []string{"owner", "repo"},
			AllowedOptions:     []string{"organization"},
		}),
	}

	epRepoBranches = Endpoint{
		Verb: "GET", Path: "/repos/{owner}/{repo}/branches", Shape: ShapeSequence,
		Contract: MustContract(CallContract{
			RequiredPositional: []string{"owner", "repo"},
			AllowedOptions:     []string{"protected", "per_page", "page"},
		}),
	}

	epRepoBranch = Endpoint{
		Verb: "GET", Path: "/repos/{owner}/{repo}/branches/{branch}", Shape: ShapeSingle,
		Contract: MustContract(CallContract{
			RequiredPositional: []string{"owner", "repo", "branch"},
			ContextCarrying:    []string{"owner", "repo"},
		}),
	}

	epRepoContributors = Endpoint{
		Verb: "GET", Path: "/repos/{owner}/{repo}/contributors", Shape: ShapeSequence,
		Contract: MustContract(CallContract{
			RequiredPositional: []string{"owner", "repo"},
			AllowedOptions:     []string{"anon", "per_page", "page"},
		}),
	}

	epRepoLanguages = Endpoint{
		Verb: "GET", Path: "/repos/{owner}/{repo}/languages", Shape: ShapeSingle,
		Contract: MustContract(CallContract{
			RequiredPositional: []string{"owner", "repo"},
		}),
	}

	epRepoTags = Endpoint{
		Verb: "GET", Path: "/repos/{owner}/{repo}/tags", Shape: ShapeSequence,
		Contract: MustContract(CallContract{
			RequiredPositional: []string{"owner", "repo"},
			AllowedOptions:     []string{"per_page", "page"},
		}),
	}

	epRepoTeams = Endpoint{
		Verb: "GET", Path: "/repos/{owner}/{repo}/teams", Shape: ShapeSequence,
		Contract: MustContract(CallContract{
			RequiredPositional: []string{"owner", "repo"},
		}),
	}

	epRepoStargazers = Endpoint{
		Verb: "GET", Path: "/repos/{owner}/{repo}/stargazers", Shape: ShapeSequence,
		Contract: MustContract(CallContract{
			RequiredPositional: []string{"owner", "repo"},
			AllowedOptions:     []string{"per_page", "page"},
		}),
	}
)

// CreateRepoOptions is the typed options form for ReposService.Create.
// A map[string]any with the same keys works equally well.
type CreateRepoOptions struct {
	Name         string `schema:"name"`
	Description  string `schema:"description,omitempty"`
	Homepage     string `schema:"homepage,omitempty"`
	Private      bool   `schema:"private"`
	HasIssues    bool   `schema:"has_issues,omitempty"`
	HasWiki      bool   `schema:"has_wiki,omitempty"`
	HasDownloads bool   `schema:"has_downloads,omitempty"`
	AutoInit     bool   `schema:"auto_init,omitempty"`
}

// ListRepoOptions is the typed options form for the repository list calls.
type ListRepoOptions struct {
	Type      string `schema:"type,omitempty"`
	Sort      string `schema:"sort,omitempty"`
	Direction string `schema:"direction,omitempty"`
	PerPage   int    `schema:"per_page,omitempty"`
	Page      int    `schema:"page,omitempty"`
}

// ReposService exposes the repository endpoints. Identifiers resolved on one
// call are remembered by the service instance for subsequent calls.
type ReposService struct {
	client *Client
	rctx   *ResourceContext
}

// List lists repositories for the authenticated user. Accepts an optional
// trailing options map or ListRepoOptions.
func (s *ReposService) List(ctx context.Context, args ...any) ([]Resource, error) {
	return s.client.invokeSequence(ctx, epRepoList, s.rctx, splitInvocation(args))
}

// All is an alias for List.
func (s *ReposService) All(ctx context.Context, args ...any) ([]Resource, error) {
	return s.List(ctx, args...)
}

// ListFor lists repositories for the given user.
func (s *ReposService) ListFor(ctx context.Context, args ...any) ([]Resource, error) {
	return s.client.invokeSequence(ctx, epRepoListFor, s.rctx, splitInvocation(args))
}

// Get fetches a single repository by owner and name.
func (s *ReposService) Get(ctx context.Context, args ...any) (Resource, error) {
	return s.client.invokeSingle(ctx, epRepoGet, s.rctx, splitInvocation(args))
}

// Create creates a repository for the authenticated user. The options must
// include "name".
func (s *ReposService) Create(ctx context.Context, opts any) (Resource, error) {
	return s.client.invokeSingle(ctx, epRepoCreate, s.rctx, CallInvocation{Options: opts})
}

// Edit updates repository settings.
func (s *ReposService) Edit(ctx context.Context, args ...any) (Resource, error) {
	return s.client.invokeSingle(ctx, epRepoEdit, s.rctx, splitInvocation(args))
}

// Delete deletes a repository.
func (s *ReposService) Delete(ctx context.Context, args ...any) error {
	return s.client.invokeEmpty(ctx, epRepoDelete, s.rctx, splitInvocation(args))
}

// Remove is an alias for Delete.
func (s *ReposService) Remove(ctx context.Context, args ...any) error {
	return s.Delete(ctx, args...)
}

// Fork forks a repository for the authenticated user.
func (s *ReposService) Fork(ctx context.Context, args ...any) (Resource, error) {
	return s.client.invokeSingle(ctx, epRepoFork, s.rctx, splitInvocation(args))
}

// Branches lists a repository's branches. A trailing func(Resource) observes
// each branch in order.
func (s *ReposService) Branches(ctx context.Context, args ...any) ([]Resource, error) {
	return s.client.invokeSequence(ctx, epRepoBranches, s.rctx, splitInvocation(args))
}

// Branch fetches a single branch.
func (s *ReposService) Branch(ctx context.Context, args ...any) (Resource, error) {
	return s.client.invokeSingle(ctx, epRepoBranch, s.rctx, splitInvocation(args))
}

// Contributors lists a repository's contributors.
func (s *ReposService) Contributors(ctx context.Context, args ...any) ([]Resource, error) {
	return s.client.invokeSequence(ctx, epRepoContributors, s.rctx, splitInvocation(args))
}

// Languages fetches the language byte counts of a repository.
func (s *ReposService) Languages(ctx context.Context, args ...any) (Resource, error) {
	return s.client.invokeSingle(ctx, epRepoLanguages, s.rctx, splitInvocation(args))
}

// Tags lists a repository's tags.
func (s *ReposService) Tags(ctx context.Context, args ...any) ([]Resource, error) {
	return s.client.invokeSequence(ctx, epRepoTags, s.rctx, splitInvocation(args))
}

// Teams lists the teams with access to a repository.
func (s *ReposService) Teams(ctx context.Context, args ...any) ([]Resource, error) {
	return s.client.invokeSequence(ctx, epRepoTeams, s.rctx, splitInvocation(args))
}

// Stargazers lists the users who starred a repository.
func (s *ReposService) Stargazers(ctx context.Context, args ...any) ([]Resource, error) {
	return s.client.invokeSequence(ctx, epRepoStargazers, s.rctx, splitInvocation(args))
}

// Repo is a resource instance bound to a particular owner/repo pair. All
// calls may omit the identifiers; explicit identifiers rebind the instance.
// Sub-resource services share the instance's bound context.
type Repo struct {
	client *Client
	rctx   *ResourceContext

	collaborators *CollaboratorsService
	hooks         *HooksService
	keys          *KeysService
}

// Get fetches the bound repository.
func (r *Repo) Get(ctx context.Context, args ...any) (Resource, error) {
	return r.client.invokeSingle(ctx, epRepoGet, r.rctx, splitInvocation(args))
}

// Edit updates settings of the bound repository.
func (r *Repo) Edit(ctx context.Context, args ...any) (Resource, error) {
	return r.client.invokeSingle(ctx, epRepoEdit, r.rctx, splitInvocation(args))
}

// Delete deletes the bound repository.
func (r *Repo) Delete(ctx context.Context, args ...any) error {
	return r.client.invokeEmpty(ctx, epRepoDelete, r.rctx, splitInvocation(args))
}

// Fork forks the bound repository.
func (r *Repo) Fork(ctx context.Context, args ...any) (Resource, error) {
	return r.client.invokeSingle(ctx, epRepoFork, r.rctx, splitInvocation(args))
}

// Branches lists the branches of the bound repository.
func (r *Repo) Branches(ctx context.Context, args ...any) ([]Resource, error) {
	return r.client.invokeSequence(ctx, epRepoBranches, r.rctx, splitInvocation(args))
}

// Branch fetches one branch of the bound repository.
func (r *Repo) Branch(ctx context.Context, args ...any) (Resource, error) {
	return r.client.invokeSingle(ctx, epRepoBranch, r.rctx, splitInvocation(args))
}

// Contributors lists the contributors of the bound repository.
func (r *Repo) Contributors(ctx context.Context, args ...any) ([]Resource, error) {
	return r.client.invokeSequence(ctx, epRepoContributors, r.rctx, splitInvocation(args))
}

// Languages fetches the language byte counts of the bound repository.
func (r *Repo) Languages(ctx context.Context, args ...any) (Resource, error) {
	return r.client.invokeSingle(ctx, epRepoLanguages, r.rctx, splitInvocation(args))
}

// Tags lists the tags of the bound repository.
func (r *Repo) Tags(ctx context.Context, args ...any) ([]Resource, error) {
	return r.client.invokeSequence(ctx, epRepoTags, r.rctx, splitInvocation(args))
}

// Teams lists the teams with access to the bound repository.
func (r *Repo) Teams(ctx context.Context, args ...any) ([]Resource, error) {
	return r.client.invokeSequence(ctx, epRepoTeams, r.rctx, splitInvocation(args))
}

// Stargazers lists the users who starred the bound repository.
func (r *Repo) Stargazers(ctx context.Context, args ...any) ([]Resource, error) {
	return r.client.invokeSequence(ctx, epRepoStargazers, r.rctx, splitInvocation(args))
}

// Collaborators returns the collaborator service bound to this repository.
func (r *Repo) Collaborators() *CollaboratorsService { return r.collaborators }

// Hooks returns the webhook service bound to this repository.
func (r *Repo) Hooks() *HooksService { return r.hooks }

// Keys returns the deploy-key service bound to this repository.
func (r *Repo) Keys() *KeysService { return r.keys }
