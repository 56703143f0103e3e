package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v57/github"
	"go.uber.org/zap"

	"github.com/clintrovert/forgeops/pkg/types"
)

// StarRepository stars a repository for the authenticated user. Starring an
// already-starred repository succeeds.
func (c *Client) StarRepository(ctx context.Context, repo types.RepoName) (*types.StatusResult, error) {
	owner, name := repo.Split()

	_, err := c.api.Activity.Star(ctx, owner, name)
	if err != nil {
		return nil, classify(err, "star repository")
	}

	return &types.StatusResult{
		Message: fmt.Sprintf("repository %s starred successfully", repo),
	}, nil
}

// UnstarRepository removes the authenticated user's star. Unstarring a
// repository that is not starred succeeds.
func (c *Client) UnstarRepository(ctx context.Context, repo types.RepoName) (*types.StatusResult, error) {
	owner, name := repo.Split()

	_, err := c.api.Activity.Unstar(ctx, owner, name)
	if err != nil {
		return nil, classify(err, "unstar repository")
	}

	return &types.StatusResult{
		Message: fmt.Sprintf("repository %s unstarred successfully", repo),
	}, nil
}

// CreateRepository creates a repository under the authenticated account.
// Fails with ErrConflict if the name is already taken.
func (c *Client) CreateRepository(ctx context.Context, name, description string, private bool) (*types.Repository, error) {
	repo, _, err := c.api.Repositories.Create(ctx, "", &github.Repository{
		Name:        github.String(name),
		Description: github.String(description),
		Private:     github.Bool(private),
	})
	if err != nil {
		return nil, classify(err, "create repository")
	}

	c.logger.Info("created repository",
		zap.String("repo", repo.GetFullName()),
		zap.Bool("private", repo.GetPrivate()),
	)

	return convertRepository(repo), nil
}

// DeleteRepository deletes a repository. Irreversible; fails with
// ErrNotFound if the repository does not exist and ErrUnauthorized if the
// caller lacks delete rights.
func (c *Client) DeleteRepository(ctx context.Context, repo types.RepoName) (*types.StatusResult, error) {
	owner, name := repo.Split()

	_, err := c.api.Repositories.Delete(ctx, owner, name)
	if err != nil {
		return nil, classify(err, "delete repository")
	}

	c.logger.Info("deleted repository", zap.String("repo", repo.String()))

	return &types.StatusResult{
		Message: fmt.Sprintf("repository %s deleted successfully", repo),
	}, nil
}

// GetRepositoryInfo retrieves repository details.
func (c *Client) GetRepositoryInfo(ctx context.Context, repo types.RepoName) (*types.Repository, error) {
	owner, name := repo.Split()

	repository, _, err := c.api.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, classify(err, "get repository info")
	}

	return convertRepository(repository), nil
}

func convertRepository(repo *github.Repository) *types.Repository {
	return &types.Repository{
		FullName:      types.RepoName(repo.GetFullName()),
		Description:   repo.GetDescription(),
		Private:       repo.GetPrivate(),
		DefaultBranch: types.BranchName(repo.GetDefaultBranch()),
		Stars:         repo.GetStargazersCount(),
		Forks:         repo.GetForksCount(),
		URL:           repo.GetHTMLURL(),
	}
}
