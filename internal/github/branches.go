package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v57/github"
	"go.uber.org/zap"

	"github.com/clintrovert/forgeops/pkg/types"
)

// ListBranches returns all branches of a repository. Order is whatever the
// remote service returns.
func (c *Client) ListBranches(ctx context.Context, repo types.RepoName) ([]types.Branch, error) {
	owner, name := repo.Split()

	var all []types.Branch
	opts := &github.BranchListOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	for {
		branches, resp, err := c.api.Repositories.ListBranches(ctx, owner, name, opts)
		if err != nil {
			return nil, classify(err, "list branches")
		}

		for _, b := range branches {
			all = append(all, types.Branch{
				Name:      types.BranchName(b.GetName()),
				CommitSHA: types.CommitSHA(b.GetCommit().GetSHA()),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return all, nil
}

// CreateBranch creates a new branch pointing at the given commit. Fails with
// ErrConflict if the branch already exists and ErrValidation if the commit
// SHA is unknown to the service.
func (c *Client) CreateBranch(ctx context.Context, repo types.RepoName, branch types.BranchName, sha types.CommitSHA) (*types.Branch, error) {
	owner, name := repo.Split()

	ref := &github.Reference{
		Ref: github.String("refs/heads/" + branch.String()),
		Object: &github.GitObject{
			SHA: github.String(sha.String()),
		},
	}

	created, _, err := c.api.Git.CreateRef(ctx, owner, name, ref)
	if err != nil {
		return nil, classify(err, "create branch")
	}

	c.logger.Info("created branch",
		zap.String("repo", repo.String()),
		zap.String("branch", branch.String()),
		zap.String("sha", sha.String()),
	)

	return &types.Branch{
		Name:      branch,
		CommitSHA: types.CommitSHA(created.GetObject().GetSHA()),
	}, nil
}

// DeleteBranch deletes a branch. Fails with ErrNotFound if the branch does
// not exist.
func (c *Client) DeleteBranch(ctx context.Context, repo types.RepoName, branch types.BranchName) (*types.StatusResult, error) {
	owner, name := repo.Split()

	_, err := c.api.Git.DeleteRef(ctx, owner, name, "heads/"+branch.String())
	if err != nil {
		return nil, classify(err, "delete branch")
	}

	c.logger.Info("deleted branch",
		zap.String("repo", repo.String()),
		zap.String("branch", branch.String()),
	)

	return &types.StatusResult{
		Message: fmt.Sprintf("branch %s deleted successfully", branch),
	}, nil
}
