package github

import (
	"context"

	"github.com/google/go-github/v57/github"
	"go.uber.org/zap"

	"github.com/clintrovert/forgeops/pkg/types"
)

// CreatePullRequest opens a pull request merging head into base. Fails with
// ErrValidation if either branch is invalid or there is no diff between them.
func (c *Client) CreatePullRequest(ctx context.Context, repo types.RepoName, title types.PRTitle, head, base types.BranchName, body string) (*types.PullRequest, error) {
	owner, name := repo.Split()

	newPR := &github.NewPullRequest{
		Title: github.String(title.String()),
		Head:  github.String(head.String()),
		Base:  github.String(base.String()),
		Body:  github.String(body),
	}

	pr, _, err := c.api.PullRequests.Create(ctx, owner, name, newPR)
	if err != nil {
		return nil, classify(err, "create pull request")
	}

	c.logger.Info("created pull request",
		zap.String("repo", repo.String()),
		zap.Int("pr_number", pr.GetNumber()),
		zap.String("pr_url", pr.GetHTMLURL()),
	)

	return convertPullRequest(pr), nil
}

// ListPullRequests lists pull requests filtered by state ("open" when empty).
func (c *Client) ListPullRequests(ctx context.Context, repo types.RepoName, state types.PRState) ([]types.PullRequest, error) {
	owner, name := repo.Split()
	if state == "" {
		state = types.PRStateOpen
	}
	if err := state.Validate(); err != nil {
		return nil, err
	}

	prs, _, err := c.api.PullRequests.List(ctx, owner, name, &github.PullRequestListOptions{
		State:       state.String(),
		ListOptions: github.ListOptions{PerPage: 100},
	})
	if err != nil {
		return nil, classify(err, "list pull requests")
	}

	result := make([]types.PullRequest, 0, len(prs))
	for _, pr := range prs {
		result = append(result, *convertPullRequest(pr))
	}

	return result, nil
}

// MergePullRequest merges a pull request with the given commit message.
// Fails with ErrConflict when the PR is unmergeable or already merged.
func (c *Client) MergePullRequest(ctx context.Context, repo types.RepoName, number types.PRNumber, message types.CommitMessage) (*types.MergeResult, error) {
	owner, name := repo.Split()

	result, _, err := c.api.PullRequests.Merge(ctx, owner, name, int(number), message.String(), nil)
	if err != nil {
		return nil, classify(err, "merge pull request")
	}

	c.logger.Info("merged pull request",
		zap.String("repo", repo.String()),
		zap.Int("pr_number", int(number)),
		zap.String("merge_sha", result.GetSHA()),
	)

	return &types.MergeResult{
		SHA:     types.CommitSHA(result.GetSHA()),
		Merged:  result.GetMerged(),
		Message: result.GetMessage(),
	}, nil
}

// ClosePullRequest closes a pull request without merging. Closing an
// already-closed PR is not an error; the PR is returned as-is.
func (c *Client) ClosePullRequest(ctx context.Context, repo types.RepoName, number types.PRNumber) (*types.PullRequest, error) {
	owner, name := repo.Split()

	current, _, err := c.api.PullRequests.Get(ctx, owner, name, int(number))
	if err != nil {
		return nil, classify(err, "close pull request")
	}
	if current.GetState() == string(types.PRStateClosed) {
		return convertPullRequest(current), nil
	}

	pr, _, err := c.api.PullRequests.Edit(ctx, owner, name, int(number), &github.PullRequest{
		State: github.String(string(types.PRStateClosed)),
	})
	if err != nil {
		return nil, classify(err, "close pull request")
	}

	c.logger.Info("closed pull request",
		zap.String("repo", repo.String()),
		zap.Int("pr_number", int(number)),
	)

	return convertPullRequest(pr), nil
}

func convertPullRequest(pr *github.PullRequest) *types.PullRequest {
	result := &types.PullRequest{
		ID:        pr.GetID(),
		Number:    types.PRNumber(pr.GetNumber()),
		Title:     types.PRTitle(pr.GetTitle()),
		Body:      pr.GetBody(),
		State:     types.PRState(pr.GetState()),
		CreatedAt: pr.GetCreatedAt().Time,
		UpdatedAt: pr.GetUpdatedAt().Time,
		URL:       pr.GetHTMLURL(),
	}

	if pr.MergedAt != nil {
		mergedAt := pr.MergedAt.Time
		result.MergedAt = &mergedAt
	}

	return result
}
