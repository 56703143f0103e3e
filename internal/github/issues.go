package github

import (
	"context"

	"github.com/google/go-github/v57/github"
	"go.uber.org/zap"

	"github.com/clintrovert/forgeops/pkg/types"
)

// CreateIssue opens a new issue. Body and labels are optional.
func (c *Client) CreateIssue(ctx context.Context, repo types.RepoName, title types.IssueTitle, body string, labels []string) (*types.Issue, error) {
	owner, name := repo.Split()

	req := &github.IssueRequest{
		Title: github.String(title.String()),
	}
	if body != "" {
		req.Body = github.String(body)
	}
	if len(labels) > 0 {
		req.Labels = &labels
	}

	issue, _, err := c.api.Issues.Create(ctx, owner, name, req)
	if err != nil {
		return nil, classify(err, "create issue")
	}

	c.logger.Info("created issue",
		zap.String("repo", repo.String()),
		zap.Int("issue_number", issue.GetNumber()),
	)

	return convertIssue(issue), nil
}

// GetIssue retrieves a single issue by number.
func (c *Client) GetIssue(ctx context.Context, repo types.RepoName, number types.IssueNumber) (*types.Issue, error) {
	owner, name := repo.Split()

	issue, _, err := c.api.Issues.Get(ctx, owner, name, int(number))
	if err != nil {
		return nil, classify(err, "get issue")
	}

	return convertIssue(issue), nil
}

// UpdateIssue applies a partial update. Only fields set on the update are
// sent; everything else is left unchanged on the remote side.
func (c *Client) UpdateIssue(ctx context.Context, repo types.RepoName, number types.IssueNumber, update types.IssueUpdate) (*types.Issue, error) {
	owner, name := repo.Split()

	req := &github.IssueRequest{}
	if update.Title != nil {
		req.Title = github.String(update.Title.String())
	}
	if update.Body != nil {
		req.Body = github.String(*update.Body)
	}
	if update.State != nil {
		if err := update.State.Validate(); err != nil {
			return nil, err
		}
		req.State = github.String(update.State.String())
	}

	issue, _, err := c.api.Issues.Edit(ctx, owner, name, int(number), req)
	if err != nil {
		return nil, classify(err, "update issue")
	}

	c.logger.Info("updated issue",
		zap.String("repo", repo.String()),
		zap.Int("issue_number", int(number)),
	)

	return convertIssue(issue), nil
}

// CloseIssue sets an issue's state to closed. Closing an already-closed
// issue succeeds.
func (c *Client) CloseIssue(ctx context.Context, repo types.RepoName, number types.IssueNumber) (*types.Issue, error) {
	owner, name := repo.Split()

	issue, _, err := c.api.Issues.Edit(ctx, owner, name, int(number), &github.IssueRequest{
		State: github.String(string(types.IssueStateClosed)),
	})
	if err != nil {
		return nil, classify(err, "close issue")
	}

	c.logger.Info("closed issue",
		zap.String("repo", repo.String()),
		zap.Int("issue_number", int(number)),
	)

	return convertIssue(issue), nil
}

// ListIssues lists issues filtered by state ("open" when empty).
func (c *Client) ListIssues(ctx context.Context, repo types.RepoName, state types.IssueState) ([]types.Issue, error) {
	owner, name := repo.Split()
	if state == "" {
		state = types.IssueStateOpen
	}
	if err := state.Validate(); err != nil {
		return nil, err
	}

	issues, _, err := c.api.Issues.ListByRepo(ctx, owner, name, &github.IssueListByRepoOptions{
		State:       state.String(),
		ListOptions: github.ListOptions{PerPage: 100},
	})
	if err != nil {
		return nil, classify(err, "list issues")
	}

	result := make([]types.Issue, 0, len(issues))
	for _, issue := range issues {
		// The issues endpoint also returns pull requests; keep plain issues.
		if issue.IsPullRequest() {
			continue
		}
		result = append(result, *convertIssue(issue))
	}

	return result, nil
}

func convertIssue(issue *github.Issue) *types.Issue {
	labels := make([]string, 0, len(issue.Labels))
	for _, label := range issue.Labels {
		labels = append(labels, label.GetName())
	}

	result := &types.Issue{
		ID:        issue.GetID(),
		Number:    types.IssueNumber(issue.GetNumber()),
		Title:     types.IssueTitle(issue.GetTitle()),
		Body:      issue.GetBody(),
		State:     types.IssueState(issue.GetState()),
		Labels:    labels,
		CreatedAt: issue.GetCreatedAt().Time,
		UpdatedAt: issue.GetUpdatedAt().Time,
		URL:       issue.GetHTMLURL(),
	}

	if issue.ClosedAt != nil {
		closedAt := issue.ClosedAt.Time
		result.ClosedAt = &closedAt
	}

	return result
}
