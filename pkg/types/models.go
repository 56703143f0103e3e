package types

import "time"

// Branch is a pointer to a commit within a repository. Values mirror remote
// state at call time and are never cached.
type Branch struct {
	Name      BranchName `json:"name"`
	CommitSHA CommitSHA  `json:"commit_sha"`
}

// PullRequest contains pull request information. ID is the service-assigned
// immutable identifier, distinct from the human-facing Number.
type PullRequest struct {
	ID        int64      `json:"id"`
	Number    PRNumber   `json:"number"`
	Title     PRTitle    `json:"title"`
	Body      string     `json:"body,omitempty"`
	State     PRState    `json:"state"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	MergedAt  *time.Time `json:"merged_at,omitempty"`
	URL       string     `json:"url,omitempty"`
}

// File describes a file stored in a repository. Content is always the
// base64 encoding of the file bytes; SHA is the content hash the remote
// service requires as a precondition for updates and deletes.
type File struct {
	Path    FilePath    `json:"path"`
	Content FileContent `json:"content"`
	SHA     CommitSHA   `json:"sha"`
	Branch  BranchName  `json:"branch,omitempty"`
}

// Issue contains issue information.
type Issue struct {
	ID        int64       `json:"id"`
	Number    IssueNumber `json:"number"`
	Title     IssueTitle  `json:"title"`
	Body      string      `json:"body,omitempty"`
	State     IssueState  `json:"state"`
	Labels    []string    `json:"labels,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	ClosedAt  *time.Time  `json:"closed_at,omitempty"`
	URL       string      `json:"url,omitempty"`
}

// IssueUpdate describes a partial issue update. Nil fields are left
// unchanged on the remote side.
type IssueUpdate struct {
	Title *IssueTitle `json:"title,omitempty"`
	Body  *string     `json:"body,omitempty"`
	State *IssueState `json:"state,omitempty"`
}

// Repository contains repository information.
type Repository struct {
	FullName      RepoName   `json:"full_name"`
	Description   string     `json:"description,omitempty"`
	Private       bool       `json:"private"`
	DefaultBranch BranchName `json:"default_branch,omitempty"`
	Stars         int        `json:"stars"`
	Forks         int        `json:"forks"`
	URL           string     `json:"url,omitempty"`
}

// MergeResult contains the outcome of merging a pull request.
type MergeResult struct {
	SHA     CommitSHA `json:"sha"`
	Merged  bool      `json:"merged"`
	Message string    `json:"message"`
}

// StatusResult carries the status message returned by operations that have
// no richer payload (star, unstar, deletes).
type StatusResult struct {
	Message string `json:"message"`
}
