package types

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// Field type validation errors
var (
	ErrInvalidRepoName = errors.New("repository name must be in owner/repo format")
	ErrInvalidPRState  = errors.New("pull request state must be open, closed or all")
	ErrInvalidState    = errors.New("issue state must be open, closed or all")
)

// RepoName identifies a repository as "owner/repo". Uniqueness within the
// service is the remote side's concern; locally only the shape is checked.
type RepoName string

// ParseRepoName validates that s contains exactly one slash separating two
// non-empty segments and returns it as a RepoName.
func ParseRepoName(s string) (RepoName, error) {
	r := RepoName(s)
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

// Validate checks the owner/repo shape.
func (r RepoName) Validate() error {
	owner, name, ok := strings.Cut(string(r), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return fmt.Errorf("%w: %q", ErrInvalidRepoName, string(r))
	}
	return nil
}

// Owner returns the part before the slash.
func (r RepoName) Owner() string {
	owner, _, _ := strings.Cut(string(r), "/")
	return owner
}

// Name returns the part after the slash.
func (r RepoName) Name() string {
	_, name, _ := strings.Cut(string(r), "/")
	return name
}

// Split returns owner and repo as separate strings, the way most GitHub API
// calls want them.
func (r RepoName) Split() (owner, name string) {
	owner, name, _ = strings.Cut(string(r), "/")
	return owner, name
}

func (r RepoName) String() string { return string(r) }

// BranchName is a ref name within a repository. Any valid ref name is
// accepted; existence and uniqueness are enforced by the remote service.
type BranchName string

func (b BranchName) String() string { return string(b) }

// DefaultBranch is used wherever an operation takes an optional branch.
const DefaultBranch BranchName = "main"

// CommitSHA identifies a commit. It is not validated for hex shape locally;
// an unknown or malformed SHA surfaces as a remote validation error.
type CommitSHA string

func (s CommitSHA) String() string { return string(s) }

// FilePath is a path relative to the repository root, used as-is with no
// local normalization.
type FilePath string

func (p FilePath) String() string { return string(p) }

// CommitMessage is a free-form message attached to any operation that
// mutates repository history.
type CommitMessage string

func (m CommitMessage) String() string { return string(m) }

// FileContent is the base64 encoding of arbitrary file bytes. This is a hard
// contract: content is always base64 in transit, so callers must encode
// before writes and decode after reads.
type FileContent string

// EncodeFileContent encodes raw bytes into a FileContent value.
func EncodeFileContent(data []byte) FileContent {
	return FileContent(base64.StdEncoding.EncodeToString(data))
}

// Decode returns the raw bytes behind the base64 encoding.
func (c FileContent) Decode() ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(c)))
	if err != nil {
		return nil, fmt.Errorf("decode file content: %w", err)
	}
	return data, nil
}

func (c FileContent) String() string { return string(c) }

// PRTitle is the human-facing title of a pull request.
type PRTitle string

func (t PRTitle) String() string { return string(t) }

// PRNumber is the human-facing pull request number, distinct from the
// service-assigned immutable ID.
type PRNumber int

// PRState filters pull request listings and describes a PR's lifecycle
// state. Entities only ever carry open or closed; "all" is a filter value.
type PRState string

const (
	PRStateOpen   PRState = "open"
	PRStateClosed PRState = "closed"
	PRStateAll    PRState = "all"
)

// Validate rejects anything outside the open/closed/all set.
func (s PRState) Validate() error {
	switch s {
	case PRStateOpen, PRStateClosed, PRStateAll:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidPRState, string(s))
}

func (s PRState) String() string { return string(s) }

// IssueTitle is the human-facing title of an issue.
type IssueTitle string

func (t IssueTitle) String() string { return string(t) }

// IssueNumber is the human-facing issue number within a repository.
type IssueNumber int

// IssueState filters issue listings and describes an issue's state.
type IssueState string

const (
	IssueStateOpen   IssueState = "open"
	IssueStateClosed IssueState = "closed"
	IssueStateAll    IssueState = "all"
)

// Validate rejects anything outside the open/closed/all set.
func (s IssueState) Validate() error {
	switch s {
	case IssueStateOpen, IssueStateClosed, IssueStateAll:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidState, string(s))
}

func (s IssueState) String() string { return string(s) }
