package actions

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/clintrovert/forgeops/internal/github"
	"github.com/clintrovert/forgeops/pkg/types"
)

// SystemVCS is the system type every GitHub action registers under.
const SystemVCS = "version_control_system"

// GitHubActions binds the GitHub operation catalog to action definitions.
type GitHubActions struct {
	client *github.Client
	logger *zap.Logger
}

// NewGitHubActions creates the GitHub action bindings.
func NewGitHubActions(client *github.Client, logger *zap.Logger) *GitHubActions {
	return &GitHubActions{
		client: client,
		logger: logger,
	}
}

// decodeArgs unmarshals raw JSON arguments into the action's typed
// parameter struct. An empty body decodes as no arguments.
func decodeArgs[T any](raw json.RawMessage) (T, error) {
	var args T
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	if err := json.Unmarshal(raw, &args); err != nil {
		return args, fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	return args, nil
}

func requireRepo(repo types.RepoName) error {
	if err := repo.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	return nil
}

type repoArgs struct {
	Repo types.RepoName `json:"repo"`
}

type createBranchArgs struct {
	Repo       types.RepoName   `json:"repo"`
	BranchName types.BranchName `json:"branch_name"`
	CommitSHA  types.CommitSHA  `json:"commit_sha"`
}

type deleteBranchArgs struct {
	Repo       types.RepoName   `json:"repo"`
	BranchName types.BranchName `json:"branch_name"`
}

type getFileArgs struct {
	Repo     types.RepoName   `json:"repo"`
	FilePath types.FilePath   `json:"file_path"`
	Branch   types.BranchName `json:"branch"`
}

type writeFileArgs struct {
	Repo     types.RepoName      `json:"repo"`
	FilePath types.FilePath      `json:"file_path"`
	Content  types.FileContent   `json:"content"`
	Branch   types.BranchName    `json:"branch"`
	Message  types.CommitMessage `json:"message"`
	SHA      types.CommitSHA     `json:"sha"`
}

type deleteFileArgs struct {
	Repo     types.RepoName      `json:"repo"`
	FilePath types.FilePath      `json:"file_path"`
	Branch   types.BranchName    `json:"branch"`
	Message  types.CommitMessage `json:"message"`
	SHA      types.CommitSHA     `json:"sha"`
}

type createPRArgs struct {
	Repo  types.RepoName   `json:"repo"`
	Title types.PRTitle    `json:"title"`
	Head  types.BranchName `json:"head"`
	Base  types.BranchName `json:"base"`
	Body  string           `json:"body"`
}

type listPRArgs struct {
	Repo  types.RepoName `json:"repo"`
	State types.PRState  `json:"state"`
}

type mergePRArgs struct {
	Repo          types.RepoName      `json:"repo"`
	PullNumber    types.PRNumber      `json:"pull_number"`
	CommitMessage types.CommitMessage `json:"commit_message"`
}

type closePRArgs struct {
	Repo       types.RepoName `json:"repo"`
	PullNumber types.PRNumber `json:"pull_number"`
}

type createIssueArgs struct {
	Repo   types.RepoName   `json:"repo"`
	Title  types.IssueTitle `json:"title"`
	Body   string           `json:"body"`
	Labels []string         `json:"labels"`
}

type issueNumberArgs struct {
	Repo        types.RepoName    `json:"repo"`
	IssueNumber types.IssueNumber `json:"issue_number"`
}

type updateIssueArgs struct {
	Repo        types.RepoName    `json:"repo"`
	IssueNumber types.IssueNumber `json:"issue_number"`
	Title       *types.IssueTitle `json:"title"`
	Body        *string           `json:"body"`
	State       *types.IssueState `json:"state"`
}

type listIssuesArgs struct {
	Repo  types.RepoName   `json:"repo"`
	State types.IssueState `json:"state"`
}

type createRepositoryArgs struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Private     bool   `json:"private"`
}

// fileContentResponse is the get_file_content payload: decoded text plus
// the metadata needed for a later update or delete.
type fileContentResponse struct {
	FileContent string          `json:"file_content"`
	Path        types.FilePath  `json:"path"`
	SHA         types.CommitSHA `json:"sha"`
}

// Register adds every GitHub action to the registry.
func (a *GitHubActions) Register(r *Registry) error {
	defs := []Definition{
		{
			Name:        "star_repository",
			SystemType:  SystemVCS,
			Description: "Stars a specified GitHub repository for the authenticated user.",
			Signature:   "(repo) -> status",
			Arguments:   []string{"repo"},
			Handler:     a.starRepository,
		},
		{
			Name:        "unstar_repository",
			SystemType:  SystemVCS,
			Description: "Removes a star from a specified GitHub repository for the authenticated user.",
			Signature:   "(repo) -> status",
			Arguments:   []string{"repo"},
			Handler:     a.unstarRepository,
		},
		{
			Name:        "list_branches",
			SystemType:  SystemVCS,
			Description: "Retrieves a list of all branches in the specified GitHub repository.",
			Signature:   "(repo) -> [branch]",
			Arguments:   []string{"repo"},
			Handler:     a.listBranches,
		},
		{
			Name:        "create_branch",
			SystemType:  SystemVCS,
			Description: "Creates a new branch in the specified GitHub repository from the given commit SHA.",
			Signature:   "(repo, branch_name, commit_sha) -> branch",
			Arguments:   []string{"repo", "branch_name", "commit_sha"},
			Handler:     a.createBranch,
		},
		{
			Name:        "delete_branch",
			SystemType:  SystemVCS,
			Description: "Deletes a specified branch in the GitHub repository.",
			Signature:   "(repo, branch_name) -> status",
			Arguments:   []string{"repo", "branch_name"},
			Handler:     a.deleteBranch,
		},
		{
			Name:        "get_file_content",
			SystemType:  SystemVCS,
			Description: "Retrieves the content of a specified file in the GitHub repository.",
			Signature:   "(repo, file_path, branch='main') -> file_content",
			Arguments:   []string{"repo", "file_path", "branch"},
			Handler:     a.getFileContent,
		},
		{
			Name:        "create_file",
			SystemType:  SystemVCS,
			Description: "Creates a new file in the specified GitHub repository with the provided base64 content.",
			Signature:   "(repo, file_path, content, branch='main', message='Create new file') -> file",
			Arguments:   []string{"repo", "file_path", "content", "branch", "message"},
			Handler:     a.createFile,
		},
		{
			Name:        "update_file",
			SystemType:  SystemVCS,
			Description: "Updates the content of a specified file in the GitHub repository. Requires the file's current sha.",
			Signature:   "(repo, file_path, content, branch='main', message='Update file', sha) -> file",
			Arguments:   []string{"repo", "file_path", "content", "branch", "message", "sha"},
			Handler:     a.updateFile,
		},
		{
			Name:        "delete_file",
			SystemType:  SystemVCS,
			Description: "Deletes a specified file from the GitHub repository. Requires the file's current sha.",
			Signature:   "(repo, file_path, branch='main', message='Delete file', sha) -> status",
			Arguments:   []string{"repo", "file_path", "branch", "message", "sha"},
			Handler:     a.deleteFile,
		},
		{
			Name:        "create_pull_request",
			SystemType:  SystemVCS,
			Description: "Creates a new pull request between specified branches in the GitHub repository.",
			Signature:   "(repo, title, head, base, body='') -> pull_request",
			Arguments:   []string{"repo", "title", "head", "base", "body"},
			Handler:     a.createPullRequest,
		},
		{
			Name:        "list_pull_requests",
			SystemType:  SystemVCS,
			Description: "Retrieves a list of pull requests from the specified GitHub repository, filtered by state.",
			Signature:   "(repo, state='open') -> [pull_request]",
			Arguments:   []string{"repo", "state"},
			Handler:     a.listPullRequests,
		},
		{
			Name:        "merge_pull_request",
			SystemType:  SystemVCS,
			Description: "Merges a specified pull request in the GitHub repository.",
			Signature:   "(repo, pull_number, commit_message='Merging pull request') -> merge_result",
			Arguments:   []string{"repo", "pull_number", "commit_message"},
			Handler:     a.mergePullRequest,
		},
		{
			Name:        "close_pull_request",
			SystemType:  SystemVCS,
			Description: "Closes a specified pull request in the GitHub repository without merging.",
			Signature:   "(repo, pull_number) -> pull_request",
			Arguments:   []string{"repo", "pull_number"},
			Handler:     a.closePullRequest,
		},
		{
			Name:        "create_issue",
			SystemType:  SystemVCS,
			Description: "Creates a new issue in the specified GitHub repository.",
			Signature:   "(repo, title, body='', labels=[]) -> issue",
			Arguments:   []string{"repo", "title", "body", "labels"},
			Handler:     a.createIssue,
		},
		{
			Name:        "get_issue",
			SystemType:  SystemVCS,
			Description: "Retrieves information about a specific issue in the specified GitHub repository.",
			Signature:   "(repo, issue_number) -> issue",
			Arguments:   []string{"repo", "issue_number"},
			Handler:     a.getIssue,
		},
		{
			Name:        "update_issue",
			SystemType:  SystemVCS,
			Description: "Updates an issue in the specified GitHub repository. Only provided fields are changed.",
			Signature:   "(repo, issue_number, title?, body?, state?) -> issue",
			Arguments:   []string{"repo", "issue_number", "title", "body", "state"},
			Handler:     a.updateIssue,
		},
		{
			Name:        "close_issue",
			SystemType:  SystemVCS,
			Description: "Closes an issue in the specified GitHub repository.",
			Signature:   "(repo, issue_number) -> issue",
			Arguments:   []string{"repo", "issue_number"},
			Handler:     a.closeIssue,
		},
		{
			Name:        "list_issues",
			SystemType:  SystemVCS,
			Description: "Retrieves a list of issues from the specified GitHub repository, filtered by state.",
			Signature:   "(repo, state='open') -> [issue]",
			Arguments:   []string{"repo", "state"},
			Handler:     a.listIssues,
		},
		{
			Name:        "create_repository",
			SystemType:  SystemVCS,
			Description: "Creates a new repository in the authenticated user's account.",
			Signature:   "(name, description='', private=false) -> repository",
			Arguments:   []string{"name", "description", "private"},
			Handler:     a.createRepository,
		},
		{
			Name:        "delete_repository",
			SystemType:  SystemVCS,
			Description: "Deletes a specified repository in the GitHub account.",
			Signature:   "(repo) -> status",
			Arguments:   []string{"repo"},
			Handler:     a.deleteRepository,
		},
		{
			Name:        "get_repository_info",
			SystemType:  SystemVCS,
			Description: "Retrieves information about a specific GitHub repository.",
			Signature:   "(repo) -> repository",
			Arguments:   []string{"repo"},
			Handler:     a.getRepositoryInfo,
		},
	}

	for _, def := range defs {
		if err := r.Register(def); err != nil {
			return err
		}
	}
	return nil
}

func (a *GitHubActions) starRepository(ctx context.Context, raw json.RawMessage) (any, error) {
	args, err := decodeArgs[repoArgs](raw)
	if err != nil {
		return nil, err
	}
	if err := requireRepo(args.Repo); err != nil {
		return nil, err
	}
	return a.client.StarRepository(ctx, args.Repo)
}

func (a *GitHubActions) unstarRepository(ctx context.Context, raw json.RawMessage) (any, error) {
	args, err := decodeArgs[repoArgs](raw)
	if err != nil {
		return nil, err
	}
	if err := requireRepo(args.Repo); err != nil {
		return nil, err
	}
	return a.client.UnstarRepository(ctx, args.Repo)
}

func (a *GitHubActions) listBranches(ctx context.Context, raw json.RawMessage) (any, error) {
	args, err := decodeArgs[repoArgs](raw)
	if err != nil {
		return nil, err
	}
	if err := requireRepo(args.Repo); err != nil {
		return nil, err
	}
	return a.client.ListBranches(ctx, args.Repo)
}

func (a *GitHubActions) createBranch(ctx context.Context, raw json.RawMessage) (any, error) {
	args, err := decodeArgs[createBranchArgs](raw)
	if err != nil {
		return nil, err
	}
	if err := requireRepo(args.Repo); err != nil {
		return nil, err
	}
	if args.BranchName == "" || args.CommitSHA == "" {
		return nil, fmt.Errorf("%w: branch_name and commit_sha are required", ErrInvalidArguments)
	}
	return a.client.CreateBranch(ctx, args.Repo, args.BranchName, args.CommitSHA)
}

func (a *GitHubActions) deleteBranch(ctx context.Context, raw json.RawMessage) (any, error) {
	args, err := decodeArgs[deleteBranchArgs](raw)
	if err != nil {
		return nil, err
	}
	if err := requireRepo(args.Repo); err != nil {
		return nil, err
	}
	if args.BranchName == "" {
		return nil, fmt.Errorf("%w: branch_name is required", ErrInvalidArguments)
	}
	return a.client.DeleteBranch(ctx, args.Repo, args.BranchName)
}

func (a *GitHubActions) getFileContent(ctx context.Context, raw json.RawMessage) (any, error) {
	args, err := decodeArgs[getFileArgs](raw)
	if err != nil {
		return nil, err
	}
	if err := requireRepo(args.Repo); err != nil {
		return nil, err
	}
	if args.FilePath == "" {
		return nil, fmt.Errorf("%w: file_path is required", ErrInvalidArguments)
	}

	file, err := a.client.GetFileContent(ctx, args.Repo, args.FilePath, args.Branch)
	if err != nil {
		return nil, err
	}

	decoded, err := file.Content.Decode()
	if err != nil {
		return nil, err
	}

	return &fileContentResponse{
		FileContent: string(decoded),
		Path:        file.Path,
		SHA:         file.SHA,
	}, nil
}

func (a *GitHubActions) createFile(ctx context.Context, raw json.RawMessage) (any, error) {
	args, err := decodeArgs[writeFileArgs](raw)
	if err != nil {
		return nil, err
	}
	if err := requireRepo(args.Repo); err != nil {
		return nil, err
	}
	if args.FilePath == "" || args.Content == "" {
		return nil, fmt.Errorf("%w: file_path and content are required", ErrInvalidArguments)
	}
	if args.Branch == "" {
		args.Branch = types.DefaultBranch
	}
	if args.Message == "" {
		args.Message = "Create new file"
	}
	return a.client.CreateFile(ctx, args.Repo, args.FilePath, args.Content, args.Branch, args.Message)
}

func (a *GitHubActions) updateFile(ctx context.Context, raw json.RawMessage) (any, error) {
	args, err := decodeArgs[writeFileArgs](raw)
	if err != nil {
		return nil, err
	}
	if err := requireRepo(args.Repo); err != nil {
		return nil, err
	}
	if args.FilePath == "" || args.Content == "" {
		return nil, fmt.Errorf("%w: file_path and content are required", ErrInvalidArguments)
	}
	if args.SHA == "" {
		return nil, fmt.Errorf("%w: sha of the current file content is required", ErrInvalidArguments)
	}
	if args.Branch == "" {
		args.Branch = types.DefaultBranch
	}
	if args.Message == "" {
		args.Message = "Update file"
	}
	return a.client.UpdateFile(ctx, args.Repo, args.FilePath, args.Content, args.Branch, args.Message, args.SHA)
}

func (a *GitHubActions) deleteFile(ctx context.Context, raw json.RawMessage) (any, error) {
	args, err := decodeArgs[deleteFileArgs](raw)
	if err != nil {
		return nil, err
	}
	if err := requireRepo(args.Repo); err != nil {
		return nil, err
	}
	if args.FilePath == "" {
		return nil, fmt.Errorf("%w: file_path is required", ErrInvalidArguments)
	}
	if args.SHA == "" {
		return nil, fmt.Errorf("%w: sha of the current file content is required", ErrInvalidArguments)
	}
	if args.Branch == "" {
		args.Branch = types.DefaultBranch
	}
	if args.Message == "" {
		args.Message = "Delete file"
	}
	return a.client.DeleteFile(ctx, args.Repo, args.FilePath, args.Branch, args.Message, args.SHA)
}

func (a *GitHubActions) createPullRequest(ctx context.Context, raw json.RawMessage) (any, error) {
	args, err := decodeArgs[createPRArgs](raw)
	if err != nil {
		return nil, err
	}
	if err := requireRepo(args.Repo); err != nil {
		return nil, err
	}
	if args.Title == "" || args.Head == "" || args.Base == "" {
		return nil, fmt.Errorf("%w: title, head and base are required", ErrInvalidArguments)
	}
	return a.client.CreatePullRequest(ctx, args.Repo, args.Title, args.Head, args.Base, args.Body)
}

func (a *GitHubActions) listPullRequests(ctx context.Context, raw json.RawMessage) (any, error) {
	args, err := decodeArgs[listPRArgs](raw)
	if err != nil {
		return nil, err
	}
	if err := requireRepo(args.Repo); err != nil {
		return nil, err
	}
	return a.client.ListPullRequests(ctx, args.Repo, args.State)
}

func (a *GitHubActions) mergePullRequest(ctx context.Context, raw json.RawMessage) (any, error) {
	args, err := decodeArgs[mergePRArgs](raw)
	if err != nil {
		return nil, err
	}
	if err := requireRepo(args.Repo); err != nil {
		return nil, err
	}
	if args.PullNumber <= 0 {
		return nil, fmt.Errorf("%w: pull_number is required", ErrInvalidArguments)
	}
	if args.CommitMessage == "" {
		args.CommitMessage = "Merging pull request"
	}
	return a.client.MergePullRequest(ctx, args.Repo, args.PullNumber, args.CommitMessage)
}

func (a *GitHubActions) closePullRequest(ctx context.Context, raw json.RawMessage) (any, error) {
	args, err := decodeArgs[closePRArgs](raw)
	if err != nil {
		return nil, err
	}
	if err := requireRepo(args.Repo); err != nil {
		return nil, err
	}
	if args.PullNumber <= 0 {
		return nil, fmt.Errorf("%w: pull_number is required", ErrInvalidArguments)
	}
	return a.client.ClosePullRequest(ctx, args.Repo, args.PullNumber)
}

func (a *GitHubActions) createIssue(ctx context.Context, raw json.RawMessage) (any, error) {
	args, err := decodeArgs[createIssueArgs](raw)
	if err != nil {
		return nil, err
	}
	if err := requireRepo(args.Repo); err != nil {
		return nil, err
	}
	if args.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidArguments)
	}
	return a.client.CreateIssue(ctx, args.Repo, args.Title, args.Body, args.Labels)
}

func (a *GitHubActions) getIssue(ctx context.Context, raw json.RawMessage) (any, error) {
	args, err := decodeArgs[issueNumberArgs](raw)
	if err != nil {
		return nil, err
	}
	if err := requireRepo(args.Repo); err != nil {
		return nil, err
	}
	if args.IssueNumber <= 0 {
		return nil, fmt.Errorf("%w: issue_number is required", ErrInvalidArguments)
	}
	return a.client.GetIssue(ctx, args.Repo, args.IssueNumber)
}

func (a *GitHubActions) updateIssue(ctx context.Context, raw json.RawMessage) (any, error) {
	args, err := decodeArgs[updateIssueArgs](raw)
	if err != nil {
		return nil, err
	}
	if err := requireRepo(args.Repo); err != nil {
		return nil, err
	}
	if args.IssueNumber <= 0 {
		return nil, fmt.Errorf("%w: issue_number is required", ErrInvalidArguments)
	}
	update := types.IssueUpdate{
		Title: args.Title,
		Body:  args.Body,
		State: args.State,
	}
	return a.client.UpdateIssue(ctx, args.Repo, args.IssueNumber, update)
}

func (a *GitHubActions) closeIssue(ctx context.Context, raw json.RawMessage) (any, error) {
	args, err := decodeArgs[issueNumberArgs](raw)
	if err != nil {
		return nil, err
	}
	if err := requireRepo(args.Repo); err != nil {
		return nil, err
	}
	if args.IssueNumber <= 0 {
		return nil, fmt.Errorf("%w: issue_number is required", ErrInvalidArguments)
	}
	return a.client.CloseIssue(ctx, args.Repo, args.IssueNumber)
}

func (a *GitHubActions) listIssues(ctx context.Context, raw json.RawMessage) (any, error) {
	args, err := decodeArgs[listIssuesArgs](raw)
	if err != nil {
		return nil, err
	}
	if err := requireRepo(args.Repo); err != nil {
		return nil, err
	}
	return a.client.ListIssues(ctx, args.Repo, args.State)
}

func (a *GitHubActions) createRepository(ctx context.Context, raw json.RawMessage) (any, error) {
	args, err := decodeArgs[createRepositoryArgs](raw)
	if err != nil {
		return nil, err
	}
	if args.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidArguments)
	}
	return a.client.CreateRepository(ctx, args.Name, args.Description, args.Private)
}

func (a *GitHubActions) deleteRepository(ctx context.Context, raw json.RawMessage) (any, error) {
	args, err := decodeArgs[repoArgs](raw)
	if err != nil {
		return nil, err
	}
	if err := requireRepo(args.Repo); err != nil {
		return nil, err
	}
	return a.client.DeleteRepository(ctx, args.Repo)
}

func (a *GitHubActions) getRepositoryInfo(ctx context.Context, raw json.RawMessage) (any, error) {
	args, err := decodeArgs[repoArgs](raw)
	if err != nil {
		return nil, err
	}
	if err := requireRepo(args.Repo); err != nil {
		return nil, err
	}
	return a.client.GetRepositoryInfo(ctx, args.Repo)
}
