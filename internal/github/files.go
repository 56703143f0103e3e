package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v57/github"
	"go.uber.org/zap"

	"github.com/clintrovert/forgeops/pkg/types"
)

// GetFileContent fetches a file from the given branch ("main" when empty).
// The returned File carries base64 content and the content SHA required as a
// precondition by UpdateFile and DeleteFile.
func (c *Client) GetFileContent(ctx context.Context, repo types.RepoName, path types.FilePath, branch types.BranchName) (*types.File, error) {
	owner, name := repo.Split()
	if branch == "" {
		branch = types.DefaultBranch
	}

	fileContent, dirContent, _, err := c.api.Repositories.GetContents(ctx, owner, name, path.String(), &github.RepositoryContentGetOptions{
		Ref: branch.String(),
	})
	if err != nil {
		return nil, classify(err, "get file content")
	}
	if fileContent == nil {
		if dirContent != nil {
			return nil, fmt.Errorf("get file content: %w: %s is a directory", ErrValidation, path)
		}
		return nil, fmt.Errorf("get file content: %w: %s", ErrNotFound, path)
	}

	// GetContent handles the base64 (or empty) encoding reported by the
	// service; re-encode so File.Content always holds clean base64.
	decoded, err := fileContent.GetContent()
	if err != nil {
		return nil, fmt.Errorf("get file content: %w: %v", ErrValidation, err)
	}

	return &types.File{
		Path:    types.FilePath(fileContent.GetPath()),
		Content: types.EncodeFileContent([]byte(decoded)),
		SHA:     types.CommitSHA(fileContent.GetSHA()),
		Branch:  branch,
	}, nil
}

// CreateFile creates a new file on the given branch. Content must already be
// base64. Fails with ErrConflict if a file already exists at path+branch.
func (c *Client) CreateFile(ctx context.Context, repo types.RepoName, path types.FilePath, content types.FileContent, branch types.BranchName, message types.CommitMessage) (*types.File, error) {
	owner, name := repo.Split()

	raw, err := content.Decode()
	if err != nil {
		return nil, fmt.Errorf("create file: %w: %v", ErrValidation, err)
	}

	resp, _, err := c.api.Repositories.CreateFile(ctx, owner, name, path.String(), &github.RepositoryContentFileOptions{
		Message: github.String(message.String()),
		Content: raw,
		Branch:  github.String(branch.String()),
	})
	if err != nil {
		return nil, classify(err, "create file")
	}

	c.logger.Info("created file",
		zap.String("repo", repo.String()),
		zap.String("path", path.String()),
		zap.String("branch", branch.String()),
	)

	return &types.File{
		Path:    path,
		Content: content,
		SHA:     types.CommitSHA(resp.Content.GetSHA()),
		Branch:  branch,
	}, nil
}

// UpdateFile replaces a file's content on the given branch. The sha of the
// current content is a required precondition; a stale value fails with
// ErrConflict. Fetch it with GetFileContent first.
func (c *Client) UpdateFile(ctx context.Context, repo types.RepoName, path types.FilePath, content types.FileContent, branch types.BranchName, message types.CommitMessage, sha types.CommitSHA) (*types.File, error) {
	owner, name := repo.Split()

	raw, err := content.Decode()
	if err != nil {
		return nil, fmt.Errorf("update file: %w: %v", ErrValidation, err)
	}

	resp, _, err := c.api.Repositories.UpdateFile(ctx, owner, name, path.String(), &github.RepositoryContentFileOptions{
		Message: github.String(message.String()),
		Content: raw,
		SHA:     github.String(sha.String()),
		Branch:  github.String(branch.String()),
	})
	if err != nil {
		return nil, classify(err, "update file")
	}

	c.logger.Info("updated file",
		zap.String("repo", repo.String()),
		zap.String("path", path.String()),
		zap.String("branch", branch.String()),
	)

	return &types.File{
		Path:    path,
		Content: content,
		SHA:     types.CommitSHA(resp.Content.GetSHA()),
		Branch:  branch,
	}, nil
}

// DeleteFile removes a file from the given branch. As with UpdateFile, the
// current content sha is a required precondition.
func (c *Client) DeleteFile(ctx context.Context, repo types.RepoName, path types.FilePath, branch types.BranchName, message types.CommitMessage, sha types.CommitSHA) (*types.StatusResult, error) {
	owner, name := repo.Split()

	_, _, err := c.api.Repositories.DeleteFile(ctx, owner, name, path.String(), &github.RepositoryContentFileOptions{
		Message: github.String(message.String()),
		SHA:     github.String(sha.String()),
		Branch:  github.String(branch.String()),
	})
	if err != nil {
		return nil, classify(err, "delete file")
	}

	c.logger.Info("deleted file",
		zap.String("repo", repo.String()),
		zap.String("path", path.String()),
		zap.String("branch", branch.String()),
	)

	return &types.StatusResult{
		Message: fmt.Sprintf("file %s deleted successfully", path),
	}, nil
}
