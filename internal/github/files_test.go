package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clintrovert/forgeops/pkg/types"
)

func TestGetFileContent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/demo/contents/docs/guide.md", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "main", r.URL.Query().Get("ref"))
		fmt.Fprint(w, `{
			"type": "file",
			"name": "guide.md",
			"path": "docs/guide.md",
			"sha": "f1f1f1",
			"encoding": "base64",
			"content": "aGVsbG8gd29ybGQ="
		}`)
	})

	client := newTestClient(t, mux)

	// No branch given; "main" is the documented default.
	file, err := client.GetFileContent(context.Background(), "octocat/demo", "docs/guide.md", "")

	require.NoError(t, err)
	assert.Equal(t, types.FilePath("docs/guide.md"), file.Path)
	assert.Equal(t, types.CommitSHA("f1f1f1"), file.SHA)
	assert.Equal(t, types.DefaultBranch, file.Branch)

	decoded, err := file.Content.Decode()
	require.NoError(t, err)
	assert.Equal(t, []byte("hello world"), decoded)
}

func TestGetFileContentNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/demo/contents/missing.txt", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "Not Found"}`)
	})

	client := newTestClient(t, mux)
	_, err := client.GetFileContent(context.Background(), "octocat/demo", "missing.txt", "main")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateFile(t *testing.T) {
	payload := []byte("package main\n")
	var gotBody map[string]any

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/demo/contents/main.go", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{
			"content": {"path": "main.go", "sha": "s2s2s2"},
			"commit": {"sha": "c1c1c1"}
		}`)
	})

	client := newTestClient(t, mux)
	content := types.EncodeFileContent(payload)
	file, err := client.CreateFile(context.Background(), "octocat/demo", "main.go", content, "main", "Add main")

	require.NoError(t, err)

	// The wire content must be the exact base64 of the payload bytes.
	assert.Equal(t, base64.StdEncoding.EncodeToString(payload), gotBody["content"])
	assert.Equal(t, "Add main", gotBody["message"])
	assert.Equal(t, "main", gotBody["branch"])
	assert.NotContains(t, gotBody, "sha")

	assert.Equal(t, types.FilePath("main.go"), file.Path)
	assert.Equal(t, types.CommitSHA("s2s2s2"), file.SHA)
	assert.Equal(t, content, file.Content)
}

func TestCreateFileRejectsNonBase64Content(t *testing.T) {
	client := newTestClient(t, http.NewServeMux())

	_, err := client.CreateFile(context.Background(), "octocat/demo", "a.txt", "plain text, not base64", "main", "msg")

	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateFileSendsShaPrecondition(t *testing.T) {
	var gotBody map[string]any

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/demo/contents/main.go", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		fmt.Fprint(w, `{
			"content": {"path": "main.go", "sha": "s3s3s3"},
			"commit": {"sha": "c2c2c2"}
		}`)
	})

	client := newTestClient(t, mux)
	content := types.EncodeFileContent([]byte("updated"))
	file, err := client.UpdateFile(context.Background(), "octocat/demo", "main.go", content, "main", "Update main", "s2s2s2")

	require.NoError(t, err)
	assert.Equal(t, "s2s2s2", gotBody["sha"])
	assert.Equal(t, types.CommitSHA("s3s3s3"), file.SHA)
}

func TestUpdateFileStaleSha(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/demo/contents/main.go", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		fmt.Fprint(w, `{"message": "main.go does not match s2s2s2"}`)
	})

	client := newTestClient(t, mux)
	content := types.EncodeFileContent([]byte("updated"))
	_, err := client.UpdateFile(context.Background(), "octocat/demo", "main.go", content, "main", "Update main", "s2s2s2")

	assert.ErrorIs(t, err, ErrConflict)
}

func TestDeleteFile(t *testing.T) {
	var gotBody map[string]any

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/demo/contents/old.txt", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		fmt.Fprint(w, `{"content": null, "commit": {"sha": "c3c3c3"}}`)
	})

	client := newTestClient(t, mux)
	status, err := client.DeleteFile(context.Background(), "octocat/demo", "old.txt", "main", "Remove old", "s4s4s4")

	require.NoError(t, err)
	assert.Equal(t, "s4s4s4", gotBody["sha"])
	assert.Equal(t, "Remove old", gotBody["message"])
	assert.Contains(t, status.Message, "old.txt")
}
