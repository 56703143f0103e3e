package github

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-github/v57/github"
	"github.com/stretchr/testify/assert"
)

func respErr(status int, message string, errs ...github.Error) *github.ErrorResponse {
	return &github.ErrorResponse{
		Response: &http.Response{StatusCode: status},
		Message:  message,
		Errors:   errs,
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "nil stays nil",
			err:  nil,
			want: nil,
		},
		{
			name: "401 is unauthorized",
			err:  respErr(http.StatusUnauthorized, "Requires authentication"),
			want: ErrUnauthorized,
		},
		{
			name: "403 is unauthorized",
			err:  respErr(http.StatusForbidden, "Must have admin rights"),
			want: ErrUnauthorized,
		},
		{
			name: "404 is not found",
			err:  respErr(http.StatusNotFound, "Not Found"),
			want: ErrNotFound,
		},
		{
			name: "409 is conflict",
			err:  respErr(http.StatusConflict, "does not match"),
			want: ErrConflict,
		},
		{
			name: "405 is conflict",
			err:  respErr(http.StatusMethodNotAllowed, "Pull Request is not mergeable"),
			want: ErrConflict,
		},
		{
			name: "422 is validation",
			err:  respErr(http.StatusUnprocessableEntity, "Validation Failed"),
			want: ErrValidation,
		},
		{
			name: "422 already exists message is conflict",
			err:  respErr(http.StatusUnprocessableEntity, "Reference already exists"),
			want: ErrConflict,
		},
		{
			name: "422 already_exists code is conflict",
			err: respErr(http.StatusUnprocessableEntity, "Repository creation failed.",
				github.Error{Resource: "Repository", Code: "already_exists", Field: "name"}),
			want: ErrConflict,
		},
		{
			name: "plain network error is transport",
			err:  errors.New("dial tcp: connection refused"),
			want: ErrTransport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err, "op")

			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}
