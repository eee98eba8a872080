package builtin

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-github/v63/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulekit/rulekit/internal/step"
)

type fakeIssueCreator struct {
	owner   string
	repo    string
	request *github.IssueRequest
	err     error
}

func (f *fakeIssueCreator) Create(_ context.Context, owner, repo string, issue *github.IssueRequest) (*github.Issue, *github.Response, error) {
	f.owner = owner
	f.repo = repo
	f.request = issue
	return nil, nil, f.err
}

func validIssueConfig() step.Config {
	return step.Config{
		"repository": "octocat/hello-world",
		"title":      "Automation alert",
		"body":       "the automation fired",
		"token":      "test-token",
	}
}

func TestCreateGitHubIssueConfigure(t *testing.T) {
	t.Run("invalid repository", func(t *testing.T) {
		for _, repository := range []string{"", "octocat", "/repo", "owner/"} {
			cfg := validIssueConfig()
			cfg["repository"] = repository
			assert.Error(t, NewCreateGitHubIssue().Configure(cfg), "repository %q", repository)
		}
	})

	t.Run("missing title", func(t *testing.T) {
		cfg := validIssueConfig()
		delete(cfg, "title")
		assert.Error(t, NewCreateGitHubIssue().Configure(cfg))
	})

	t.Run("missing token", func(t *testing.T) {
		cfg := validIssueConfig()
		delete(cfg, "token")
		assert.Error(t, NewCreateGitHubIssue().Configure(cfg))
	})

	t.Run("valid", func(t *testing.T) {
		action := NewCreateGitHubIssue()
		require.NoError(t, action.Configure(validIssueConfig()))
		assert.Equal(t, "octocat", action.owner)
		assert.Equal(t, "hello-world", action.repo)
	})
}

func TestCreateGitHubIssueRun(t *testing.T) {
	creator := &fakeIssueCreator{}
	action := NewCreateGitHubIssue()
	action.issues = creator
	require.NoError(t, action.Configure(validIssueConfig()))

	require.NoError(t, action.Run(context.Background()))
	assert.Equal(t, "octocat", creator.owner)
	assert.Equal(t, "hello-world", creator.repo)
	require.NotNil(t, creator.request)
	assert.Equal(t, "Automation alert", creator.request.GetTitle())
	assert.Equal(t, "the automation fired", creator.request.GetBody())
}

func TestCreateGitHubIssueRunFailure(t *testing.T) {
	creator := &fakeIssueCreator{err: fmt.Errorf("api unavailable")}
	action := NewCreateGitHubIssue()
	action.issues = creator
	require.NoError(t, action.Configure(validIssueConfig()))

	assert.ErrorContains(t, action.Run(context.Background()), "api unavailable")
}
