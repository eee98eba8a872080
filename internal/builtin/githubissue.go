package builtin

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v63/github"

	"github.com/rulekit/rulekit/internal/step"
)

// CreateGitHubIssue is an action that opens an issue on a GitHub repository.
type CreateGitHubIssue struct {
	owner string
	repo  string
	title string
	body  string

	// issues is swapped in tests.
	issues issueCreator
}

type issueCreator interface {
	Create(ctx context.Context, owner, repo string, issue *github.IssueRequest) (*github.Issue, *github.Response, error)
}

// NewCreateGitHubIssue creates an unconfigured CreateGitHubIssue action.
func NewCreateGitHubIssue() *CreateGitHubIssue {
	return &CreateGitHubIssue{}
}

func (c *CreateGitHubIssue) Name() string {
	return "CreateGitHubIssue"
}

func (c *CreateGitHubIssue) Configure(cfg step.Config) error {
	repository := step.GetString(cfg, "repository", "")
	parts := strings.SplitN(repository, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return fmt.Errorf("repository must be in 'owner/name' form, got '%s'", repository)
	}
	c.owner, c.repo = parts[0], parts[1]

	c.title = step.GetString(cfg, "title", "")
	if c.title == "" {
		return fmt.Errorf("issue title cannot be empty")
	}
	c.body = step.GetString(cfg, "body", "")

	token := step.GetString(cfg, "token", "")
	if token == "" {
		return fmt.Errorf("github token cannot be empty")
	}
	if c.issues == nil {
		c.issues = github.NewClient(nil).WithAuthToken(token).Issues
	}
	return nil
}

func (c *CreateGitHubIssue) Schema() step.Schema {
	return step.Schema{Fields: []step.Field{
		{
			Name:  "repository",
			Title: "Repository (owner/name)",
			Type:  step.FieldTypeString,
		},
		{
			Name:  "title",
			Title: "Issue title",
			Type:  step.FieldTypeString,
		},
		{
			Name:  "body",
			Title: "Issue body",
			Type:  step.FieldTypeString,
		},
		{
			Name:  "token",
			Title: "GitHub API token",
			Type:  step.FieldTypeString,
		},
	}}
}

func (c *CreateGitHubIssue) Run(ctx context.Context) error {
	request := &github.IssueRequest{
		Title: github.String(c.title),
	}
	if c.body != "" {
		request.Body = github.String(c.body)
	}

	_, _, err := c.issues.Create(ctx, c.owner, c.repo, request)
	if err != nil {
		return fmt.Errorf("could not create issue on %s/%s: %w", c.owner, c.repo, err)
	}
	return nil
}
