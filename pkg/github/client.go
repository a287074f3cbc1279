package github

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"

	"labelord/pkg/config"
	"labelord/pkg/labels"
)

const userAgent = "labelord"

// Client implements the LabelStore interface using the GitHub REST API
type Client struct {
	client *github.Client
}

// NewClient creates a new GitHub API client with the provided token
func NewClient(token string) *Client {
	return &Client{
		client: newGitHubClient(token),
	}
}

// NewEnterpriseClient creates a client for a GitHub Enterprise API base URL
func NewEnterpriseClient(token, baseURL string) (*Client, error) {
	ghClient, err := newGitHubClient(token).WithEnterpriseURLs(baseURL, baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub API URL %q: %w", baseURL, err)
	}
	return &Client{client: ghClient}, nil
}

func newGitHubClient(token string) *github.Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(context.Background(), ts)

	ghClient := github.NewClient(tc)
	ghClient.UserAgent = userAgent
	return ghClient
}

// ListLabels returns every label defined on repo, following all pages
func (c *Client) ListLabels(ctx context.Context, repo string) (labels.LabelSet, error) {
	owner, name, err := config.SplitRepository(repo)
	if err != nil {
		return nil, NewError(ErrorTypeValidation, err.Error(), err)
	}

	opts := &github.ListOptions{PerPage: 100}
	set := make(labels.LabelSet)

	for {
		page, resp, err := c.client.Issues.ListLabels(ctx, owner, name, opts)
		if err != nil {
			return nil, WrapGitHubError(err, fmt.Sprintf("labels of %s", repo))
		}

		for _, label := range page {
			set[label.GetName()] = label.GetColor()
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return set, nil
}

// CreateLabel creates a label on repo
func (c *Client) CreateLabel(ctx context.Context, repo, name, color string) error {
	owner, repoName, err := config.SplitRepository(repo)
	if err != nil {
		return NewError(ErrorTypeValidation, err.Error(), err)
	}

	label := &github.Label{
		Name:  github.String(name),
		Color: github.String(color),
	}

	_, _, err = c.client.Issues.CreateLabel(ctx, owner, repoName, label)
	if err != nil {
		return WrapGitHubError(err, fmt.Sprintf("label %s", name))
	}
	return nil
}

// UpdateLabel changes the color of an existing label
func (c *Client) UpdateLabel(ctx context.Context, repo, name, color string) error {
	owner, repoName, err := config.SplitRepository(repo)
	if err != nil {
		return NewError(ErrorTypeValidation, err.Error(), err)
	}

	label := &github.Label{
		Color: github.String(color),
	}

	_, _, err = c.client.Issues.EditLabel(ctx, owner, repoName, url.PathEscape(name), label)
	if err != nil {
		return WrapGitHubError(err, fmt.Sprintf("label %s", name))
	}
	return nil
}

// DeleteLabel removes a label from repo
func (c *Client) DeleteLabel(ctx context.Context, repo, name string) error {
	owner, repoName, err := config.SplitRepository(repo)
	if err != nil {
		return NewError(ErrorTypeValidation, err.Error(), err)
	}

	_, err = c.client.Issues.DeleteLabel(ctx, owner, repoName, url.PathEscape(name))
	if err != nil {
		return WrapGitHubError(err, fmt.Sprintf("label %s", name))
	}
	return nil
}

// ListRepositories lists every repository the authenticated user can access
func (c *Client) ListRepositories(ctx context.Context) ([]Repository, error) {
	opts := &github.RepositoryListByAuthenticatedUserOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var repos []Repository

	for {
		page, resp, err := c.client.Repositories.ListByAuthenticatedUser(ctx, opts)
		if err != nil {
			return nil, WrapGitHubError(err, "repositories of the authenticated user")
		}

		for _, repo := range page {
			repos = append(repos, Repository{
				FullName: repo.GetFullName(),
				Private:  repo.GetPrivate(),
				Archived: repo.GetArchived(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return repos, nil
}

var _ LabelStore = (*Client)(nil)
