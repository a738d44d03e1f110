// Package googletasks reads task lists from the Google Tasks API.
// It backs the import command and never writes to the account.
package googletasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"todomatic/internal/config"
	"todomatic/internal/service"
)

const (
	// DefaultListID addresses the account's default list.
	DefaultListID = "@default"

	// PageSize is the number of items requested per API page.
	PageSize = 100

	// APITimeout bounds each API operation, paging included.
	APITimeout = 10 * time.Second

	// Scope is the read-only OAuth scope.
	Scope = tasks.TasksReadonlyScope

	statusCompleted = "completed"
)

// Client implements service.Service using Google Tasks API.
type Client struct {
	svc *tasks.Service
}

// New creates a client from the OAuth client file and token in cfg.Dir.
// The token is refreshed automatically.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	oauthConfig, token, err := loadCredentials(cfg)
	if err != nil {
		return nil, err
	}
	return NewWithHTTPClient(ctx, oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, token)))
}

// loadCredentials reads the OAuth client and token. Every failure is an
// auth failure.
func loadCredentials(cfg *config.Config) (*oauth2.Config, *oauth2.Token, error) {
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, nil, service.AuthFailure(fmt.Errorf("failed to read %s: %w", config.OAuthClientFile, err))
	}
	oauthConfig, err := google.ConfigFromJSON(clientJSON, Scope)
	if err != nil {
		return nil, nil, service.AuthFailure(fmt.Errorf("invalid %s: %w", config.OAuthClientFile, err))
	}

	tokenData, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return nil, nil, service.AuthFailure(fmt.Errorf("not logged in (run: todomatic login): %w", err))
	}
	token := &oauth2.Token{}
	if err := json.Unmarshal(tokenData, token); err != nil {
		return nil, nil, service.AuthFailure(fmt.Errorf("invalid %s: %w", config.TokenFile, err))
	}
	return oauthConfig, token, nil
}

// NewWithHTTPClient creates a client that sends requests through httpClient.
// Tests pass option.WithEndpoint to aim it at a fake server.
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// DefaultList returns the user's default task list.
func (c *Client) DefaultList(ctx context.Context) (service.TaskList, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	list, err := c.svc.Tasklists.Get(DefaultListID).Context(ctx).Do()
	if err != nil {
		return service.TaskList{}, wrapError(err)
	}
	return service.TaskList{ID: DefaultListID, Title: list.Title, IsDefault: true}, nil
}

// ListLists returns all task lists in API order. The default list is
// reported under DefaultListID rather than its real id.
func (c *Client) ListLists(ctx context.Context) ([]service.TaskList, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	def, err := c.svc.Tasklists.Get(DefaultListID).Context(ctx).Do()
	if err != nil {
		return nil, wrapError(err)
	}

	var lists []service.TaskList
	collect := func(page *tasks.TaskLists) error {
		for _, item := range page.Items {
			lists = append(lists, toTaskList(item, def.Id))
		}
		return nil
	}
	if err := c.svc.Tasklists.List().MaxResults(PageSize).Pages(ctx, collect); err != nil {
		return nil, wrapError(err)
	}
	return lists, nil
}

// ResolveList finds a list by title.
func (c *Client) ResolveList(ctx context.Context, name string) (service.TaskList, error) {
	lists, err := c.ListLists(ctx)
	if err != nil {
		return service.TaskList{}, err
	}
	return MatchList(lists, name)
}

// MatchList picks the list whose title equals name, ignoring case and
// surrounding whitespace. Zero or several matches are errors.
func MatchList(lists []service.TaskList, name string) (service.TaskList, error) {
	name = strings.TrimSpace(name)

	var found []service.TaskList
	for _, list := range lists {
		if strings.EqualFold(strings.TrimSpace(list.Title), name) {
			found = append(found, list)
		}
	}

	switch len(found) {
	case 0:
		return service.TaskList{}, fmt.Errorf("list not found: %s", name)
	case 1:
		return found[0], nil
	}
	return service.TaskList{}, fmt.Errorf("ambiguous list name: %s", name)
}

// ListTasks returns the tasks of a list across all pages. Completed and
// hidden tasks are included only when includeCompleted is set.
func (c *Client) ListTasks(ctx context.Context, listID string, includeCompleted bool) ([]service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	call := c.svc.Tasks.List(listID).
		MaxResults(PageSize).
		ShowCompleted(includeCompleted).
		ShowHidden(includeCompleted).
		ShowDeleted(false)

	var result []service.Task
	err := call.Pages(ctx, func(page *tasks.Tasks) error {
		for _, item := range page.Items {
			if item.Deleted {
				continue
			}
			result = append(result, toTask(item))
		}
		return nil
	})
	if err != nil {
		return nil, wrapError(err)
	}
	return result, nil
}

func toTaskList(l *tasks.TaskList, defaultID string) service.TaskList {
	if l.Id == defaultID {
		return service.TaskList{ID: DefaultListID, Title: l.Title, IsDefault: true}
	}
	return service.TaskList{ID: l.Id, Title: l.Title}
}

func toTask(t *tasks.Task) service.Task {
	return service.Task{
		ID:        t.Id,
		Title:     t.Title,
		Completed: t.Status == statusCompleted,
	}
}

// wrapError turns API failures into messages a user can act on.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.New("request timed out")
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return service.AuthFailure(errors.New("token expired or revoked (run: todomatic login)"))
		case http.StatusNotFound:
			return errors.New("not found")
		}
	}
	return err
}
