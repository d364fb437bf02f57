// Package apiclient talks to the resource service. Server-backed
// collections are refetched wholesale; the local cache is never
// authoritative for them.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mkessler/stemtutor/internal/models"
)

// Client is a thin HTTP client for the STEM tutor API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the API at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errBody struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil && errBody.Error.Message != "" {
			return fmt.Errorf("%s %s: %s (%s)", method, path, errBody.Error.Message, errBody.Error.Code)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Health checks the liveness endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil)
}

// Flashcards fetches the full flashcard collection.
func (c *Client) Flashcards(ctx context.Context) ([]models.Flashcard, error) {
	var cards []models.Flashcard
	if err := c.do(ctx, http.MethodGet, "/api/flashcards", nil, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// CreateFlashcard creates a flashcard and returns the stored record.
func (c *Client) CreateFlashcard(ctx context.Context, input models.NewFlashcard) (*models.Flashcard, error) {
	var card models.Flashcard
	if err := c.do(ctx, http.MethodPost, "/api/flashcards", input, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// UpdateFlashcard applies a partial update; omitted fields are preserved.
func (c *Client) UpdateFlashcard(ctx context.Context, id string, patch models.FlashcardPatch) (*models.Flashcard, error) {
	var card models.Flashcard
	if err := c.do(ctx, http.MethodPut, "/api/flashcards/"+id, patch, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// DeleteFlashcard removes a flashcard by id.
func (c *Client) DeleteFlashcard(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/flashcards/"+id, nil, nil)
}

// ReviewFlashcard records one review and returns the updated record.
func (c *Client) ReviewFlashcard(ctx context.Context, id string, correct bool) (*models.Flashcard, error) {
	body := map[string]bool{"correct": correct}
	var card models.Flashcard
	if err := c.do(ctx, http.MethodPost, "/api/flashcards/"+id+"/review", body, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// Subjects fetches the full subject collection.
func (c *Client) Subjects(ctx context.Context) ([]models.Subject, error) {
	var subjects []models.Subject
	if err := c.do(ctx, http.MethodGet, "/api/subjects", nil, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

// CreateSubject creates a subject and returns the stored record.
func (c *Client) CreateSubject(ctx context.Context, input models.NewSubject) (*models.Subject, error) {
	var subject models.Subject
	if err := c.do(ctx, http.MethodPost, "/api/subjects", input, &subject); err != nil {
		return nil, err
	}
	return &subject, nil
}

// Progress fetches the learner progress record.
func (c *Client) Progress(ctx context.Context) (*models.Progress, error) {
	var p models.Progress
	if err := c.do(ctx, http.MethodGet, "/api/progress", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProgress merges the patch into the stored progress record.
func (c *Client) UpdateProgress(ctx context.Context, patch models.ProgressPatch) (*models.Progress, error) {
	var p models.Progress
	if err := c.do(ctx, http.MethodPut, "/api/progress", patch, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
