package state

import (
	"context"

	"github.com/mkessler/stemtutor/internal/client/apiclient"
	"github.com/mkessler/stemtutor/internal/logger"
	"github.com/mkessler/stemtutor/internal/models"
)

// SubjectPanel is the view controller for the server-backed subject
// collection. The local copy is a display cache only: every refresh
// replaces it wholesale, and a failed fetch keeps the previous copy so the
// view can still render.
type SubjectPanel struct {
	client   *apiclient.Client
	log      *logger.Logger
	subjects []models.Subject
}

// NewSubjectPanel creates the panel over the given API client.
func NewSubjectPanel(c *apiclient.Client) *SubjectPanel {
	return &SubjectPanel{
		client: c,
		log:    logger.Default().WithPrefix("subjects"),
	}
}

// Subjects returns the last successfully fetched collection.
func (p *SubjectPanel) Subjects() []models.Subject {
	return p.subjects
}

// Refresh refetches the collection and replaces local state. Fetch failures
// are logged and leave the previous state in place.
func (p *SubjectPanel) Refresh(ctx context.Context) {
	subjects, err := p.client.Subjects(ctx)
	if err != nil {
		p.log.Warn("failed to fetch subjects, keeping previous state: %v", err)
		return
	}
	p.subjects = subjects
}

// Create posts a new subject and refetches on success.
func (p *SubjectPanel) Create(ctx context.Context, input models.NewSubject) (*models.Subject, error) {
	subject, err := p.client.CreateSubject(ctx, input)
	if err != nil {
		return nil, err
	}
	p.Refresh(ctx)
	return subject, nil
}
