package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/rpupo63/portfolio-site-backend/models"
)

// Resource is a typed view over one collection endpoint following the
// list/create/update/delete shape shared by projects, skill categories and
// skills.
type Resource[T any] struct {
	client   *Client
	basePath string
}

func NewResource[T any](c *Client, basePath string) *Resource[T] {
	return &Resource[T]{client: c, basePath: basePath}
}

func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.client.do(ctx, http.MethodGet, r.basePath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Resource[T]) Create(ctx context.Context, record *T) (*T, error) {
	var out T
	if err := r.client.do(ctx, http.MethodPost, r.basePath, record, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T]) Update(ctx context.Context, id uuid.UUID, record *T) (*T, error) {
	var out T
	path := fmt.Sprintf("%s/%s", r.basePath, id)
	if err := r.client.do(ctx, http.MethodPut, path, record, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T]) Delete(ctx context.Context, id uuid.UUID) error {
	path := fmt.Sprintf("%s/%s", r.basePath, id)
	return r.client.do(ctx, http.MethodDelete, path, nil, nil)
}

// Collection constructors for the portfolio endpoints.

func Projects(c *Client) *Resource[models.Project] {
	return NewResource[models.Project](c, "/api/projects")
}

func SkillCategories(c *Client) *Resource[models.SkillCategory] {
	return NewResource[models.SkillCategory](c, "/api/skills/categories")
}

func Skills(c *Client) *Resource[models.Skill] {
	return NewResource[models.Skill](c, "/api/skills")
}

// MessageResource adapts the contact endpoint, whose create response wraps the
// record in an envelope and whose only mutable field is the read status.
type MessageResource struct {
	*Resource[models.ContactMessage]
}

func Messages(c *Client) *MessageResource {
	return &MessageResource{NewResource[models.ContactMessage](c, "/api/contact")}
}

func (r *MessageResource) Create(ctx context.Context, record *models.ContactMessage) (*models.ContactMessage, error) {
	var out struct {
		Message string                `json:"message"`
		ID      string                `json:"id"`
		Data    models.ContactMessage `json:"data"`
	}
	if err := r.client.do(ctx, http.MethodPost, r.basePath, record, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// Update transitions the message status through PUT /{id}/status. The rest of
// a contact message is immutable once submitted.
func (r *MessageResource) Update(ctx context.Context, id uuid.UUID, record *models.ContactMessage) (*models.ContactMessage, error) {
	body := map[string]string{"status": record.Status}
	var out models.ContactMessage
	path := fmt.Sprintf("%s/%s/status", r.basePath, id)
	if err := r.client.do(ctx, http.MethodPut, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
