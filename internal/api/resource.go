package api

import (
	"context"
	"net/http"

	"github.com/noah-isme/academy-console/internal/models"
)

// Resource is a typed client for one REST collection exposing the
// conventional list/get/create/update/delete verbs.
type Resource[T models.Identifiable] struct {
	client *Client
	name   string
	path   string
}

func newResource[T models.Identifiable](c *Client, name, path string) *Resource[T] {
	return &Resource[T]{client: c, name: name, path: path}
}

// List fetches the whole collection.
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := r.client.do(ctx, r.name, http.MethodGet, r.path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Get fetches one entity by id.
func (r *Resource[T]) Get(ctx context.Context, id string) (*T, error) {
	var item T
	if err := r.client.do(ctx, r.name, http.MethodGet, r.path+"/"+id, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create posts a draft payload and returns the server-assigned entity.
func (r *Resource[T]) Create(ctx context.Context, payload interface{}) (*T, error) {
	var item T
	if err := r.client.do(ctx, r.name, http.MethodPost, r.path, payload, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Update replaces the entity identified by id and returns the stored version.
func (r *Resource[T]) Update(ctx context.Context, id string, payload interface{}) (*T, error) {
	var item T
	if err := r.client.do(ctx, r.name, http.MethodPut, r.path+"/"+id, payload, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes the entity identified by id.
func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	return r.client.do(ctx, r.name, http.MethodDelete, r.path+"/"+id, nil, nil)
}

// Students returns the student resource client.
func (c *Client) Students() *Resource[models.Student] {
	return newResource[models.Student](c, "students", "/students")
}

// Standards returns the standard (grade level) resource client.
func (c *Client) Standards() *Resource[models.Standard] {
	return newResource[models.Standard](c, "standards", "/standards")
}

// Subjects returns the subject resource client.
func (c *Client) Subjects() *Resource[models.Subject] {
	return newResource[models.Subject](c, "subjects", "/subjects")
}

// Batches returns the batch resource client.
func (c *Client) Batches() *Resource[models.Batch] {
	return newResource[models.Batch](c, "batches", "/batches")
}

// Announcements returns the announcement resource client.
func (c *Client) Announcements() *Resource[models.Announcement] {
	return newResource[models.Announcement](c, "announcements", "/announcements")
}

// Teachers returns the teacher resource client.
func (c *Client) Teachers() *Resource[models.Teacher] {
	return newResource[models.Teacher](c, "teachers", "/teachers")
}
