package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/conciergeelvirad/ELVIRA-sub003/internal/crud"
)

// Table is the REST binding of one backend table. It satisfies
// crud.Operations so a Store can persist through it.
type Table[T crud.Entity] struct {
	client  *Client
	name    string
	hotelID string
}

// NewTable binds a table. hotelID, when set, scopes List calls.
func NewTable[T crud.Entity](c *Client, name, hotelID string) *Table[T] {
	return &Table[T]{client: c, name: name, hotelID: hotelID}
}

// Name returns the table name.
func (t *Table[T]) Name() string { return t.name }

func (t *Table[T]) path() string { return "/api/" + url.PathEscape(t.name) }

func (t *Table[T]) itemPath(id string) string { return t.path() + "/" + url.PathEscape(id) }

// List returns the hotel's rows, optionally narrowed by a server-side search.
func (t *Table[T]) List(ctx context.Context, search string) ([]T, error) {
	return t.ListWhere(ctx, QueryParams{"search": search})
}

// ListWhere returns rows matching params. The table's hotel scope is added
// unless params sets hotel_id itself.
func (t *Table[T]) ListWhere(ctx context.Context, params QueryParams) ([]T, error) {
	q := QueryParams{}
	for k, v := range params {
		q[k] = v
	}
	if _, ok := q["hotel_id"]; !ok && t.hotelID != "" {
		q["hotel_id"] = t.hotelID
	}
	data, err := t.client.get(ctx, buildQuery(t.path(), q))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.name, err)
	}
	return decodeList[T](data)
}

// Get fetches one row.
func (t *Table[T]) Get(ctx context.Context, id string) (T, error) {
	data, err := t.client.get(ctx, t.itemPath(id))
	if err != nil {
		var zero T
		return zero, fmt.Errorf("get %s %s: %w", t.name, id, err)
	}
	return t.decodeEntity(data)
}

// Create inserts a row and returns it with its server-assigned id.
func (t *Table[T]) Create(ctx context.Context, fields crud.Patch) (T, error) {
	data, err := t.client.post(ctx, t.path(), fields)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("create %s: %w", t.name, err)
	}
	return t.decodeEntity(data)
}

// Update applies a partial change and returns the merged row.
func (t *Table[T]) Update(ctx context.Context, id string, fields crud.Patch) (T, error) {
	data, err := t.client.patch(ctx, t.itemPath(id), fields)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("update %s %s: %w", t.name, id, err)
	}
	return t.decodeEntity(data)
}

// Delete removes a row.
func (t *Table[T]) Delete(ctx context.Context, id string) error {
	data, err := t.client.del(ctx, t.itemPath(id))
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", t.name, id, err)
	}
	if _, err := decodeOne[Deleted](data); err != nil {
		return err
	}
	return nil
}

func (t *Table[T]) decodeEntity(data []byte) (T, error) {
	item, err := decodeOne[T](data)
	if err != nil {
		return item, err
	}
	if item.EntityID() == "" {
		return item, fmt.Errorf("decode %s: %w", t.name, crud.ErrInvalidID)
	}
	return item, nil
}
