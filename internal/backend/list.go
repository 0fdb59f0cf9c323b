package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// DecodeList normalizes the list shapes the backend returns: a bare array,
// a page envelope with a "content" array, or a single object. An empty or
// null body is an empty list.
func DecodeList[T any](data []byte) ([]T, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return []T{}, nil
	}

	switch data[0] {
	case '[':
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, err
		}
		if items == nil {
			items = []T{}
		}
		return items, nil
	case '{':
		var envelope struct {
			Content json.RawMessage `json:"content"`
		}
		if err := json.Unmarshal(data, &envelope); err == nil && len(envelope.Content) > 0 {
			return DecodeList[T](envelope.Content)
		}
		var item T
		if err := json.Unmarshal(data, &item); err != nil {
			return nil, err
		}
		return []T{item}, nil
	default:
		return nil, fmt.Errorf("unexpected list payload starting with %q", data[0])
	}
}

// Doer is satisfied by *Client.
type Doer interface {
	Do(ctx context.Context, r Request, out any) error
}

// GetList performs a GET and decodes the body with DecodeList.
func GetList[T any](ctx context.Context, c Doer, endpoint, path string, query url.Values) ([]T, error) {
	return GetListWith[T](ctx, c, Request{Method: http.MethodGet, Endpoint: endpoint, Path: path, Query: query})
}

// GetListWith is GetList for a fully specified request.
func GetListWith[T any](ctx context.Context, c Doer, r Request) ([]T, error) {
	var raw json.RawMessage
	if err := c.Do(ctx, r, &raw); err != nil {
		return nil, err
	}
	items, err := DecodeList[T](raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s list: %w", r.Endpoint, err)
	}
	return items, nil
}
