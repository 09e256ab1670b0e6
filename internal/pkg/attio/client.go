package attio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sellerinteractive/attio-sync/internal/pkg/config"
)

const entriesPageSize = 500

// ErrNotFound marks a 404 from the Attio API, so callers can distinguish
// an absent resource from a failing one.
var ErrNotFound = errors.New("attio: not found")

// APIError is a non-2xx answer with the upstream status and body preserved.
type APIError struct {
	Status int
	Body   []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("attio api error: status=%d body=%s", e.Status, string(e.Body))
}

// IsNotFound reports whether err represents a missing Attio resource.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Client wraps the Attio REST API with a static bearer key.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client

	log *slog.Logger
}

func NewClient(cfg config.AttioConfig, log *slog.Logger) *Client {
	return &Client{
		BaseURL:    cfg.BaseURL,
		APIKey:     cfg.APIKey,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		log:        log,
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			c.log.Error("attio api error", "error", err)
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	endpoint := strings.TrimRight(c.BaseURL, "/") + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		c.log.Error("attio api error", "error", err)
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.log.Error("attio api error: no response received", "error", err)
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Body: respBody}
		c.log.Error("attio api error", "status", resp.StatusCode, "body", string(respBody))
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			c.log.Error("error decoding attio response", "error", err)
			return err
		}
	}
	return nil
}

// GetObject fetches a single object by id.
func (c *Client) GetObject(ctx context.Context, id string) (map[string]any, error) {
	var out map[string]any
	if err := c.do(ctx, http.MethodGet, "/objects/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	return out, nil
}

// CreateObject creates a new object in the workspace.
func (c *Client) CreateObject(ctx context.Context, data map[string]any) (map[string]any, error) {
	var out map[string]any
	if err := c.do(ctx, http.MethodPost, "/objects", nil, data, &out); err != nil {
		return nil, fmt.Errorf("failed to create object: %w", err)
	}
	c.log.Info("object created successfully")
	return out, nil
}

// UpdateObject patches an existing object.
func (c *Client) UpdateObject(ctx context.Context, id string, data map[string]any) (map[string]any, error) {
	var out map[string]any
	if err := c.do(ctx, http.MethodPatch, "/objects/"+url.PathEscape(id), nil, data, &out); err != nil {
		return nil, fmt.Errorf("failed to update object: %w", err)
	}
	c.log.Info("object updated successfully", "object_id", id)
	return out, nil
}

// GetRecord fetches a record of a standard object type, e.g. a deal. Used
// by the client-facing views to read documents live.
func (c *Client) GetRecord(ctx context.Context, objectType, recordID string) (map[string]any, error) {
	path := "/objects/" + url.PathEscape(objectType) + "/records/" + url.PathEscape(recordID)
	var out map[string]any
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to fetch %s record: %w", objectType, err)
	}
	return out, nil
}

// ListCollections fetches all collections of the workspace.
func (c *Client) ListCollections(ctx context.Context) ([]Collection, error) {
	var out collectionsResponse
	if err := c.do(ctx, http.MethodGet, "/workspace/collections", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get collections: %w", err)
	}
	c.log.Info("retrieved collections", "count", len(out.Data))
	return out.Data, nil
}

// GetCollection fetches a collection by its stable API identifier. A
// missing collection surfaces as ErrNotFound.
func (c *Client) GetCollection(ctx context.Context, apiID string) (*Collection, error) {
	var out Collection
	if err := c.do(ctx, http.MethodGet, "/workspace/collections/"+url.PathEscape(apiID), nil, nil, &out); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get collection %s: %w", apiID, err)
	}
	return &out, nil
}

// CreateCollection creates a new collection.
func (c *Client) CreateCollection(ctx context.Context, in CollectionInput) (*Collection, error) {
	var out Collection
	if err := c.do(ctx, http.MethodPost, "/workspace/collections", nil, in, &out); err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}
	c.log.Info("collection created successfully", "api_id", out.APIID)
	return &out, nil
}

// CreateAttribute adds one typed attribute to a collection.
func (c *Client) CreateAttribute(ctx context.Context, collectionAPIID string, in AttributeInput) (*Attribute, error) {
	path := "/workspace/collections/" + url.PathEscape(collectionAPIID) + "/attributes"
	var out Attribute
	if err := c.do(ctx, http.MethodPost, path, nil, in, &out); err != nil {
		return nil, fmt.Errorf("failed to create attribute: %w", err)
	}
	c.log.Info("attribute created successfully", "api_id", out.APIID)
	return &out, nil
}

// ListEntries fetches all records of a collection, following the upstream
// offset cursor until a short page is returned.
func (c *Client) ListEntries(ctx context.Context, collectionAPIID string) ([]Entry, error) {
	path := "/collections/" + url.PathEscape(collectionAPIID) + "/entries"

	var all []Entry
	for offset := 0; ; offset += entriesPageSize {
		query := url.Values{}
		query.Set("limit", strconv.Itoa(entriesPageSize))
		query.Set("offset", strconv.Itoa(offset))

		var out entriesResponse
		if err := c.do(ctx, http.MethodGet, path, query, nil, &out); err != nil {
			return nil, fmt.Errorf("failed to get objects from collection %s: %w", collectionAPIID, err)
		}
		all = append(all, out.Data...)
		if len(out.Data) < entriesPageSize {
			break
		}
	}
	c.log.Info("retrieved entries from collection", "collection", collectionAPIID, "count", len(all))
	return all, nil
}

// CreateEntry creates a record in a collection.
func (c *Client) CreateEntry(ctx context.Context, collectionAPIID string, values EntryValues) (*Entry, error) {
	path := "/collections/" + url.PathEscape(collectionAPIID) + "/entries"
	var out Entry
	if err := c.do(ctx, http.MethodPost, path, nil, entryInput{Values: values}, &out); err != nil {
		return nil, fmt.Errorf("failed to create object in collection %s: %w", collectionAPIID, err)
	}
	return &out, nil
}

// UpdateEntry patches a record in a collection.
func (c *Client) UpdateEntry(ctx context.Context, collectionAPIID, entryID string, values EntryValues) (*Entry, error) {
	path := "/collections/" + url.PathEscape(collectionAPIID) + "/entries/" + url.PathEscape(entryID)
	var out Entry
	if err := c.do(ctx, http.MethodPatch, path, nil, entryInput{Values: values}, &out); err != nil {
		return nil, fmt.Errorf("failed to update object in collection %s: %w", collectionAPIID, err)
	}
	return &out, nil
}
