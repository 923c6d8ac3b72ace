package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/open-cli-collective/bbcode-cli/pkg/bbcode"
)

// GetContent returns a content item by id. Results are cached for the
// lifetime of the client.
func (c *Client) GetContent(ctx context.Context, id string) (*Content, error) {
	c.mu.Lock()
	cached, ok := c.cache[id]
	c.mu.Unlock()
	if ok {
		return cached, nil
	}

	body, err := c.Get(ctx, "/content/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}

	var content Content
	if err := json.Unmarshal(body, &content); err != nil {
		return nil, fmt.Errorf("failed to parse content response: %w", err)
	}

	c.mu.Lock()
	c.cache[id] = &content
	c.mu.Unlock()
	return &content, nil
}

// Fetch implements bbcode.ContentLookup. Unknown ids yield a nil record and
// no error.
func (c *Client) Fetch(ctx context.Context, id string) (*bbcode.ContentRecord, error) {
	content, err := c.GetContent(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bbcode.ContentRecord{
		AuthorName:      content.Author.Name(),
		AuthorURL:       content.Author.URL,
		AuthorAvatar:    content.Author.Avatar,
		AuthorRank:      content.Author.Rank,
		AuthorSpecialty: content.Author.Specialty,
		PageURL:         content.Content.URL,
		PageTitle:       content.Content.Title,
	}, nil
}

var _ bbcode.ContentLookup = (*Client)(nil)
