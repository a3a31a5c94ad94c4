package mfiles

import (
	"context"
	"net/url"
)

// QuickSearch runs a search as typed into the desktop client's search box.
func (c *Client) QuickSearch(ctx context.Context, query string) (*SearchResults, error) {
	var out SearchResults
	if err := c.Get(ctx, "objects?q="+url.QueryEscape(query), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search runs a search with a raw query string, e.g. "o=0&p1002=Report".
func (c *Client) Search(ctx context.Context, rawQuery string) (*SearchResults, error) {
	var out SearchResults
	if err := c.Get(ctx, "objects?"+rawQuery, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
