package kcsc

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/jaehyun-im/kcscbot/internal/model"
)

// FetchCatalog retrieves the full CodeList for a document type. The endpoint
// has no server-side search; the whole listing is fetched and matched
// locally. The top-level response must be an array; anything else is a
// FormatError. Entries keep their listing order, and entries without a
// resolvable code stay in the catalog so ranking sees them (the matcher
// filters them after scoring).
func (c *Client) FetchCatalog(ctx context.Context, docType string) (model.Catalog, error) {
	body, reqURL, err := c.getJSON(ctx, "CodeList", url.Values{"Type": {docType}})
	if err != nil {
		return nil, err
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, &FormatError{URL: reqURL, Excerpt: c.excerpt(string(body)), Err: err}
	}

	items, ok := v.([]interface{})
	if !ok {
		return nil, &FormatError{URL: reqURL, Excerpt: c.excerpt(string(body))}
	}

	catalog := make(model.Catalog, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		catalog = append(catalog, model.CatalogEntry{
			Name: model.ProbeString(obj, "Name", "name"),
			Code: model.ProbeString(obj, "Code", "code"),
		})
	}

	return catalog, nil
}
