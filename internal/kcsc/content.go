package kcsc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/jaehyun-im/kcscbot/internal/model"
)

// FetchContent retrieves a standard's sections via CodeViewer and flattens
// them into one plain-text document. The query-parameter request shape is
// tried first; on any failure the identifier and type are retried as path
// segments (the API supports both, inconsistently). When both fail, the
// second attempt's error propagates.
func (c *Client) FetchContent(ctx context.Context, code, docType string) (model.FetchedDocument, error) {
	body, reqURL, err := c.getJSON(ctx, "CodeViewer", url.Values{"Type": {docType}, "Code": {code}})
	if err != nil {
		body, reqURL, err = c.getJSON(ctx, "CodeViewer/"+docType+"/"+code, nil)
		if err != nil {
			return model.FetchedDocument{}, err
		}
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return model.FetchedDocument{}, &FormatError{URL: reqURL, Excerpt: c.excerpt(string(body)), Err: err}
	}

	// Some responses wrap the document in a one-element array.
	if arr, ok := v.([]interface{}); ok {
		if len(arr) == 0 {
			return model.FetchedDocument{}, nil
		}
		v = arr[0]
	}

	obj, ok := v.(map[string]interface{})
	if !ok {
		return model.FetchedDocument{}, &FormatError{URL: reqURL, Excerpt: c.excerpt(string(body))}
	}

	doc := model.FetchedDocument{
		Name: model.ProbeString(obj, "Name", "name"),
	}

	sections := obj["List"]
	if sections == nil {
		sections = obj["list"]
	}

	var parts []string
	if list, ok := sections.([]interface{}); ok {
		for _, item := range list {
			if part := flattenSection(item); part != "" {
				parts = append(parts, part)
			}
		}
	} else if part := strings.TrimSpace(StripHTML(stringify(sections))); part != "" {
		// Not list-shaped: treat the whole payload as a single unlabeled section.
		parts = append(parts, part)
	}

	doc.Text = strings.Join(parts, "\n\n")
	return doc, nil
}

// flattenSection renders one section as "## Title\nBody" or just the body
// when the section is untitled.
func flattenSection(item interface{}) string {
	sec, ok := item.(map[string]interface{})
	if !ok {
		return strings.TrimSpace(StripHTML(stringify(item)))
	}

	title := strings.TrimSpace(model.ProbeString(sec, "Title", "title"))
	contents := strings.TrimSpace(StripHTML(model.ProbeString(sec, "Contents", "contents")))

	if title != "" {
		return strings.TrimSpace("## " + title + "\n" + contents)
	}
	return contents
}

// stringify renders an arbitrary JSON value as text for stripping.
func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
