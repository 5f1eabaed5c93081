// Package contextio decodes the JSON shape a caller supplies in place of a
// real browser extension's content extractor into models.PageContextParams:
// the scalar page fields, meta entries, JSON-LD blobs, and highlights the
// compiler renders against.
package contextio

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ternarybob/inkwell/internal/models"
)

// Payload is the on-disk/inline JSON document shape shared by the inkwell
// CLI (a file path) and the inkwell-mcp server (an inline string argument).
type Payload struct {
	URL           string            `json:"url"`
	Title         string            `json:"title"`
	Author        string            `json:"author"`
	Description   string            `json:"description"`
	Domain        string            `json:"domain"`
	Favicon       string            `json:"favicon"`
	Image         string            `json:"image"`
	Published     string            `json:"published"`
	Site          string            `json:"site"`
	Words         int               `json:"words"`
	ContentHTML   string            `json:"contentHtml"`
	SelectionHTML string            `json:"selectionHtml"`
	FullHTML      string            `json:"fullHtml"`
	Highlights    []highlightField  `json:"highlights"`
	Meta          []metaField       `json:"meta"`
	JSONLD        []json.RawMessage `json:"jsonld"`
}

type highlightField struct {
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
	Notes     string `json:"notes"`
}

type metaField struct {
	AttrName  string `json:"attrName"`
	AttrValue string `json:"attrValue"`
	Content   string `json:"content"`
}

// ParseBytes decodes a JSON document into a Payload.
func ParseBytes(data []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Payload{}, fmt.Errorf("parse page context json: %w", err)
	}
	return p, nil
}

// ReadFile decodes a JSON document on disk into a Payload.
func ReadFile(path string) (Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Payload{}, fmt.Errorf("read page context file %s: %w", path, err)
	}
	return ParseBytes(data)
}

// ToParams converts the payload into validated construction params, layered
// onto base so a caller can pre-populate fields the JSON document never
// carries (namely DOM, which is wired in by the caller, never unmarshaled).
func (p Payload) ToParams(base models.PageContextParams) models.PageContextParams {
	highlights := make([]models.Highlight, 0, len(p.Highlights))
	for _, h := range p.Highlights {
		ts, _ := time.Parse(time.RFC3339, h.Timestamp)
		highlights = append(highlights, models.Highlight{Text: h.Text, Timestamp: ts, Notes: h.Notes})
	}

	meta := make([]models.MetaEntry, 0, len(p.Meta))
	for _, m := range p.Meta {
		meta = append(meta, models.MetaEntry{AttrName: m.AttrName, AttrValue: m.AttrValue, Content: m.Content})
	}

	jsonld := make([]string, 0, len(p.JSONLD))
	for _, blob := range p.JSONLD {
		jsonld = append(jsonld, string(blob))
	}

	params := base
	params.URL = p.URL
	params.Title = p.Title
	params.Author = p.Author
	params.Description = p.Description
	params.Domain = p.Domain
	params.Favicon = p.Favicon
	params.Image = p.Image
	params.Published = p.Published
	params.Site = p.Site
	params.Words = p.Words
	params.ContentHTML = p.ContentHTML
	params.SelectionHTML = p.SelectionHTML
	params.FullHTML = p.FullHTML
	params.Highlights = highlights
	params.Meta = meta
	params.JSONLD = jsonld
	return params
}
