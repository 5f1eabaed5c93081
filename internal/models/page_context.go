package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/inkwell/internal/interfaces"
)

var validate = validator.New()

// Highlight is one user-captured text selection on the page.
type Highlight struct {
	Text      string
	Timestamp time.Time
	Notes     string
}

// MetaEntry mirrors a single <meta> tag, keyed by its attribute kind
// ("name" or "property") and the attribute's value (e.g. "og:title").
type MetaEntry struct {
	AttrName  string
	AttrValue string
	Content   string
}

// PageContextParams is the inbound, caller-supplied shape validated before a
// PageContext is constructed. Everything the extractor already parsed
// (JSON-LD payloads, meta entries, highlights) is carried verbatim; the
// engine never fetches or re-parses page content itself.
type PageContextParams struct {
	URL           string `validate:"required,url"`
	Title         string
	Author        string
	Description   string
	Domain        string
	Favicon       string
	Image         string
	Published     string
	Site          string
	Words         int
	ContentHTML   string
	SelectionHTML string
	FullHTML      string
	Highlights    []Highlight
	Meta          []MetaEntry
	JSONLD        []string
	DOM           interfaces.DOMHandle
}

// PageContext is the immutable record the compiler renders against. Derived
// string fields are computed exactly once at construction and never
// recomputed during a render.
type PageContext struct {
	URL           string
	Title         string
	Author        string
	Description   string
	Domain        string
	Favicon       string
	Image         string
	Published     string
	Site          string
	Words         int
	ContentHTML   string
	SelectionHTML string
	FullHTML      string
	Highlights    []Highlight
	Meta          []MetaEntry
	JSONLD        []string
	DOM           interfaces.DOMHandle

	// Derived once at construction.
	Content   string
	Selection string
	NoteName  string
	Date      string
	Time      string
}

// NewPageContext validates params and derives the stable string fields.
// A malformed params value (no URL) is the one boundary at which this
// package returns an error; once constructed, a PageContext never fails to
// render.
func NewPageContext(params PageContextParams) (*PageContext, error) {
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	normalizedURL := StripTextFragment(params.URL)

	published := params.Published
	date, clock := derivePublishedParts(published)

	noteName := deriveNoteName(params.Title, normalizedURL)

	return &PageContext{
		URL:           normalizedURL,
		Title:         params.Title,
		Author:        params.Author,
		Description:   params.Description,
		Domain:        params.Domain,
		Favicon:       params.Favicon,
		Image:         params.Image,
		Published:     published,
		Site:          params.Site,
		Words:         params.Words,
		ContentHTML:   params.ContentHTML,
		SelectionHTML: params.SelectionHTML,
		FullHTML:      params.FullHTML,
		Highlights:    params.Highlights,
		Meta:          params.Meta,
		JSONLD:        params.JSONLD,
		DOM:           params.DOM,
		Content:       params.ContentHTML,
		Selection:     params.SelectionHTML,
		NoteName:      noteName,
		Date:          date,
		Time:          clock,
	}, nil
}

// StripTextFragment removes a "#:~:text=..." fragment anchor from a URL,
// emptying the fragment entirely if that anchor was its only content.
// Idempotent: stripping twice equals stripping once.
func StripTextFragment(raw string) string {
	hashIdx := strings.IndexByte(raw, '#')
	if hashIdx < 0 {
		return raw
	}
	directive := strings.Index(raw[hashIdx+1:], ":~:text=")
	if directive < 0 {
		return raw
	}
	if directive == 0 {
		return raw[:hashIdx]
	}
	return raw[:hashIdx+1+directive]
}

func derivePublishedParts(published string) (date, clock string) {
	if published == "" {
		return "", ""
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, published); err == nil {
			return t.Format("2006-01-02"), t.Format("15:04:05")
		}
	}
	if t, err := time.Parse("2006-01-02", published); err == nil {
		return t.Format("2006-01-02"), ""
	}
	return published, ""
}

func deriveNoteName(title, url string) string {
	if strings.TrimSpace(title) != "" {
		return title
	}
	return url
}

// WordsString renders Words the way a variable-map lookup needs it: a plain
// decimal string ("0" when Words is zero), or empty for a nil page.
func (p *PageContext) WordsString() string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(p.Words)
}
