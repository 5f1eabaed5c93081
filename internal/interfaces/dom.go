package interfaces

// DOMElement is a single node returned by a DOMHandle query. Implementations
// wrap either a static parse tree (goquery) or a live browser target
// (chromedp); callers never see the difference.
type DOMElement interface {
	// TextContent returns the element's text content, with leading and
	// trailing whitespace trimmed.
	TextContent() string

	// OuterHTML returns the element's serialized markup including its own tag.
	OuterHTML() string

	// GetAttribute returns the named attribute's value and whether it was present.
	GetAttribute(name string) (string, bool)
}

// DOMHandle is the inbound surface the selector adapter queries against. It
// is borrowed read-only for the duration of one render and must never be
// retained past that call.
type DOMHandle interface {
	// QuerySelectorAll returns every element matching selector, in document
	// order. An invalid selector returns no elements and no error: the
	// selector adapter degrades invalid selectors to the empty string rather
	// than surfacing a fault.
	QuerySelectorAll(selector string) []DOMElement
}
