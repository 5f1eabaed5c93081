package templating

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/inkwell/internal/models"
)

// compiledCache is a bounded, process-local cache of RenderResult keyed by
// (template, page fingerprint). Entries are immutable once stored: a
// render's output and prompt table never change shape after caching, so
// concurrent readers never observe a partially-built entry.
type compiledCache struct {
	store *ristretto.Cache[string, RenderResult]
	ttl   time.Duration
	cron  *cron.Cron
}

// NewCache builds the bounded, process-local compiled-render cache that
// Compiler.Render consults, sized by maxEntries (ristretto's admission
// policy, roughly "entries") with an optional per-entry ttl (zero disables
// expiry). Callers outside this package construct a cache only through this
// function and pass the result straight to NewCompiler.
func NewCache(maxEntries int64, ttl time.Duration) (*compiledCache, error) {
	return newCompiledCache(maxEntries, ttl)
}

// newCompiledCache builds a cache bounded by maxCost (ristretto's admission
// policy, roughly "entries"); ttl of zero disables expiry.
func newCompiledCache(maxCost int64, ttl time.Duration) (*compiledCache, error) {
	store, err := ristretto.NewCache(&ristretto.Config[string, RenderResult]{
		NumCounters:        maxCost * 10,
		MaxCost:            maxCost,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}
	return &compiledCache{store: store, ttl: ttl}, nil
}

func (c *compiledCache) get(key string) (RenderResult, bool) {
	if c == nil || c.store == nil {
		return RenderResult{}, false
	}
	return c.store.Get(key)
}

func (c *compiledCache) set(key string, result RenderResult) {
	if c == nil || c.store == nil {
		return
	}
	if c.ttl > 0 {
		c.store.SetWithTTL(key, result, 1, c.ttl)
	} else {
		c.store.Set(key, result, 1)
	}
	c.store.Wait()
}

// StartJanitor runs a cron-scheduled tick alongside ristretto's own
// TTL-driven eviction. Each tick only writes a debug log line; it does not
// inspect or evict entries. schedule is a standard five-field cron
// expression.
func (c *compiledCache) StartJanitor(schedule string, logger arbor.ILogger) (*cron.Cron, error) {
	j := cron.New()
	_, err := j.AddFunc(schedule, func() {
		if logger != nil {
			logger.Debug().Msg("templating cache janitor: sweep tick")
		}
	})
	if err != nil {
		return nil, err
	}
	j.Start()
	c.cron = j
	return j, nil
}

// Close stops the janitor, if running, and releases the cache's background
// goroutines.
func (c *compiledCache) Close() {
	if c == nil {
		return
	}
	if c.cron != nil {
		c.cron.Stop()
	}
	if c.store != nil {
		c.store.Close()
	}
}

// pageFingerprint hashes every page field a render actually depends on —
// either merged straight into the variable map (mergeVars) or consulted
// directly by a provider (meta:name:/meta:property: reads page.Meta) — so
// two PageContext values that differ in any of them never collide in the
// cache.
func pageFingerprint(page *models.PageContext) string {
	h := sha256.New()
	field := func(s string) {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	field(page.URL)
	field(page.Title)
	field(page.Author)
	field(page.Description)
	field(page.Domain)
	field(page.Favicon)
	field(page.Image)
	field(page.Published)
	field(page.Site)
	field(strconv.Itoa(page.Words))
	field(page.ContentHTML)
	field(page.SelectionHTML)
	field(page.FullHTML)
	for _, hl := range page.Highlights {
		field(hl.Text)
		field(hl.Timestamp.Format(time.RFC3339))
		field(hl.Notes)
	}
	for _, m := range page.Meta {
		field(m.AttrName)
		field(m.AttrValue)
		field(m.Content)
	}
	for _, blob := range page.JSONLD {
		field(blob)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func cacheKey(template string, page *models.PageContext) string {
	h := sha256.New()
	h.Write([]byte(template))
	h.Write([]byte{0})
	h.Write([]byte(pageFingerprint(page)))
	return hex.EncodeToString(h.Sum(nil))
}
