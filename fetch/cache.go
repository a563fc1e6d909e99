package fetch

import (
	"net/http"
	"sync"
	"time"

	"github.com/pquerna/cachecontrol"
)

// responseCache keeps fetched responses in memory for as long as the
// origin's Cache-Control headers allow. Entries past their expiry are
// dropped on access.
type responseCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	resp    *Response
	expires time.Time
}

func newResponseCache() *responseCache {
	return &responseCache{entries: make(map[string]cacheEntry)}
}

func (c *responseCache) get(url string) (*Response, bool) {
	c.mu.RLock()
	entry, ok := c.entries[url]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expires) {
		c.mu.Lock()
		delete(c.entries, url)
		c.mu.Unlock()
		return nil, false
	}
	cached := *entry.resp
	cached.FromCache = true
	return &cached, true
}

// store records a response if RFC 7234 allows caching it and the origin
// provided a future expiry.
func (c *responseCache) store(url string, req *http.Request, httpResp *http.Response, resp *Response) {
	reasons, expires, err := cachecontrol.CachableResponse(req, httpResp, cachecontrol.Options{})
	if err != nil || len(reasons) > 0 || !expires.After(time.Now()) {
		return
	}
	c.mu.Lock()
	c.entries[url] = cacheEntry{resp: resp, expires: expires}
	c.mu.Unlock()
}
