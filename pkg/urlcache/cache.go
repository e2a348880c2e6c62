// Package urlcache holds freshly generated PDF URLs just long enough for the
// trainer's success-page redirect. It is not a durable store.
package urlcache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// TTL caps how long a redirect link stays valid.
const TTL = 5 * time.Minute

// Cache maps contact IDs to rendered-PDF URLs with self-expiring entries.
type Cache struct {
	store *gocache.Cache
}

func New() *Cache {
	return &Cache{store: gocache.New(TTL, time.Minute)}
}

// Put records the PDF URL for a contact; the entry expires on its own.
func (c *Cache) Put(contactID, pdfURL string) {
	c.store.Set(contactID, pdfURL, gocache.DefaultExpiration)
}

// Get returns the cached URL for a contact, or false when it expired or was
// never set.
func (c *Cache) Get(contactID string) (string, bool) {
	v, ok := c.store.Get(contactID)
	if !ok {
		return "", false
	}
	return v.(string), true
}
