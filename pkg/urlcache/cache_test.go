package urlcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCachePutGet(t *testing.T) {
	c := New()

	_, ok := c.Get("contact-1")
	assert.False(t, ok)

	c.Put("contact-1", "https://example.com/a.pdf")
	url, ok := c.Get("contact-1")
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/a.pdf", url)

	// latest write wins
	c.Put("contact-1", "https://example.com/b.pdf")
	url, _ = c.Get("contact-1")
	assert.Equal(t, "https://example.com/b.pdf", url)
}

func TestCacheKeysAreIndependent(t *testing.T) {
	c := New()
	c.Put("a", "https://example.com/a.pdf")
	c.Put("b", "https://example.com/b.pdf")

	urlA, _ := c.Get("a")
	urlB, _ := c.Get("b")
	assert.NotEqual(t, urlA, urlB)
}
