package variables

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

const templateCacheSize = 1024

// templateCache memoizes parsed templates. Documents are resolved once
// per deployment but share many string values (URLs, rules, header
// templates) across services, so parses repeat heavily.
var templateCache, _ = lru.New[string, *Template](templateCacheSize)

// parseCached returns the parsed form of s, consulting the shared LRU.
func parseCached(s string) *Template {
	if t, ok := templateCache.Get(s); ok {
		return t
	}
	t := ParseTemplate(s)
	templateCache.Add(s, t)
	return t
}
