package filterengine

// Stats contains per-category rule counters of a loaded rule set.
type Stats struct {
	// Total is the number of valid rules loaded.
	Total int `json:"total"`

	// Domain is the number of block rules of the domain kind, both exact
	// and wildcard.
	Domain int `json:"domain"`

	// DomainMapEntries is the number of distinct domains in the exact
	// block lookup map.
	DomainMapEntries int `json:"domainMapEntries"`

	// ThirdParty is the number of $third-party block rules.
	ThirdParty int `json:"thirdParty"`

	// FirstParty is the number of $first-party block rules.
	FirstParty int `json:"firstParty"`

	// Path is the number of wildcard path block rules.
	Path int `json:"path"`

	// Script is the number of $script block rules.
	Script int `json:"script"`

	// Regex is the number of regex block rules.
	Regex int `json:"regex"`

	// Whitelist is the number of exception rules.
	Whitelist int `json:"whitelist"`

	// ElementHiding is the number of skipped cosmetic lines.
	ElementHiding int `json:"elementHiding"`

	// Comments is the number of skipped comment lines.
	Comments int `json:"comments"`

	// Invalid is the number of lines that failed to parse.
	Invalid int `json:"invalid"`
}

// CacheStats contains counters of a matcher's URL cache.
type CacheStats struct {
	// HitRate is Hits over the total number of lookups, zero when there
	// were none.
	HitRate float64 `json:"hitRate"`

	// Hits is the number of cache hits.
	Hits uint64 `json:"hits"`

	// Misses is the number of cache misses.
	Misses uint64 `json:"misses"`

	// Size is the current number of cached entries.
	Size int `json:"size"`

	// MaxSize is the cache capacity.
	MaxSize int `json:"maxSize"`
}

// EngineStats combines the rule-set and cache counters of one matcher.
type EngineStats struct {
	// Rules contains the rule-set counters.
	Rules Stats `json:"rules"`

	// Cache contains the URL-cache counters.
	Cache CacheStats `json:"cache"`
}
