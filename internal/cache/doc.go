// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

/*
Package cache provides a thread-safe LRU cache with TTL expiration.

The API layer uses it to memoize recommendation responses. Keys include the
model version, so a rebuild makes earlier entries unreachable and they age
out through LRU eviction or TTL.

# Usage Example

	results := cache.NewLRU[models.RecommendationResponse](1024, 10*time.Minute)

	if resp, ok := results.Get(key); ok {
	    return resp
	}
	resp := compute()
	results.Add(key, resp)

# Complexity

Get, Add and Remove are O(1): a map indexes nodes of a doubly-linked list
ordered from most to least recently used. Expired entries are dropped
lazily on Get, or in bulk by CleanupExpired.
*/
package cache
