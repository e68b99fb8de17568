// Package cache persists Atlantic.Net API responses and the last built
// inventory in <cache_path>/ansible-atlantic_net.cache. Validity is judged
// by file modification time against the configured max age, and documents
// are checked against an embedded JSON Schema before being trusted.
package cache
