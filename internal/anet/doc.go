// Package anet implements a minimal client for the Atlantic.Net cloud API.
// Requests are signed query-string calls (HMAC-SHA256 over timestamp and
// request GUID); responses are JSON envelopes keyed by the action name.
package anet
