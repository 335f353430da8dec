/*
Package server implements msgpack IPC for the ninekey lexicon.

Clients write msgpack-encoded requests to stdin, one after another, and read one response per request from
stdout. Requests are handled in order, and every response carries the time taken in microseconds.

# IPC

On start the server sends

	{"status": "ready"}

Each request names an op and carries the word or query in "w":

	{"id": "r1", "op": "insert", "w": "cat", "n": 5}
	{"id": "r2", "op": "prefix", "w": "ca", "l": 10}
	{"id": "r3", "op": "resolve", "w": "228"}

and is answered with the fields that op fills in:

	{"id": "r2", "status": "ok", "entries": [{"w": "car", "n": 3}, {"w": "cat", "n": 5}], "t": 12}
	{"id": "r3", "status": "ok", "steps": ["2 c", "22 ca", "228 cat"], "best": "cat", "t": 9}

A failed op answers with status "error", a message in "e" and an HTTP-like code:

	{"id": "r4", "status": "error", "e": "word already exists: \"cat\" has count 5", "code": 409}

# Ops

	insert   add w with count n (n > 0, w not stored yet)
	remove   delete w, "found" tells whether it was stored
	update   set the count of stored word w to n
	lookup   count of w in "n", 0 when missing
	match    wildcard pattern w, '?' one rune, '*' any run; sorted words
	prefix   words starting with w, lowest count first
	correct  words whose key sequence is within one edit of digits w, highest count first
	resolve  best letter prefix after each digit of w, plus the final guess in "best"
	stats    vocabulary and cache counters
	health   liveness

Lists are cut to min(l, max_results) when l > 0, and to max_results otherwise.
*/
package server

import "github.com/bastiangx/ninekey/pkg/lexicon"

// Ops understood by the server
const (
	OpInsert  = "insert"
	OpRemove  = "remove"
	OpUpdate  = "update"
	OpLookup  = "lookup"
	OpMatch   = "match"
	OpPrefix  = "prefix"
	OpCorrect = "correct"
	OpResolve = "resolve"
	OpStats   = "stats"
	OpHealth  = "health"
)

// Response statuses
const (
	StatusReady = "ready"
	StatusOK    = "ok"
	StatusError = "error"
)

// Request is one client message
type Request struct {
	ID    string `msgpack:"id"`
	Op    string `msgpack:"op"`
	Word  string `msgpack:"w,omitempty"`
	Count int    `msgpack:"n,omitempty"`
	Limit int    `msgpack:"l,omitempty"`
}

// Response is one server message. Only the fields of the answered op are set.
type Response struct {
	ID        string          `msgpack:"id,omitempty"`
	Status    string          `msgpack:"status"`
	Found     bool            `msgpack:"found,omitempty"`
	Count     int             `msgpack:"n,omitempty"`
	Words     []string        `msgpack:"words,omitempty"`
	Entries   []lexicon.Entry `msgpack:"entries,omitempty"`
	Steps     []string        `msgpack:"steps,omitempty"`
	Best      string          `msgpack:"best,omitempty"`
	Stats     map[string]int  `msgpack:"stats,omitempty"`
	TimeTaken int64           `msgpack:"t,omitempty"`
	Error     string          `msgpack:"e,omitempty"`
	Code      int             `msgpack:"code,omitempty"`
}

// Error codes
const (
	CodeBadRequest = 400
	CodeNotFound   = 404
	CodeConflict   = 409
	CodeInternal   = 500
)
