// Package session holds the state that outlives a single load or save call.
//
// A [State] remembers the most recently loaded rule document, so that later
// saves can default to writing next to it. It is a single slot: every
// successful load overwrites the previous value and no history is kept.
package session
