// Package events defines the audit events emitted by gateway operations
// and the emitter that fans them out to registered handlers. Every
// successful mint, request, response and update produces exactly one
// event carrying the operation's observable attributes; failed operations
// emit nothing.
package events
