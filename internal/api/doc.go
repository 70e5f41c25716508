// Package api provides the HTTP handlers for the gateway service: token
// minting, task request/response, metadata completion and the read-side
// queries, plus the error-to-status mapping shared by all of them.
package api
