// Package handler is the HTTP layer of the job board.
//
// Each handler binds and validates a request struct through the generic
// Handle helpers, calls one service operation and returns its result.
// Business rules, ownership checks included, live in the service package.
package handler
