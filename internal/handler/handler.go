// Package handler is the entry point for business logic after the router.
//
// It parses requests, runs input validation through the validation package,
// and calls the appropriate service layer, acting as the interface between
// the HTTP request and the core business logic.
package handler
