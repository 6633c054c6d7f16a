// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives validated
// input from handlers, applies the domain rules, and calls repository methods
// to read and mutate data.
package service
