// Package repository handles all interactions with the database.
//
// It contains the SQL and the methods to fetch, persist, update, and delete
// rows, abstracting query logic away from the service layer.
package repository
