// Package models defines the domain types for Skillet.
package models

import "time"

// Recipe represents a parsed recipe note in the vault.
type Recipe struct {
	Path        string    `json:"path"`
	Title       string    `json:"title"`
	Tags        []string  `json:"tags,omitempty"`
	Ingredients []string  `json:"ingredients,omitempty"` // raw lines from the Ingredients section
	Checksum    string    `json:"checksum"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NoteMetadata is a lightweight representation returned by vault list
// operations. It covers any .md file, recipe or not.
type NoteMetadata struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}
