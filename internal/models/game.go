package models

import "time"

// Game represents a playable game in the static catalog.
// Games are loaded once from the catalog file and never mutated at runtime.
type Game struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Tags        []string  `json:"tags"`
	Image       string    `json:"image,omitempty"`
	PlayLink    string    `json:"playLink"`
	PublishDate time.Time `json:"publishDate"`
}
