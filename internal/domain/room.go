// Package domain contains the core business entities and rules for the room filter service.
// These entities are independent of the filtering engine and form the vocabulary shared by
// the adapter, the HTTP layer and the catalog loader.
package domain

// Room represents a bookable room as published by the hotel's content catalog.
type Room struct {
	// ID is the catalog identifier of the room (e.g., "deluxe-suite")
	ID string `json:"id" yaml:"id"`

	// Title is the display name of the room
	Title string `json:"title" yaml:"title"`

	// Description is the marketing description shown on the listing
	Description string `json:"description" yaml:"description"`

	// Size is a free-text size label (e.g., "45 m²", "approx. 30sqm")
	Size string `json:"size" yaml:"size"`

	// Price is the nightly rate
	Price float64 `json:"price" yaml:"price"`

	// Capacity is the maximum number of guests
	Capacity int `json:"capacity" yaml:"capacity"`

	// Amenities lists the room's amenities as authored (e.g., "WiFi", "Minibar")
	Amenities []string `json:"amenities" yaml:"amenities"`

	// Available reports whether the room can currently be booked
	Available bool `json:"available" yaml:"available"`

	// Featured marks rooms promoted on the listing
	Featured bool `json:"featured" yaml:"featured"`
}
