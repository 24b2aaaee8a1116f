package http

import (
	"github.com/hotel-site/room-filter/internal/domain"
)

// SessionResponse is a session's listing together with its identity.
type SessionResponse struct {
	// ID identifies the session in later requests
	ID string `json:"id" example:"7f9c0e4e-3c1f-4d8e-9a57-1e8f0d6c2b11"`

	// URL is the shareable listing address, including page state
	URL string `json:"url" example:"/rooms?page=1&pageSize=10&state=rooms%3A7f9c0e4e-3c1f-4d8e-9a57-1e8f0d6c2b11"`

	domain.RoomListResponse
}
