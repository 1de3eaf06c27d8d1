package domain

import "time"

// Room models a bookable room together with its storage object keys.
type Room struct {
	ID          string
	Name        string
	ImageKeys   []string
	PanoramaKey *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Like is a guest's bookmark on a room. Likes reference rooms by foreign
// key and must be removed before their room row is deleted.
type Like struct {
	ID        string
	RoomID    string
	GuestID   string
	CreatedAt time.Time
}
