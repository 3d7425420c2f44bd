package models

// Course represents a course in the catalog.
type Course struct {
	ID       int64   `json:"id" db:"id" example:"1"`
	Name     string  `json:"name" db:"name" example:"Math"`
	Price    float64 `json:"price" db:"price" example:"49990"`
	Duration string  `json:"duration" db:"duration" example:"8 weeks"`

	// AvailableSeats is the remaining capacity. It never goes negative:
	// each enrollment takes one seat, each removal or transfer-away
	// returns one. Mutated only by the enrollment service.
	AvailableSeats int `json:"availableSeats" db:"available_seats" example:"30"`
}
