package dto

// CreateCourseRequest is the payload for creating or replacing a course.
// Validation beyond binding (blank name after trimming, negative values)
// happens in the course service.
type CreateCourseRequest struct {
	Name           string  `json:"name" binding:"required" example:"Math"`
	Price          float64 `json:"price" example:"49990"`
	Duration       string  `json:"duration" example:"8 weeks"`
	AvailableSeats int     `json:"availableSeats" example:"30"`
}
