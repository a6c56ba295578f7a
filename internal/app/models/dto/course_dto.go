package dto

import "github.com/yigit/admissions/internal/app/models"

// CreateCourseRequest is the body of a course creation request. Omitted
// numbers fall back to 12 months and 30 seats.
type CreateCourseRequest struct {
	Name           string  `json:"name" validate:"required,max=120" example:"MCA - Computer Applications"`
	DurationMonths *int    `json:"durationMonths" validate:"omitempty,min=1" example:"24"`
	SeatsTotal     *int    `json:"seatsTotal" validate:"omitempty,min=0" example:"60"`
	Description    *string `json:"description" validate:"omitempty,max=500" example:"Master of Computer Applications"`
}

// UpdateCourseRequest is the body of a course update. Omitted optional
// fields keep their stored value.
type UpdateCourseRequest struct {
	Name           string  `json:"name" validate:"required,max=120" example:"MCA - Computer Applications"`
	DurationMonths *int    `json:"durationMonths" validate:"omitempty,min=1" example:"24"`
	SeatsTotal     *int    `json:"seatsTotal" validate:"omitempty,min=0" example:"60"`
	Description    *string `json:"description" validate:"omitempty,max=500" example:"Master of Computer Applications"`
}

// CourseResponse is a course with its seat availability
type CourseResponse struct {
	ID             int64   `json:"id" example:"1"`
	Name           string  `json:"name" example:"MCA - Computer Applications"`
	DurationMonths int     `json:"durationMonths" example:"24"`
	SeatsTotal     int     `json:"seatsTotal" example:"60"`
	SeatsTaken     int     `json:"seatsTaken" example:"12"`
	SeatsAvailable int     `json:"seatsAvailable" example:"48"`
	Description    *string `json:"description,omitempty" example:"Master of Computer Applications"`
}

// NewCourseResponse converts a course model
func NewCourseResponse(course *models.Course) CourseResponse {
	return CourseResponse{
		ID:             course.ID,
		Name:           course.Name,
		DurationMonths: course.DurationMonths,
		SeatsTotal:     course.SeatsTotal,
		SeatsTaken:     course.SeatsTaken,
		SeatsAvailable: course.SeatsAvailable(),
		Description:    course.Description,
	}
}

// NewCourseResponses converts a list of course models
func NewCourseResponses(courses []*models.Course) []CourseResponse {
	result := make([]CourseResponse, 0, len(courses))
	for _, course := range courses {
		result = append(result, NewCourseResponse(course))
	}
	return result
}
