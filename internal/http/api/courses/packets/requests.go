package packets

// REQUESTS FOR /api/courses/*

// CreateCourseRequest is the body of POST /api/courses. UserID defaults to the
// caller when omitted.
type CreateCourseRequest struct {
	Title           string  `json:"title" validate:"required" msg:"The Title field is required"`
	Description     string  `json:"description" validate:"required" msg:"The Description field is required"`
	EstimatedTime   *string `json:"estimatedTime"`
	MaterialsNeeded *string `json:"materialsNeeded"`
	UserID          int     `json:"userId"`
}
