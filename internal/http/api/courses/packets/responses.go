package packets

import "github.com/Nixie-Tech-LLC/coursecatalog/internal/model"

// RESPONSES FOR /api/courses/*

type CourseOwnerResponse struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
}

// CourseResponse mirrors model.CourseWithOwner without timestamps.
type CourseResponse struct {
	ID              int                 `json:"id"`
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	EstimatedTime   *string             `json:"estimatedTime"`
	MaterialsNeeded *string             `json:"materialsNeeded"`
	UserID          int                 `json:"userId"`
	User            CourseOwnerResponse `json:"user"`
}

type CourseListResponse struct {
	Courses []CourseResponse `json:"courses"`
}

type CourseDetailResponse struct {
	Course CourseResponse `json:"course"`
}

func NewCourseResponse(c model.CourseWithOwner) CourseResponse {
	return CourseResponse{
		ID:              c.ID,
		Title:           c.Title,
		Description:     c.Description,
		EstimatedTime:   c.EstimatedTime,
		MaterialsNeeded: c.MaterialsNeeded,
		UserID:          c.UserID,
		User: CourseOwnerResponse{
			FirstName:    c.Owner.FirstName,
			LastName:     c.Owner.LastName,
			EmailAddress: c.Owner.EmailAddress,
		},
	}
}
