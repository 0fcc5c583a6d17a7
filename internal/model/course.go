package model

import "time"

type Course struct {
	ID              int       `db:"id"`
	Title           string    `db:"title"`
	Description     string    `db:"description"`
	EstimatedTime   *string   `db:"estimated_time"`
	MaterialsNeeded *string   `db:"materials_needed"`
	UserID          int       `db:"user_id"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// CourseOwner is the public projection of the user owning a course.
type CourseOwner struct {
	FirstName    string `db:"first_name"`
	LastName     string `db:"last_name"`
	EmailAddress string `db:"email_address"`
}

// CourseWithOwner is a course joined to its owner, as returned by the listing queries.
type CourseWithOwner struct {
	Course
	Owner CourseOwner `db:"owner"`
}
