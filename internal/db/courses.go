package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/coursecatalog/internal/model"
)

const courseWithOwnerColumns = `
	c.id,
	c.title,
	c.description,
	c.estimated_time,
	c.materials_needed,
	c.user_id,
	c.created_at,
	c.updated_at,
	u.first_name    AS "owner.first_name",
	u.last_name     AS "owner.last_name",
	u.email_address AS "owner.email_address"`

func (s *pgStore) CreateCourse(ctx context.Context, c *model.Course) (int, error) {
	query := `
	INSERT INTO courses
	(title, description, estimated_time, materials_needed, user_id, created_at, updated_at)
	VALUES
	($1,    $2,          $3,             $4,               $5,      now(),      now())
	RETURNING id;`

	var newID int
	if err := s.db.QueryRowxContext(ctx, query,
		c.Title,
		c.Description,
		c.EstimatedTime,
		c.MaterialsNeeded,
		c.UserID,
	).Scan(&newID); err != nil {
		log.Error().Err(err).Int("user_id", c.UserID).Msg("failed to create course")
		return 0, translateError(err)
	}
	return newID, nil
}

func (s *pgStore) GetCourseByID(ctx context.Context, id int) (*model.Course, error) {
	var c model.Course
	query := `
	SELECT
	id, title, description, estimated_time, materials_needed, user_id, created_at, updated_at
	FROM courses
	WHERE id = $1;`

	err := s.db.GetContext(ctx, &c, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Int("course_id", id).Msg("failed to get course by id")
		return nil, err
	}
	return &c, nil
}

func (s *pgStore) GetCourseWithOwner(ctx context.Context, id int) (*model.CourseWithOwner, error) {
	var c model.CourseWithOwner
	query := `
	SELECT` + courseWithOwnerColumns + `
	FROM courses c
	JOIN users   u ON u.id = c.user_id
	WHERE c.id = $1;`

	err := s.db.GetContext(ctx, &c, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Int("course_id", id).Msg("failed to get course with owner")
		return nil, err
	}
	return &c, nil
}

func (s *pgStore) ListCoursesWithOwner(ctx context.Context) ([]model.CourseWithOwner, error) {
	all := []model.CourseWithOwner{}
	query := `
	SELECT` + courseWithOwnerColumns + `
	FROM courses c
	JOIN users   u ON u.id = c.user_id
	ORDER BY c.id;`

	if err := s.db.SelectContext(ctx, &all, query); err != nil {
		log.Error().Err(err).Msg("failed to list courses")
		return nil, err
	}
	return all, nil
}

// deletes a course by ID. returns ErrNotFound if no row was removed.
func (s *pgStore) DeleteCourse(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM courses WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("course_id", id).Msg("failed to delete course")
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
