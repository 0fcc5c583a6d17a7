// exposes a Store interface that is passed to API calls w/ param requirements
package db

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/Nixie-Tech-LLC/coursecatalog/internal/model"
)

type Store interface {
	Ping(ctx context.Context) error

	// user functions
	CreateUser(ctx context.Context, u *model.User) (int, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id int) (*model.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)

	// course functions
	CreateCourse(ctx context.Context, c *model.Course) (int, error)
	GetCourseByID(ctx context.Context, id int) (*model.Course, error)
	GetCourseWithOwner(ctx context.Context, id int) (*model.CourseWithOwner, error)
	ListCoursesWithOwner(ctx context.Context) ([]model.CourseWithOwner, error)
	DeleteCourse(ctx context.Context, id int) error
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(db *sqlx.DB) Store {
	return &pgStore{db: db}
}

func (s *pgStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
