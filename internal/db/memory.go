package db

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Nixie-Tech-LLC/coursecatalog/internal/model"
)

// memoryStore keeps users and courses in process memory. It enforces the same
// constraints as the postgres schema: unique email addresses and courses
// referencing an existing user.
type memoryStore struct {
	mu           sync.RWMutex
	users        map[int]model.User
	courses      map[int]model.Course
	nextUserID   int
	nextCourseID int
}

var _ Store = (*memoryStore)(nil)

// NewMemoryStore returns an empty in-memory Store, used for local runs and tests.
func NewMemoryStore() Store {
	return &memoryStore{
		users:        make(map[int]model.User),
		courses:      make(map[int]model.Course),
		nextUserID:   1,
		nextCourseID: 1,
	}
}

func (m *memoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (m *memoryStore) CreateUser(ctx context.Context, u *model.User) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.EmailAddress == u.EmailAddress {
			return 0, ErrDuplicateEmail
		}
	}

	now := time.Now().UTC()
	stored := *u
	stored.ID = m.nextUserID
	stored.CreatedAt = now
	stored.UpdatedAt = now
	m.users[stored.ID] = stored
	m.nextUserID++
	return stored.ID, nil
}

func (m *memoryStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.EmailAddress == email {
			found := u
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memoryStore) GetUserByID(ctx context.Context, id int) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *memoryStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := m.GetUserByEmail(ctx, email)
	if err == ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (m *memoryStore) CreateCourse(ctx context.Context, c *model.Course) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[c.UserID]; !ok {
		return 0, ErrUnknownUser
	}

	now := time.Now().UTC()
	stored := *c
	stored.ID = m.nextCourseID
	stored.CreatedAt = now
	stored.UpdatedAt = now
	m.courses[stored.ID] = stored
	m.nextCourseID++
	return stored.ID, nil
}

func (m *memoryStore) GetCourseByID(ctx context.Context, id int) (*model.Course, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.courses[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (m *memoryStore) GetCourseWithOwner(ctx context.Context, id int) (*model.CourseWithOwner, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.courses[id]
	if !ok {
		return nil, ErrNotFound
	}
	joined := m.withOwner(c)
	return &joined, nil
}

func (m *memoryStore) ListCoursesWithOwner(ctx context.Context) ([]model.CourseWithOwner, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.CourseWithOwner, 0, len(m.courses))
	for _, c := range m.courses {
		out = append(out, m.withOwner(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryStore) DeleteCourse(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.courses[id]; !ok {
		return ErrNotFound
	}
	delete(m.courses, id)
	return nil
}

// caller must hold m.mu
func (m *memoryStore) withOwner(c model.Course) model.CourseWithOwner {
	owner := m.users[c.UserID]
	return model.CourseWithOwner{
		Course: c,
		Owner: model.CourseOwner{
			FirstName:    owner.FirstName,
			LastName:     owner.LastName,
			EmailAddress: owner.EmailAddress,
		},
	}
}
