package endpoints

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/coursecatalog/internal/db"
	"github.com/Nixie-Tech-LLC/coursecatalog/internal/http/api"
	"github.com/Nixie-Tech-LLC/coursecatalog/internal/http/api/courses/packets"
	"github.com/Nixie-Tech-LLC/coursecatalog/internal/model"
	"github.com/Nixie-Tech-LLC/coursecatalog/internal/mqtt"
	"github.com/Nixie-Tech-LLC/coursecatalog/internal/redis"
)

const (
	// CourseListGenerationKey counts list invalidations. Payloads are cached
	// under a key carrying the generation they were read in, so a payload
	// read before an invalidation is never served after it.
	CourseListGenerationKey = "courses:list:generation"
	courseListKeyPrefix     = "courses:list:"
)

const (
	msgNoCourses      = "No courses exist"
	msgCourseNotFound = "The requested course does not exist"
	msgUnknownUser    = "The given userId does not reference an existing user"
	msgNotOwner       = "You are not allowed to delete this course"
)

// Dependencies are the collaborators of the course endpoints. Cache and Events
// may be nil, in which case caching and event publishing are disabled.
type Dependencies struct {
	Store    db.Store
	Cache    redis.Cache
	CacheTTL time.Duration
	Events   mqtt.Publisher
}

type CourseController struct {
	store    db.Store
	cache    redis.Cache
	cacheTTL time.Duration
	events   mqtt.Publisher
}

func newCourseController(deps Dependencies) *CourseController {
	ctl := &CourseController{
		store:    deps.Store,
		cache:    deps.Cache,
		cacheTTL: deps.CacheTTL,
		events:   deps.Events,
	}
	if ctl.cache == nil {
		ctl.cache = redis.Noop{}
	}
	if ctl.events == nil {
		ctl.events = mqtt.Noop{}
	}
	return ctl
}

// CoursePublicModule mounts the anonymous read-only /courses endpoints.
func CoursePublicModule(deps Dependencies) api.Module {
	ctl := newCourseController(deps)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/courses", ctl.listCourses)
		c.PUBLIC_GET("/courses/:id", ctl.getCourse)
	})
}

// CourseModule mounts the authenticated /courses endpoints.
func CourseModule(deps Dependencies) api.Module {
	ctl := newCourseController(deps)
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/courses", ctl.createCourse)
		c.PUT("/courses/:id", ctl.updateCourse)
		c.DELETE("/courses/:id", ctl.deleteCourse)
	})
}

// GET /api/courses
func (cc *CourseController) listCourses(ctx *gin.Context) (any, *api.Error) {
	reqCtx := ctx.Request.Context()

	key, cacheable := cc.listKey(reqCtx)
	if cacheable {
		cached, hit, err := cc.cache.Get(reqCtx, key)
		if err != nil {
			log.Warn().Err(err).Msg("course list cache read failed")
		}
		if hit {
			return json.RawMessage(cached), nil
		}
	}

	all, err := cc.store.ListCoursesWithOwner(reqCtx)
	if err != nil {
		return nil, api.InternalError(err, "could not list courses")
	}
	if len(all) == 0 {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: msgNoCourses}
	}

	out := packets.CourseListResponse{Courses: make([]packets.CourseResponse, 0, len(all))}
	for _, c := range all {
		out.Courses = append(out.Courses, packets.NewCourseResponse(c))
	}

	if cacheable {
		if encoded, err := json.Marshal(out); err == nil {
			if err := cc.cache.Set(reqCtx, key, encoded, cc.cacheTTL); err != nil {
				log.Warn().Err(err).Msg("course list cache write failed")
			}
		}
	}
	return out, nil
}

// listKey returns the cache key for the current list generation. The list is
// not cached when the generation cannot be read.
func (cc *CourseController) listKey(ctx context.Context) (string, bool) {
	raw, ok, err := cc.cache.Get(ctx, CourseListGenerationKey)
	if err != nil {
		log.Warn().Err(err).Msg("course list generation read failed")
		return "", false
	}
	generation := "0"
	if ok {
		generation = string(raw)
	}
	return courseListKeyPrefix + generation, true
}

// GET /api/courses/:id
func (cc *CourseController) getCourse(ctx *gin.Context) (any, *api.Error) {
	id, ok := courseID(ctx)
	if !ok {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: msgCourseNotFound}
	}

	course, err := cc.store.GetCourseWithOwner(ctx.Request.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: msgCourseNotFound}
	}
	if err != nil {
		return nil, api.InternalError(err, "could not load course")
	}

	return packets.CourseDetailResponse{Course: packets.NewCourseResponse(*course)}, nil
}

// POST /api/courses
func (cc *CourseController) createCourse(ctx *gin.Context, user *model.User) (any, *api.Error) {
	var request packets.CreateCourseRequest
	if apiErr := api.BindJSON(ctx, &request); apiErr != nil {
		return nil, apiErr
	}

	ownerID := request.UserID
	if ownerID == 0 {
		ownerID = user.ID
	}

	course := &model.Course{
		Title:           request.Title,
		Description:     request.Description,
		EstimatedTime:   request.EstimatedTime,
		MaterialsNeeded: request.MaterialsNeeded,
		UserID:          ownerID,
	}

	reqCtx := ctx.Request.Context()
	id, err := cc.store.CreateCourse(reqCtx, course)
	if errors.Is(err, db.ErrUnknownUser) {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: msgUnknownUser}
	}
	if err != nil {
		return nil, api.InternalError(err, "could not create course")
	}

	log.Info().Int("course_id", id).Int("user_id", ownerID).Msg("course created")
	cc.invalidateList(reqCtx)
	cc.publish(mqtt.TopicCourseCreated, mqtt.NewCourseEvent("course_created", id, ownerID))

	return api.Status{Code: http.StatusCreated, Location: fmt.Sprintf("/api/courses/%d", id)}, nil
}

// PUT /api/courses/:id
func (cc *CourseController) updateCourse(ctx *gin.Context, user *model.User) (any, *api.Error) {
	return api.Status{Code: http.StatusOK}, nil
}

// DELETE /api/courses/:id
func (cc *CourseController) deleteCourse(ctx *gin.Context, user *model.User) (any, *api.Error) {
	id, ok := courseID(ctx)
	if !ok {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: msgCourseNotFound}
	}

	reqCtx := ctx.Request.Context()
	course, err := cc.store.GetCourseByID(reqCtx, id)
	if errors.Is(err, db.ErrNotFound) {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: msgCourseNotFound}
	}
	if err != nil {
		return nil, api.InternalError(err, "could not load course")
	}

	if course.UserID != user.ID {
		log.Warn().Int("course_id", id).Int("user_id", user.ID).Msg("delete refused, caller does not own course")
		return nil, &api.Error{Code: http.StatusUnauthorized, Message: msgNotOwner}
	}

	err = cc.store.DeleteCourse(reqCtx, id)
	if errors.Is(err, db.ErrNotFound) {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: msgCourseNotFound}
	}
	if err != nil {
		return nil, api.InternalError(err, "could not delete course")
	}

	log.Info().Int("course_id", id).Int("user_id", user.ID).Msg("course deleted")
	cc.invalidateList(reqCtx)
	cc.publish(mqtt.TopicCourseDeleted, mqtt.NewCourseEvent("course_deleted", id, user.ID))

	return api.Status{Code: http.StatusNoContent}, nil
}

func (cc *CourseController) invalidateList(ctx context.Context) {
	if _, err := cc.cache.Incr(ctx, CourseListGenerationKey); err != nil {
		log.Warn().Err(err).Msg("course list cache invalidation failed")
	}
}

func (cc *CourseController) publish(topic string, event mqtt.CourseEvent) {
	if err := cc.events.Publish(topic, event); err != nil {
		log.Warn().Err(err).Str("topic", topic).Msg("course event not published")
	}
}

func courseID(ctx *gin.Context) (int, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		log.Debug().Str("id_raw", ctx.Param("id")).Msg("invalid course id in request")
		return 0, false
	}
	return id, true
}
