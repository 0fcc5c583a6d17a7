package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/coursecatalog/internal/db"
	"github.com/Nixie-Tech-LLC/coursecatalog/internal/http/api"
	courseapi "github.com/Nixie-Tech-LLC/coursecatalog/internal/http/api/courses/endpoints"
	userapi "github.com/Nixie-Tech-LLC/coursecatalog/internal/http/api/users/endpoints"
	"github.com/Nixie-Tech-LLC/coursecatalog/internal/mqtt"
	"github.com/Nixie-Tech-LLC/coursecatalog/internal/redis"
)

// Services are the backends the routes are wired to.
type Services struct {
	Store    db.Store
	Cache    redis.Cache
	CacheTTL time.Duration
	Events   mqtt.Publisher
}

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, svc Services) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		ExposeHeaders: []string{
			"Content-Length",
			"Location",
		},
		AllowCredentials: false,
	}))

	courses := courseapi.Dependencies{
		Store:    svc.Store,
		Cache:    svc.Cache,
		CacheTTL: svc.CacheTTL,
		Events:   svc.Events,
	}

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api",
	},
		healthModule(svc.Store),
		courseapi.CoursePublicModule(courses),
		userapi.UserPublicModule(svc.Store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api",
		Auth:   true,
		Store:  svc.Store,
	},
		courseapi.CourseModule(courses),
		userapi.UserSessionModule(svc.Store),
	)
}

func healthModule(store db.Store) api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/health", func(ctx *gin.Context) (any, *api.Error) {
			if err := store.Ping(ctx.Request.Context()); err != nil {
				return nil, api.InternalError(err, "health check failed")
			}
			return gin.H{"status": "ok"}, nil
		})
	})
}
