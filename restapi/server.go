// Package restapi surfaces the user record and cache facades as a REST API.
package restapi

import (
	"fmt"

	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"     // swagger embed files
	ginSwagger "github.com/swaggo/gin-swagger" // gin-swagger middleware

	"github.com/sharedcode/dbconnect"
	"github.com/sharedcode/dbconnect/restapi/docs"
)

// BasePath prefixes all API routes.
const BasePath = "/api/v1"

// Options configures a Server.
type Options struct {
	Auth AuthConfig
	// Verifier overrides the Okta verifier built from Auth.
	Verifier TokenVerifier
}

// Server routes REST calls to a RecordStore and a Cache.
type Server struct {
	records  dbconnect.RecordStore
	cache    dbconnect.Cache
	options  Options
	registry *Registry
}

func NewServer(records dbconnect.RecordStore, cache dbconnect.Cache, options Options) (*Server, error) {
	if records == nil || cache == nil {
		return nil, fmt.Errorf("records and cache parameters can't be nil")
	}
	if options.Verifier == nil && options.Auth.Env != "DEV" {
		options.Verifier = NewOktaVerifier(options.Auth)
	}
	s := &Server{
		records:  records,
		cache:    cache,
		options:  options,
		registry: NewRegistry(),
	}
	if err := s.registerMethods(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) registerMethods() error {
	methods := []RestMethod{
		{Verb: PUT, Path: "/users/:id", Handler: s.putUser},
		{Verb: GET_ONE, Path: "/users/:id", Handler: s.getUser},
		{Verb: PUT, Path: "/cache/:key", Handler: s.setCacheValue},
		{Verb: GET_ONE, Path: "/cache/:key", Handler: s.getCacheValue},
		{Verb: GET, Path: "/health", Handler: s.health, Public: true},
	}
	for _, m := range methods {
		if err := s.registry.Register(m); err != nil {
			return fmt.Errorf("couldn't register %s, details: %w", m.Path, err)
		}
	}
	return nil
}

// Router builds the gin engine serving the registered methods and the swagger UI.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	docs.SwaggerInfo.BasePath = BasePath

	v1 := router.Group(BasePath)
	s.registry.mount(v1, verifyToken(s.options.Auth, s.options.Verifier))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
	return router
}
