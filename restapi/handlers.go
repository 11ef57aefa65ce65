package restapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/sharedcode/dbconnect"
)

type putUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type setCacheValueRequest struct {
	Value string `json:"value"`
}

// statusOf maps a facade error to the HTTP status reported to the caller.
func statusOf(err error) int {
	switch dbconnect.CodeOf(err) {
	case dbconnect.RemoteWriteError, dbconnect.RemoteReadError, dbconnect.DecodeError:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// putUser godoc
// @Summary putUser writes a user record.
// @Description putUser writes (or overwrites) the user record keyed by id.
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "UserId of the record" minlength(1)
// @Param user body putUserRequest true "Name and email"
// @Success 200 {object} dbconnect.Ack
// @Failure 400 {object} map[string]any
// @Failure 502 {object} map[string]any
// @Router /users/{id} [put]
// @Security Bearer
func (s *Server) putUser(c *gin.Context) {
	userID := c.Param("id")
	var req putUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("invalid request body, details: %v", err)})
		return
	}
	ack, err := s.records.PutRecord(c.Request.Context(), userID, req.Name, req.Email)
	if err != nil {
		c.JSON(statusOf(err), gin.H{"message": fmt.Sprintf("put user %s failed, error: %v", userID, err)})
		return
	}
	c.JSON(http.StatusOK, ack)
}

// getUser godoc
// @Summary getUser returns the user record with a given id.
// @Tags Users
// @Produce json
// @Param id path string true "UserId of the record" minlength(1)
// @Success 200 {object} dbconnect.UserRecord
// @Failure 404 {object} map[string]any
// @Failure 502 {object} map[string]any
// @Router /users/{id} [get]
// @Security Bearer
func (s *Server) getUser(c *gin.Context) {
	userID := c.Param("id")
	found, r, err := s.records.GetRecord(c.Request.Context(), userID)
	if err != nil {
		c.JSON(statusOf(err), gin.H{"message": fmt.Sprintf("get user %s failed, error: %v", userID, err)})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": fmt.Sprintf("No item found with UserId: %s", userID)})
		return
	}
	c.JSON(http.StatusOK, r)
}

// setCacheValue godoc
// @Summary setCacheValue sets the value of a cache key, no expiration.
// @Tags Cache
// @Accept json
// @Produce json
// @Param key path string true "Cache key"
// @Param value body setCacheValueRequest true "Value to set"
// @Success 200 {object} dbconnect.Ack
// @Failure 400 {object} map[string]any
// @Failure 502 {object} map[string]any
// @Router /cache/{key} [put]
// @Security Bearer
func (s *Server) setCacheValue(c *gin.Context) {
	key := c.Param("key")
	var req setCacheValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("invalid request body, details: %v", err)})
		return
	}
	ack, err := s.cache.SetValue(c.Request.Context(), key, req.Value)
	if err != nil {
		c.JSON(statusOf(err), gin.H{"message": fmt.Sprintf("set key %s failed, error: %v", key, err)})
		return
	}
	c.JSON(http.StatusOK, ack)
}

// getCacheValue godoc
// @Summary getCacheValue returns the value of a cache key.
// @Tags Cache
// @Produce json
// @Param key path string true "Cache key"
// @Success 200 {object} dbconnect.CacheEntry
// @Failure 404 {object} map[string]any
// @Failure 502 {object} map[string]any
// @Router /cache/{key} [get]
// @Security Bearer
func (s *Server) getCacheValue(c *gin.Context) {
	key := c.Param("key")
	found, v, err := s.cache.GetValue(c.Request.Context(), key)
	if err != nil {
		c.JSON(statusOf(err), gin.H{"message": fmt.Sprintf("get key %s failed, error: %v", key, err)})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": fmt.Sprintf("key %s not set", key)})
		return
	}
	c.JSON(http.StatusOK, dbconnect.CacheEntry{Key: key, Value: v})
}

// health godoc
// @Summary health pings the record store and the cache.
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (s *Server) health(c *gin.Context) {
	ctx := c.Request.Context()
	var recordsErr, cacheErr error
	var g errgroup.Group
	g.Go(func() error {
		recordsErr = s.records.Ping(ctx)
		return recordsErr
	})
	g.Go(func() error {
		cacheErr = s.cache.Ping(ctx)
		return cacheErr
	})
	status := http.StatusOK
	if g.Wait() != nil {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{
		"records": healthOf(recordsErr),
		"cache":   healthOf(cacheErr),
	})
}

func healthOf(err error) string {
	if err != nil {
		return "unavailable: " + err.Error()
	}
	return "ok"
}
