package restapi

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
)

// HTTPVerb enumerates supported HTTP operations.
type HTTPVerb int

const (
	// Unknown represents an unspecified HTTP verb.
	Unknown HTTPVerb = iota
	// GET lists or retrieves resources.
	GET
	// GET_ONE retrieves a single resource.
	GET_ONE
	// DELETE removes resources.
	DELETE
	// POST creates resources.
	POST
	// PUT replaces resources.
	PUT
	// PATCH partially updates resources.
	PATCH
)

// RestMethod describes a REST route handler.
type RestMethod struct {
	Verb    HTTPVerb
	Path    string
	Handler func(c *gin.Context)
	// Public routes skip bearer token verification.
	Public bool
}

// Registry holds the REST methods a router is built from.
type Registry struct {
	restMethods map[string]RestMethod
}

func NewRegistry() *Registry {
	return &Registry{
		restMethods: make(map[string]RestMethod),
	}
}

// httpMethod returns the gin route method the verb is mounted with. GET and GET_ONE
// share one.
func (v HTTPVerb) httpMethod() (string, error) {
	switch v {
	case GET, GET_ONE:
		return http.MethodGet, nil
	case DELETE:
		return http.MethodDelete, nil
	case POST:
		return http.MethodPost, nil
	case PUT:
		return http.MethodPut, nil
	case PATCH:
		return http.MethodPatch, nil
	}
	return "", fmt.Errorf("HTTP verb %d not supported", v)
}

// RegisterMethod builds a RestMethod and registers it using Register.
func (r *Registry) RegisterMethod(verb HTTPVerb, path string, h func(c *gin.Context)) error {
	m := RestMethod{
		Verb:    verb,
		Path:    path,
		Handler: h,
	}
	return r.Register(m)
}

// Register inserts a RestMethod into the registry preventing duplicates. Verbs mounted
// with the same HTTP method on the same path are duplicates.
func (r *Registry) Register(m RestMethod) error {
	method, err := m.Verb.httpMethod()
	if err != nil {
		return err
	}
	if m.Handler == nil {
		return fmt.Errorf("can't add %s %s, handler can't be nil", method, m.Path)
	}
	key := fmt.Sprintf("%s_%s", method, m.Path)
	if _, exists := r.restMethods[key]; exists {
		return fmt.Errorf("can't add %s, an existing handler in REST method map exists", key)
	}
	r.restMethods[key] = m
	return nil
}

// RestMethods returns all registered RestMethod entries ordered by path then verb.
func (r *Registry) RestMethods() []RestMethod {
	methods := make([]RestMethod, 0, len(r.restMethods))
	for _, m := range r.restMethods {
		methods = append(methods, m)
	}
	sort.Slice(methods, func(i, j int) bool {
		if methods[i].Path != methods[j].Path {
			return methods[i].Path < methods[j].Path
		}
		return methods[i].Verb < methods[j].Verb
	})
	return methods
}

// mount adds the registered methods to group, wrapping non public ones with verify.
func (r *Registry) mount(group *gin.RouterGroup, verify gin.HandlerFunc) {
	for _, rm := range r.RestMethods() {
		handlers := []gin.HandlerFunc{rm.Handler}
		if !rm.Public && verify != nil {
			handlers = []gin.HandlerFunc{verify, rm.Handler}
		}
		// Register only admits supported verbs.
		method, _ := rm.Verb.httpMethod()
		group.Handle(method, rm.Path, handlers...)
	}
}
