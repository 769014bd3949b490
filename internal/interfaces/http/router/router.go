// Package router mounts the catalog API resources on a gin engine.
package router

import (
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
)

// RouteRegistrar adds routes to a router group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router mounts registrars under /api/<version>. Middleware given to Use
// applies to that prefix only, so probes such as /health stay outside it.
type Router struct {
	engine     *gin.Engine
	version    string
	middleware []gin.HandlerFunc
	registrars []RouteRegistrar
}

type Option func(*Router)

// WithAPIVersion overrides the default "v1" prefix segment
func WithAPIVersion(version string) Option {
	return func(r *Router) { r.version = version }
}

func NewRouter(engine *gin.Engine, opts ...Option) *Router {
	r := &Router{engine: engine, version: "v1"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Router) Use(middleware ...gin.HandlerFunc) *Router {
	r.middleware = append(r.middleware, middleware...)
	return r
}

func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrars...)
	return r
}

// Setup mounts everything registered so far and returns the API group
func (r *Router) Setup() *gin.RouterGroup {
	api := r.engine.Group("/api/"+r.version, r.middleware...)
	for _, reg := range r.registrars {
		reg.RegisterRoutes(api)
	}
	return api
}

// Route is one method and path of a Resource, relative to the resource prefix
type Route struct {
	Method   string
	Path     string
	handlers []gin.HandlerFunc
}

// Resource is the set of routes of one catalog resource, e.g. /complements
type Resource struct {
	name       string
	prefix     string
	middleware []gin.HandlerFunc
	routes     []Route
	children   []*Resource
}

func NewResource(name, prefix string) *Resource {
	return &Resource{name: name, prefix: prefix}
}

func (res *Resource) Name() string   { return res.name }
func (res *Resource) Prefix() string { return res.prefix }

// Use adds middleware to the resource and its nested resources
func (res *Resource) Use(middleware ...gin.HandlerFunc) *Resource {
	res.middleware = append(res.middleware, middleware...)
	return res
}

func (res *Resource) add(method, p string, handlers []gin.HandlerFunc) *Resource {
	res.routes = append(res.routes, Route{Method: method, Path: p, handlers: handlers})
	return res
}

func (res *Resource) GET(p string, h ...gin.HandlerFunc) *Resource {
	return res.add(http.MethodGet, p, h)
}

func (res *Resource) POST(p string, h ...gin.HandlerFunc) *Resource {
	return res.add(http.MethodPost, p, h)
}

func (res *Resource) PUT(p string, h ...gin.HandlerFunc) *Resource {
	return res.add(http.MethodPut, p, h)
}

func (res *Resource) DELETE(p string, h ...gin.HandlerFunc) *Resource {
	return res.add(http.MethodDelete, p, h)
}

// Nest creates a resource mounted below this one
func (res *Resource) Nest(name, prefix string) *Resource {
	child := NewResource(name, prefix)
	res.children = append(res.children, child)
	return child
}

// Routes lists the routes of the resource and its nested resources with
// paths relative to the parent of this resource
func (res *Resource) Routes() []Route {
	var routes []Route
	for _, rt := range res.routes {
		rt.Path = joinPath(res.prefix, rt.Path)
		routes = append(routes, rt)
	}
	for _, child := range res.children {
		for _, rt := range child.Routes() {
			rt.Path = joinPath(res.prefix, rt.Path)
			routes = append(routes, rt)
		}
	}
	return routes
}

// RegisterRoutes implements RouteRegistrar
func (res *Resource) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(res.prefix, res.middleware...)
	for _, rt := range res.routes {
		group.Handle(rt.Method, rt.Path, rt.handlers...)
	}
	for _, child := range res.children {
		child.RegisterRoutes(group)
	}
}

func joinPath(prefix, p string) string {
	if p == "" {
		return prefix
	}
	return path.Join(prefix, p)
}
