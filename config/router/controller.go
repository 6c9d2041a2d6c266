package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/akeren/friendlyfonts/pkg/ratelimit"
)

func normalizePath(controller *RESTController, relativePath string) string {
	var path string = controller.mountPoint

	if relativePath != "" {
		path = path + "/" + relativePath
	}

	if path[0] != '/' {
		path = "/" + path
	}

	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	return strings.ReplaceAll(path, "//", "/")
}

func (routerService *RouterService) keyForPathAndMethod(path, method string) string {
	return fmt.Sprintf("%s-%s", method, path)
}

func (controller *RESTController) bindHandlerToController(routerService *RouterService, path, method string) {
	key := routerService.keyForPathAndMethod(path, method)
	otherController, foundPrevious := routerService.handlerToControllerMap[key]

	if foundPrevious {
		panic(fmt.Sprintf("A handler is already registered for path '%s' by a different controller '%s'", path, otherController.name))
	}

	routerService.handlerToControllerMap[key] = controller
}

func (routerService *RouterService) bindOverrideRateLimiter(path string, limiter ratelimit.RateLimiter) {
	if limiter == nil {
		return
	}

	_, foundPrevious := routerService.rateLimitOverrides[path]
	if foundPrevious {
		panic(fmt.Sprintf("A rate limiter is already registered for path '%s'", path))
	}

	routerService.rateLimitOverrides[path] = limiter
}

func (routerService *RouterService) bindHandlerRateLimiter(path, method string, limiter ratelimit.RateLimiter) {
	key := routerService.keyForPathAndMethod(path, method)
	routerService.bindOverrideRateLimiter(key, limiter)
}

func createHandler(handler HandlerFunction) MiddlewareFunc {
	return func(c *RequestContext) {
		result := handler(c)

		if result == nil {
			c.JSON(http.StatusInternalServerError, undefinedResult().ToJSON())
			return
		}

		c.JSON(result.StatusCode, result.ToJSON())
	}
}

func createPageHandler(handler PageFunction) MiddlewareFunc {
	return func(c *RequestContext) {
		result := handler(c)

		if result == nil {
			c.JSON(http.StatusInternalServerError, undefinedResult().ToJSON())
			return
		}

		c.HTML(result.StatusCode, result.Template, result.Data)
	}
}

func createStaticHandler(fs http.FileSystem) MiddlewareFunc {
	return func(c *RequestContext) {
		name := c.Param("filepath")
		if name == "" || strings.HasSuffix(name, "/") {
			c.AbortWithStatusJSON(http.StatusNotFound, NotFoundResult("Asset not found").ToJSON())
			return
		}

		f, err := fs.Open(name)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, NotFoundResult("Asset not found").ToJSON())
			return
		}
		_ = f.Close()

		c.Header("Cache-Control", "public, max-age=3600")
		c.FileFromFS(name, fs)
	}
}

func undefinedResult() *ServiceResult {
	return InternalServerErrorResult("A handler returned an undefined result. This typically indicates a bug in a handler's implementation.")
}

func NewRESTController(name, mountPoint string, prepare func(*RouterService, *RESTController)) *RESTController {
	mountPoint = strings.ReplaceAll("/"+mountPoint, "//", "/")

	return &RESTController{
		name:       name,
		mountPoint: mountPoint,
		version:    "",
		prepare:    prepare,
	}
}

func NewVersionedRESTController(name, version, mountPoint string, prepare func(*RouterService, *RESTController)) *RESTController {
	// Prefixing the version to the mount point at controller creation clarifies routing and leaves no room for ambiguity.
	finalPath := strings.ReplaceAll("/"+version+"/"+mountPoint, "//", "/")

	return &RESTController{
		name:       name,
		mountPoint: finalPath,
		version:    version,
		prepare:    prepare,
	}
}

func (controller *RESTController) RateLimitWith(routerService *RouterService, limiter ratelimit.RateLimiter) *RESTController {
	routerService.bindOverrideRateLimiter(controller.mountPoint, limiter)
	return controller
}

func (routerService *RouterService) register(
	controller *RESTController,
	limiter ratelimit.RateLimiter,
	method, path string,
	handlers ...MiddlewareFunc,
) string {
	controller.handlerCount++
	mountPoint := normalizePath(controller, path)
	controller.bindHandlerToController(routerService, mountPoint, method)
	routerService.bindHandlerRateLimiter(mountPoint, method, limiter)
	routerService.engine.Handle(method, mountPoint, handlers...)
	routerService.logger.Debug("Handler registered", "method", method, "path", mountPoint)
	return mountPoint
}

func (routerService *RouterService) AddPostHandler(
	controller *RESTController,
	limiter ratelimit.RateLimiter,
	path string,
	handler HandlerFunction,
	middlewares ...MiddlewareFunc,
) {
	routerService.register(controller, limiter, http.MethodPost, path, append(middlewares, createHandler(handler))...)
}

func (routerService *RouterService) AddGetHandler(
	controller *RESTController,
	limiter ratelimit.RateLimiter,
	path string,
	handler HandlerFunction,
	middlewares ...MiddlewareFunc,
) {
	routerService.register(controller, limiter, http.MethodGet, path, append(middlewares, createHandler(handler))...)
}

// AddPageHandler registers a GET route rendered through the engine's HTML
// templates.
func (routerService *RouterService) AddPageHandler(
	controller *RESTController,
	limiter ratelimit.RateLimiter,
	path string,
	handler PageFunction,
	middlewares ...MiddlewareFunc,
) {
	routerService.register(controller, limiter, http.MethodGet, path, append(middlewares, createPageHandler(handler))...)
}

// AddStaticHandler serves fs under path for GET and HEAD. path must end in
// the "*filepath" wildcard.
func (routerService *RouterService) AddStaticHandler(
	controller *RESTController,
	limiter ratelimit.RateLimiter,
	path string,
	fs http.FileSystem,
) {
	if !strings.HasSuffix(path, "*filepath") {
		panic(fmt.Sprintf("static path '%s' must end with *filepath", path))
	}

	serve := createStaticHandler(fs)
	routerService.register(controller, limiter, http.MethodGet, path, serve)
	routerService.register(controller, limiter, http.MethodHead, path, serve)
}

type bodyLimit struct {
	maxBytes int64
	tooLarge *ServiceResult
}

// OverrideBodyLimit replaces the global request body limit for one route.
// A non-nil tooLarge replaces the default 413 answer for bodies that declare
// a length above maxBytes.
func (routerService *RouterService) OverrideBodyLimit(controller *RESTController, method, path string, maxBytes int64, tooLarge *ServiceResult) {
	if maxBytes <= 0 {
		return
	}

	key := routerService.keyForPathAndMethod(normalizePath(controller, path), method)
	if _, found := routerService.bodyLimitOverrides[key]; found {
		panic(fmt.Sprintf("A body limit is already registered for '%s'", key))
	}

	routerService.bodyLimitOverrides[key] = bodyLimit{maxBytes: maxBytes, tooLarge: tooLarge}
}
