package router

import (
	"github.com/gin-gonic/gin"
)

type RequestContext = gin.Context

type MiddlewareFunc = gin.HandlerFunc

// ServiceResult is the JSON envelope every API handler returns. Error is only
// serialized when set.
type ServiceResult struct {
	StatusCode int    `json:"code"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Error      string `json:"error,omitempty"`
}

// PageResult names the template a page handler renders.
type PageResult struct {
	StatusCode int
	Template   string
	Data       any
}

type RateLimitResponse struct {
	Limit      int    `json:"limit"`
	Window     string `json:"window"`
	RetryAfter string `json:"retry_after"`
}

type HandlerFunction func(*RequestContext) *ServiceResult

type PageFunction func(*RequestContext) *PageResult

type RESTController struct {
	name         string
	mountPoint   string
	version      string
	handlerCount int
	prepare      func(*RouterService, *RESTController)
}

func (result *ServiceResult) ToJSON() gin.H {
	h := gin.H{
		"code":    result.StatusCode,
		"data":    result.Data,
		"message": result.Message,
	}
	if result.Error != "" {
		h["error"] = result.Error
	}
	return h
}

func (result *ServiceResult) IsSuccess() bool {
	return result.StatusCode >= 200 && result.StatusCode < 300
}

func (result *ServiceResult) IsError() bool {
	return result.StatusCode >= 400
}
