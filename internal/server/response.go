package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aleksanderbl29/meal-planner/internal/constants"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "requestId"
)

type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	RequestID string    `json:"requestId"`
}

// Response is the envelope every API endpoint answers with.
type Response struct {
	Data     interface{} `json:"data"`
	Errors   []string    `json:"errors"`
	Metadata Metadata    `json:"metadata"`
}

func newResponse(data interface{}, errs []string, requestID string) Response {
	if requestID == "" {
		requestID = uuid.New().String()
	}
	if errs == nil {
		errs = []string{}
	}
	return Response{
		Data:   data,
		Errors: errs,
		Metadata: Metadata{
			Timestamp: time.Now().UTC(),
			Version:   constants.APIVersion,
			RequestID: requestID,
		},
	}
}

func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, newResponse(data, nil, requestID(c)))
}

func respondError(c *gin.Context, status int, errs ...string) {
	c.AbortWithStatusJSON(status, newResponse(nil, errs, requestID(c)))
}
