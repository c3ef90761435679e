package resputil

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"

	"github.com/redink-lab/redink/pkg/apperror"
)

// Envelope is the response body shape. Payload fields are spliced in
// beside success and message, e.g. {"success":true,"article":{...}}.
type Envelope map[string]any

func envelope(ok bool, msg string, payload Envelope) Envelope {
	// message 永远在场，空串也占位，客户端不必判断键是否存在
	body := Envelope{"success": ok, "message": msg}
	for k, v := range payload {
		body[k] = v
	}
	return body
}

// Success writes a 200 with the payload spliced into the envelope.
func Success(c *gin.Context, payload Envelope) {
	c.JSON(http.StatusOK, envelope(true, "", payload))
}

// Created writes a 201 with the payload spliced into the envelope.
func Created(c *gin.Context, payload Envelope) {
	c.JSON(http.StatusCreated, envelope(true, "", payload))
}

// Message writes a 200 carrying only a human-readable message.
func Message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, envelope(true, msg, nil))
}

// HTTPError aborts the request with the given status and message.
func HTTPError(c *gin.Context, statusCode int, msg string) {
	c.AbortWithStatusJSON(statusCode, envelope(false, msg, nil))
}

// BadRequestError is the short form for malformed input.
func BadRequestError(c *gin.Context, msg string) {
	HTTPError(c, http.StatusBadRequest, msg)
}

// Error answers err. Operational errors keep their status and message;
// anything else is logged and becomes an opaque 500 so internals never
// leak to clients.
func Error(c *gin.Context, err error) {
	if opErr, ok := apperror.FromError(err); ok {
		HTTPError(c, opErr.Status, opErr.Message)
		return
	}
	klog.ErrorS(err, "unexpected error", "path", c.FullPath())
	HTTPError(c, http.StatusInternalServerError, "internal server error")
}
