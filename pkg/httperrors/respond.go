package httperrors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// OK writes the success envelope with extra payload fields merged in.
func OK(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// Respond writes the failure envelope for err. Unexpected errors get a
// generic message so internals never reach the client.
func Respond(c *gin.Context, err error) {
	status := StatusCode(err)

	message := "something went wrong"
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Kind != KindUnexpected {
		message = appErr.Message
	}

	body := gin.H{"success": false, "message": message}
	if status == http.StatusBadRequest || status == http.StatusConflict {
		if appErr != nil && appErr.Err != nil {
			body["error"] = appErr.Err.Error()
		}
	}
	c.JSON(status, body)
}

// Abort writes the failure envelope and stops the middleware chain.
func Abort(c *gin.Context, err error) {
	Respond(c, err)
	c.Abort()
}
