package response

import (
	"github.com/gin-gonic/gin"

	"github.com/ripplehq/ripple/pkg/apperr"
)

// Err writes the JSON error body for a service failure. The client always
// sees {"error": "<message>"} with the status mapped from the error kind.
func Err(c *gin.Context, err error) {
	c.JSON(apperr.KindOf(err).HTTPStatus(), gin.H{"error": apperr.Message(err)})
}

// AbortErr writes the error body and stops the handler chain. Used by
// middleware so no downstream work runs after a failed guard.
func AbortErr(c *gin.Context, err error) {
	c.AbortWithStatusJSON(apperr.KindOf(err).HTTPStatus(), gin.H{"error": apperr.Message(err)})
}
