// Package response renders the JSON envelope shared by every endpoint:
// a boolean "status" field plus the payload, and for mutations a
// human-readable "message". Failure responses always report status false.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Success(c *gin.Context, code int, payload gin.H) {
	body := gin.H{"status": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(code, body)
}

func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"status": false, "message": message})
}

func ValidationFail(c *gin.Context, errs map[string]string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"status": false, "errors": errs})
}
