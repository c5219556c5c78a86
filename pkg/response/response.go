package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/academy-console/pkg/errors"
)

// Envelope is the `{data: ...}` wrapper some endpoints use. Others return the
// payload bare; the console's transport tolerates both, and the mock API
// keeps both shapes alive on purpose.
type Envelope struct {
	Data interface{} `json:"data"`
}

// JSON sends data wrapped in the envelope.
func JSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Envelope{Data: data})
}

// Bare sends data without the envelope.
func Bare(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends the `{"message": ...}` error shape the real backend uses.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	status := appErr.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{"message": appErr.Message})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
