package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// NoRouteHandler keeps unmatched routes in the API's own error shape.
func NoRouteHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"error": fmt.Sprintf("Cannot %s %s", c.Request.Method, c.Request.URL.Path),
	})
}
