package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OptionsGet handles the OPTIONS request for endpoints that only allow GET.
func OptionsGet(c *gin.Context) {
	c.Header("allow", "GET")
	c.Status(http.StatusNoContent)
}

// OptionsPost handles the OPTIONS request for endpoints that only allow POST.
func OptionsPost(c *gin.Context) {
	c.Header("allow", "POST")
	c.Status(http.StatusNoContent)
}

// OptionsGetPost handles the OPTIONS request for collection endpoints.
func OptionsGetPost(c *gin.Context) {
	c.Header("allow", "GET, POST")
	c.Status(http.StatusNoContent)
}

// OptionsGetPatchDelete handles the OPTIONS request for resource endpoints.
func OptionsGetPatchDelete(c *gin.Context) {
	c.Header("allow", "GET, PATCH, DELETE")
	c.Status(http.StatusNoContent)
}
