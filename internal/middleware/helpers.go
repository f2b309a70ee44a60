// internal/middleware/helpers.go
package middleware

import "github.com/gin-gonic/gin"

// GetOperator returns the authenticated operator name, if any.
func GetOperator(c *gin.Context) (string, bool) {
	v, exists := c.Get("operator")
	if !exists {
		return "", false
	}
	operator, ok := v.(string)
	return operator, ok
}

// GetJTI returns the token id of the current session, if any.
func GetJTI(c *gin.Context) (string, bool) {
	v, exists := c.Get("jti")
	if !exists {
		return "", false
	}
	jti, ok := v.(string)
	return jti, ok
}
