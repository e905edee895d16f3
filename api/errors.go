package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/aerodrome/internal/domain"
	"github.com/gin-gonic/gin"
)

// writeError maps the error taxonomy to HTTP: business-rule rejections are
// 409 with their reason code, missing references 404, everything else 500.
func writeError(c *gin.Context, err error) {
	if rule, ok := domain.AsRuleError(err); ok {
		c.JSON(http.StatusConflict, gin.H{"error": rule.Message, "code": string(rule.Code)})
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
