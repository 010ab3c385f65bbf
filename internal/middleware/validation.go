package middleware

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/my2a/courseselect/internal/app/models/dto"
)

// ValidatedBodyKey is the context key under which ValidateRequest stores the body
const ValidatedBodyKey = "validatedBody"

// ValidateRequest binds the JSON body into a fresh value of obj's type, checks
// its `binding` tags and stores the result under ValidatedBodyKey. A failing
// body aborts the chain with a 400.
func ValidateRequest(obj interface{}) gin.HandlerFunc {
	typ := reflect.TypeOf(obj)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}

	return func(c *gin.Context) {
		body := reflect.New(typ).Interface()
		if err := c.ShouldBindJSON(body); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
			return
		}

		c.Set(ValidatedBodyKey, body)
		c.Next()
	}
}

// ValidatedBody returns the body stored by ValidateRequest
func ValidatedBody[T any](c *gin.Context) (*T, bool) {
	v, ok := c.Get(ValidatedBodyKey)
	if !ok {
		return nil, false
	}
	body, ok := v.(*T)
	return body, ok
}
