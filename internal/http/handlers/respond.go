package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hardik-python-lr/our-gate-backend/domain"
)

// Envelope is the body of every JSON response.
type Envelope struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
	Results any    `json:"results"`
}

func respond(c *gin.Context, status int, code domain.Code, results any) {
	c.JSON(status, Envelope{Message: code.Message(), Status: status, Results: results})
}

// respondError maps a classified error onto the envelope. Soft gates are not
// failures for the client: they answer 200 with the flag set.
func respondError(c *gin.Context, err error) {
	de := domain.AsError(err)

	switch de.Kind {
	case domain.KindSoftGate:
		respond(c, http.StatusOK, de.Code, gin.H{de.Flag: true})
	case domain.KindValidation:
		results := gin.H{"non_field_errors": []string{de.Message()}}
		if len(de.Fields) > 0 {
			results["errors"] = de.Fields
		}
		respond(c, http.StatusBadRequest, de.Code, results)
	case domain.KindForbidden:
		respond(c, http.StatusForbidden, de.Code, nil)
	case domain.KindNotFound:
		respond(c, http.StatusNotFound, de.Code, nil)
	case domain.KindUnauthorized:
		respond(c, http.StatusUnauthorized, de.Code, nil)
	default:
		_ = c.Error(err)
		respond(c, http.StatusInternalServerError, domain.CodeSomethingWentWrong, nil)
	}
}

func respondBindError(c *gin.Context, err error) {
	_ = c.Error(err).SetType(gin.ErrorTypeBind)
	respond(c, http.StatusBadRequest, domain.CodeBadRequest, gin.H{"non_field_errors": []string{err.Error()}})
}

// currentUserID reads the id the auth middleware stored as a string.
func currentUserID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.GetString("user_id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// caller resolves the authenticated user or answers 401.
func caller(c *gin.Context) (uint, bool) {
	id, ok := currentUserID(c)
	if !ok {
		respond(c, http.StatusUnauthorized, domain.CodeUnauthorized, nil)
	}
	return id, ok
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		respond(c, http.StatusNotFound, domain.CodeNotFound, nil)
		return 0, false
	}
	return uint(id), true
}
