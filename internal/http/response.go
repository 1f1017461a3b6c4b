package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"taskboard/internal/apperr"
)

// Every endpoint answers with the same envelope: {statusCode, message,
// data?, error?}. data is present when there is a payload to return; an
// empty task list still counts as a payload, so clients can tell "no tasks"
// from "no data".

func respond(c *gin.Context, status int, message string, data any) {
	body := gin.H{
		"statusCode": status,
		"message":    message,
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// fail maps an error to the envelope. Classified errors surface their
// message; anything else is logged with request context and answered with a
// generic 500.
func (h *Handler) fail(c *gin.Context, err error) {
	appErr := apperr.From(err)
	if appErr == nil {
		appErr = apperr.Internal(err)
	}

	switch appErr.Kind {
	case apperr.KindBadRequest:
		writeError(c, http.StatusBadRequest, "Bad Request", appErr.Message, nil)
	case apperr.KindUnauthorized:
		writeError(c, http.StatusUnauthorized, "Unauthorized", appErr.Message, nil)
	case apperr.KindForbidden:
		var data any
		if appErr.Redirect != "" {
			data = gin.H{"redirect": appErr.Redirect}
		}
		writeError(c, http.StatusForbidden, "Forbidden", appErr.Message, data)
	case apperr.KindNotFound:
		writeError(c, http.StatusNotFound, "Not Found", appErr.Message, nil)
	case apperr.KindPreconditionFailed:
		writeError(c, http.StatusPreconditionFailed, "Precondition Failed", appErr.Message, nil)
	default:
		params := make(map[string]string, len(c.Params))
		for _, p := range c.Params {
			params[p.Key] = p.Value
		}
		h.logger.WithFields(logrus.Fields{
			"route":     c.FullPath(),
			"method":    c.Request.Method,
			"query":     c.Request.URL.RawQuery,
			"params":    params,
			"client_ip": c.ClientIP(),
		}).Errorf("unhandled error: %v", err)
		writeError(c, http.StatusInternalServerError, "Internal Server Error", "something went wrong", nil)
	}
}

func writeError(c *gin.Context, status int, label, message string, data any) {
	body := gin.H{
		"statusCode": status,
		"message":    message,
		"error":      label,
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}
