package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func slackEventHandler(c *gin.Context) {
	var ev InboundEvent

	if err := c.ShouldBindJSON(&ev); err != nil {
		c.AbortWithStatusJSON(BadRequest("wrong_data"))
		return
	}

	if config.Debug {
		logger.Debugf("slackEventHandler request: %+v", ev)
	}

	body, err := dispatcher.Dispatch(&ev)
	switch err {
	case nil:
		c.String(http.StatusOK, body)
	case errAuthentication:
		// Rejected without detail so the caller learns nothing about
		// the expected token.
		logger.Error("rejected event: verification token mismatch")
		c.AbortWithStatus(http.StatusUnauthorized)
	case errMissingEvent:
		c.AbortWithStatusJSON(BadRequest("wrong_data"))
	default:
		c.Error(err)
	}
}
