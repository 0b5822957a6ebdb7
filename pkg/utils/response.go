package utils

import "github.com/gin-gonic/gin"

// ErrorResponse is the body of every failed JSON call.
type ErrorResponse struct {
	Error string `json:"error"`
}

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// AbortWithError stops the chain and answers {"error": message}.
func AbortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}

func StatusJSON(c *gin.Context, status int, state, message string) {
	c.JSON(status, StatusResponse{Status: state, Message: message})
}
