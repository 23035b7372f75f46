package server

import (
	"errors"
	"fmt"
	"net/http"

	"embedproxy/internal/gateway"
	perrors "embedproxy/pkg/errors"
	"embedproxy/pkg/logger"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleHealthCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func (s *Server) handleCreateEmbeddings() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.FromContext(c.Request.Context(), s.log)

		var req gateway.EmbeddingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Errorw("rejecting request", "error", fmt.Errorf("%w: %v", perrors.ErrInvalidRequestBody, err))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgInvalidBody})
			return
		}

		resp, err := s.gateway.CreateEmbeddings(c.Request.Context(), &req)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, resp)
		case errors.Is(err, perrors.ErrMissingInput):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgMissingInput})
		case errors.Is(err, perrors.ErrInvalidInputType):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgInvalidInput})
		default:
			log.Errorw("an unexpected error occurred", "error", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msgInternal})
		}
	}
}

func (s *Server) handleNotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: msgNotFound})
	}
}
