package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"file-manager-api/internal/application/ports"
	"file-manager-api/internal/application/services"
	"file-manager-api/internal/interface/api/rest/middleware"
)

type AuthController struct {
	logger      *zap.Logger
	authService ports.Auth
}

func NewAuthController(
	r *gin.Engine,
	logger *zap.Logger,
	authService ports.Auth,
) *AuthController {
	ac := &AuthController{
		logger:      logger,
		authService: authService,
	}

	r.GET(RouteConnect, ac.ConnectHandler)
	r.GET(RouteDisconnect, middleware.XTokenAuth(authService), ac.DisconnectHandler)

	return ac
}

// ConnectHandler exchanges Basic credentials for a session token.
func (ac *AuthController) ConnectHandler(c *gin.Context) {
	token, err := ac.authService.Connect(c.Request.Context(), c.GetHeader("Authorization"))
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to open a session"},
		)
		ac.logger.Error("Connect() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (ac *AuthController) DisconnectHandler(c *gin.Context) {
	err := ac.authService.Disconnect(c.Request.Context(), c.GetHeader(middleware.HeaderToken))
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to close the session"},
		)
		ac.logger.Error("Disconnect() error", zap.Error(err))
		return
	}

	c.Status(http.StatusNoContent)
}
