package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"file-manager-api/internal/application/ports"
	"file-manager-api/internal/application/services"
	"file-manager-api/internal/interface/api/rest/dto/user"
	"file-manager-api/internal/interface/api/rest/middleware"
)

type UserController struct {
	userService ports.UserService
	logger      *zap.Logger
}

func NewUserController(
	r *gin.Engine,
	userService ports.UserService,
	logger *zap.Logger,
	authService ports.Auth,
) *UserController {
	uc := &UserController{
		userService: userService,
		logger:      logger,
	}

	r.POST(RouteUsers, uc.CreateUserHandler)
	r.GET(RouteUsersMe, middleware.XTokenAuth(authService), uc.GetMeHandler)

	return uc
}

func (uc *UserController) CreateUserHandler(c *gin.Context) {
	var req user.Request
	// a malformed body simply yields empty fields, which the service
	// reports as the first missing one
	_ = c.ShouldBindJSON(&req)

	u, err := uc.userService.Create(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingEmail):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing email"})
		case errors.Is(err, services.ErrMissingPassword):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing password"})
		case errors.Is(err, services.ErrAlreadyExists):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Already exist"})
		default:
			c.JSON(
				http.StatusInternalServerError,
				gin.H{"error": "failed to create a user"},
			)
			uc.logger.Error("Create() error", zap.Error(err))
		}
		return
	}

	c.JSON(http.StatusCreated, user.ToResponseUser(*u))
}

func (uc *UserController) GetMeHandler(c *gin.Context) {
	id, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	u, err := uc.userService.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get a user"},
		)
		uc.logger.Error("FindByID() error", zap.Error(err))
		return
	}
	if u == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*u))
}
