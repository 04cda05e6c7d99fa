package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"file-manager-api/internal/application/ports"
)

type AppController struct {
	logger      *zap.Logger
	sessions    ports.Sessions
	db          ports.DBPinger
	userService ports.UserService
	fileService ports.FileService
}

func NewAppController(
	r *gin.Engine,
	logger *zap.Logger,
	sessions ports.Sessions,
	db ports.DBPinger,
	userService ports.UserService,
	fileService ports.FileService,
) *AppController {
	ac := &AppController{
		logger:      logger,
		sessions:    sessions,
		db:          db,
		userService: userService,
		fileService: fileService,
	}

	r.GET(RouteStatus, ac.StatusHandler)
	r.GET(RouteStats, ac.StatsHandler)

	return ac
}

// StatusHandler reports store liveness with live pings; always 200.
func (ac *AppController) StatusHandler(c *gin.Context) {
	ctx := c.Request.Context()

	c.JSON(http.StatusOK, gin.H{
		"redis": ac.sessions.Ping(ctx) == nil,
		"db":    ac.db.Ping(ctx) == nil,
	})
}

func (ac *AppController) StatsHandler(c *gin.Context) {
	ctx := c.Request.Context()

	users, err := ac.userService.Count(ctx)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "Unable to retrieve statistics"},
		)
		ac.logger.Error("user Count() error", zap.Error(err))
		return
	}
	files, err := ac.fileService.Count(ctx)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "Unable to retrieve statistics"},
		)
		ac.logger.Error("file Count() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"files": files,
	})
}
