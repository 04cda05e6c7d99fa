package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"file-manager-api/internal/application/ports"
	"file-manager-api/internal/application/services"
	"file-manager-api/internal/interface/api/rest/dto/file"
	"file-manager-api/internal/interface/api/rest/middleware"
	"file-manager-api/internal/interface/api/rest/validator"
)

type FileController struct {
	fileService ports.FileService
	authService ports.Auth
	logger      *zap.Logger
}

func NewFileController(
	r *gin.Engine,
	fileService ports.FileService,
	authService ports.Auth,
	logger *zap.Logger,
) *FileController {
	fc := &FileController{
		fileService: fileService,
		authService: authService,
		logger:      logger,
	}

	auth := middleware.XTokenAuth(authService)

	r.POST(RouteFiles, auth, fc.UploadHandler)
	r.GET(RouteFiles, auth, fc.ListHandler)
	r.GET(RouteFile, auth, fc.GetFileHandler)
	r.PUT(RouteFilePublish, auth, fc.PublishHandler(true))
	r.PUT(RouteFileUnpublish, auth, fc.PublishHandler(false))
	// no middleware: public files are readable without a session
	r.GET(RouteFileData, fc.DataHandler)

	return fc
}

func (fc *FileController) UploadHandler(c *gin.Context) {
	ownerID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req file.Request
	_ = c.ShouldBindJSON(&req)

	f, err := fc.fileService.Upload(c.Request.Context(), ownerID, file.ToUploadInput(req))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingName):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing name"})
		case errors.Is(err, services.ErrMissingType):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing type"})
		case errors.Is(err, services.ErrMissingData):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing data"})
		case errors.Is(err, services.ErrParentNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parent not found"})
		case errors.Is(err, services.ErrParentNotFolder):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parent is not a folder"})
		default:
			c.JSON(
				http.StatusInternalServerError,
				gin.H{"error": "failed to create a file"},
			)
			fc.logger.Error("Upload() error", zap.Error(err))
		}
		return
	}

	c.JSON(http.StatusCreated, file.ToResponseFile(*f))
}

func (fc *FileController) GetFileHandler(c *gin.Context) {
	ownerID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ok, fileID := validator.IsObjectID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	f, err := fc.fileService.FindByID(c.Request.Context(), ownerID, fileID)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get a file"},
		)
		fc.logger.Error("FindByID() error", zap.Error(err))
		return
	}
	if f == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	c.JSON(http.StatusOK, file.ToResponseFile(*f))
}

func (fc *FileController) ListHandler(c *gin.Context) {
	ownerID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	page, err := validator.ValidatePage(c.Query("page"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fs, err := fc.fileService.List(c.Request.Context(), ownerID, c.Query("parentId"), page)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get files"},
		)
		fc.logger.Error("List() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, file.ToResponseFiles(fs))
}

func (fc *FileController) PublishHandler(isPublic bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, ok := userIDFromCtx(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		ok, fileID := validator.IsObjectID(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}

		f, err := fc.fileService.SetVisibility(c.Request.Context(), ownerID, fileID, isPublic)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
				return
			}
			c.JSON(
				http.StatusInternalServerError,
				gin.H{"error": "failed to update a file"},
			)
			fc.logger.Error("SetVisibility() error", zap.Error(err))
			return
		}

		c.JSON(http.StatusOK, file.ToResponseFile(*f))
	}
}

// DataHandler serves file content. Unknown ids, foreign private files
// and missing variants all answer the same 404.
func (fc *FileController) DataHandler(c *gin.Context) {
	ok, fileID := validator.IsObjectID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	requestorID := ""
	if token := c.GetHeader(middleware.HeaderToken); token != "" {
		id, err := fc.authService.Resolve(c.Request.Context(), token)
		if err != nil {
			fc.logger.Error("Resolve() error", zap.Error(err))
		}
		requestorID = id
	}

	data, mimeType, err := fc.fileService.Content(c.Request.Context(), fileID, requestorID, c.Query("size"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		case errors.Is(err, services.ErrIsFolder):
			c.JSON(http.StatusBadRequest, gin.H{"error": "A folder doesn't have content"})
		default:
			c.JSON(
				http.StatusInternalServerError,
				gin.H{"error": "failed to get file content"},
			)
			fc.logger.Error("Content() error", zap.Error(err))
		}
		return
	}

	c.Data(http.StatusOK, mimeType, data)
}
