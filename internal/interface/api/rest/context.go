package rest

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"file-manager-api/internal/interface/api/rest/middleware"
)

// userIDFromCtx reads the id placed by the auth middleware. A false
// return means the middleware did not run or the session carried junk.
func userIDFromCtx(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.GetString(middleware.CtxUserID))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
