package route

import (
	"tribute-wall/backend/common"

	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

// setWebRouter serves the uploaded images as static assets under /uploads,
// matching the relative paths stored on each tribute record.
func setWebRouter(router *gin.Engine) {
	router.Use(static.Serve("/uploads", static.LocalFile(common.UploadPath, false)))
}
