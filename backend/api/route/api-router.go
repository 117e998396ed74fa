package route

import (
	"tribute-wall/backend/api/handler"
	"tribute-wall/backend/api/middleware"
	"tribute-wall/backend/common"

	"github.com/gin-gonic/gin"
)

func SetApiRouter(router *gin.Engine, tributeHandler *handler.TributeHandler) {
	apiRouter := router.Group("/api")
	if *common.EnableGzip {
		apiRouter.Use(middleware.GzipDecodeMiddleware())
		apiRouter.Use(middleware.GzipEncodeMiddleware())
	}
	{
		apiRouter.GET("/status", handler.GetStatus)
		apiRouter.GET("/experiences", handler.GetExperiences)

		apiRouter.POST("/submit-tribute", tributeHandler.SubmitTribute)
		apiRouter.POST("/save-preview-image", tributeHandler.SavePreviewImage)

		apiRouter.GET("/tributes", tributeHandler.GetTributes)
		apiRouter.GET("/tributes/:id", tributeHandler.GetTribute)
		apiRouter.DELETE("/tributes/:id", tributeHandler.DeleteTribute)
	}
}
