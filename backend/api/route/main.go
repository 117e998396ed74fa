package route

import (
	"tribute-wall/backend/api/handler"

	"github.com/gin-gonic/gin"
)

func SetRouter(router *gin.Engine, tributeHandler *handler.TributeHandler) {
	SetApiRouter(router, tributeHandler)
	setWebRouter(router)
}
