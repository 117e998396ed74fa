package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"tribute-wall/backend/api/handler"
	"tribute-wall/backend/api/middleware"
	"tribute-wall/backend/api/route"
	"tribute-wall/backend/common"
	"tribute-wall/backend/library/storage"
	"tribute-wall/backend/model"
	"tribute-wall/backend/service"

	"github.com/gin-gonic/gin"
)

func main() {
	flag.Parse()
	if *common.PrintVersion {
		println(common.Version)
		os.Exit(0)
	}
	if *common.PrintHelpFlag {
		common.PrintHelp()
		os.Exit(0)
	}
	common.SetupGinLog()
	common.SysLog("Tribute Wall " + common.Version + " started")
	if os.Getenv("GIN_MODE") != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := common.InitConfig(); err != nil {
		common.FatalLog(err)
	}
	// Initialize Redis (optional cache for the record store)
	if err := common.InitRedisClient(); err != nil {
		common.FatalLog(err)
	}
	// Initialize the record store
	if err := model.InitDB(); err != nil {
		common.FatalLog(err)
	}
	defer func() {
		if err := model.CloseDB(); err != nil {
			common.FatalLog(err)
		}
	}()
	// Initialize the file store (creates the uploads directories)
	store, err := storage.NewStore(common.UploadPath)
	if err != nil {
		common.FatalLog(err)
	}

	tributeService := service.NewTributeService(store)
	tributeHandler := handler.NewTributeHandler(tributeService)

	// Initialize HTTP server
	server := gin.Default()
	server.MaxMultipartMemory = storage.MaxUploadBytes
	server.Use(middleware.CORS())

	route.SetRouter(server, tributeHandler)
	server.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "API route not found",
			})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Not found",
		})
	})

	port := strconv.Itoa(*common.Port)
	common.SysLog("Server listening on port: " + port)

	setupGracefulShutdown()

	if err := server.Run(":" + port); err != nil {
		log.Fatal("failed to start server: " + err.Error())
	}
}

// setupGracefulShutdown registers signal handlers to ensure clean shutdown
func setupGracefulShutdown() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		common.SysLog("Shutting down...")
		if err := model.CloseDB(); err != nil {
			common.SysLog("Error closing database: " + err.Error())
		}
		os.Exit(0)
	}()
}
