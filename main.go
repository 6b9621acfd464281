package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	uuid "github.com/twinj/uuid"

	"annotate/controllers"
	"annotate/media"
	"annotate/middlewares"
	"annotate/models"
	"annotate/utils"
)

// corsMiddleware Use middleware for CORS (Cross-Origin Resource Sharing)
// TODO: This is too broad, cannot expose to the internet!
func corsMiddleware() gin.HandlerFunc {
	_corsMiddleware := cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"PUT", "GET", "POST", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"X-Requested-With, Content-Type, Origin, Authorization, Accept, Client-Security-Token, Accept-Encoding, x-access-token"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
	return _corsMiddleware
}

// requestIDMiddleware Generate a UUID and attach it to each request
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		_uuid := uuid.NewV4()
		c.Writer.Header().Set("X-Request-Id", _uuid.String())
		c.Next()
	}
}

func main() {
	log.Info("Starting annotate...")

	// Secrets and the media bucket toggle come from the environment; a .env
	// file is picked up when present.
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using process environment")
	}

	// Generate our config based on the config supplied
	// by the user in the flags
	configPath, debugMode, err := utils.ParseFlags()
	if err != nil {
		log.Fatal(err)
	}
	config, err := utils.NewConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}

	// Debug mode enables gin-gonic debug mode
	if debugMode == false {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to the database
	models.ConnectDataBase(config.Sqlite.Filename)

	// Media delivery: signed bucket URLs when a bucket is configured,
	// local filenames otherwise.
	gateway, err := media.NewGatewayFromEnv()
	if err != nil {
		log.Fatal(err)
	}

	r := gin.Default()

	r.Use(corsMiddleware())
	r.Use(requestIDMiddleware())
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// Version tag to test against
	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "v0.0.1",
		})
	})

	api := r.Group("/api")
	v1 := api.Group("/v1")

	// Register and login are the only routes reachable without a token
	v1.POST("/register", controllers.Register)
	v1.POST("/login", controllers.Login)

	protected := v1.Group("")
	protected.Use(middlewares.JwtAuthMiddleware())
	{
		protected.GET("/whoami", controllers.WhoAmI)
		protected.GET("/me", controllers.Me)

		protected.GET("/images", controllers.FindImages)
		protected.POST("/images", controllers.CreateImage)
		protected.GET("/images/:id", controllers.GetImage(gateway))
		protected.GET("/images/:id/details", controllers.FindImage)
		protected.DELETE("/images/:id", controllers.DeleteImage)
		protected.POST("/images/share", controllers.ShareImages)
		protected.DELETE("/images/share", controllers.UnshareImages)

		protected.POST("/projects", controllers.CreateProject)
		protected.GET("/projects/:id", controllers.FindProject)

		protected.POST("/groups", controllers.CreateGroup)
		protected.POST("/groups/:name/members", controllers.AddGroupMember)
		protected.DELETE("/groups/:name/members", controllers.RemoveGroupMember)

		protected.GET("/annotations", controllers.FindAnnotationsList)
		protected.POST("/annotations", controllers.CreateAnnotations)
		protected.GET("/annotations/:id", controllers.FindAnnotations)
	}

	addr := fmt.Sprintf(":%s", config.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with
	// a timeout of 5 seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutdown Server ...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Info("Server exiting")
}
