package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/urbanfix/urbanfix/controllers"
	"github.com/urbanfix/urbanfix/database"
	"github.com/urbanfix/urbanfix/middleware"
	"github.com/urbanfix/urbanfix/models"
	"github.com/urbanfix/urbanfix/repositories/admins"
	"github.com/urbanfix/urbanfix/repositories/citizens"
	"github.com/urbanfix/urbanfix/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file")
	}

	ctx := context.Background()
	if err := database.EnsureIndexes(ctx); err != nil {
		log.Fatal(err)
	}
	if err := utils.SeedAdminAccount(ctx, database.OpenCollection("admins")); err != nil {
		log.Fatal(err)
	}

	citizenRepo := citizens.NewMongoRepository(database.OpenCollection("citizens"))
	adminRepo := admins.NewMongoRepository(database.OpenCollection("admins"))

	blobStore, err := utils.NewBlobStore(ctx)
	if err != nil {
		log.Fatal(err)
	}
	mailer := utils.NewMailer()
	photoValidator := utils.NewImageValidator()

	r := gin.New()

	origins := os.Getenv("ALLOWED_ORIGINS")
	allowedOrigins := map[string]bool{}
	for _, origin := range strings.Split(origins, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowedOrigins[origin] = true
		}
	}
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return allowedOrigins[origin]
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	api := r.Group("/city-api")

	citizen := api.Group("/citizen")
	citizen.POST("/register", controllers.RegisterCitizen(citizenRepo))
	citizen.POST("/login", controllers.CitizenLogin(citizenRepo))
	citizen.POST("/admin", controllers.AdminLogin(adminRepo))

	authed := citizen.Group("")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.POST("/:id/complaints", controllers.SubmitComplaint(citizenRepo))
		authed.POST("/:id/images", controllers.UploadComplaintPhotos(citizenRepo, blobStore, photoValidator))
		authed.GET("/track/:username", controllers.TrackByUsername(citizenRepo))
		authed.DELETE("/complaint/:parentId/:complaintId", controllers.DeleteComplaint(citizenRepo))
	}
	authed.GET("/track", middleware.RequireRole(models.RoleAdmin), controllers.TrackAll(citizenRepo))

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleAdmin))
	{
		admin.PATCH("/complaint/:parentId/:complaintId/status", controllers.UpdateComplaintStatus(citizenRepo, mailer))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "5004"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
