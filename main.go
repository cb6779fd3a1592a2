package main

import (
	"context"
	"os"
	"time"

	"inkserie-app/config"
	"inkserie-app/database"
	"inkserie-app/internal/ai"
	authapi "inkserie-app/internal/api/auth"
	publicapi "inkserie-app/internal/api/public"
	seriesapi "inkserie-app/internal/api/series"
	"inkserie-app/internal/api/uploads"
	routes "inkserie-app/internal/app/http"
	"inkserie-app/internal/cache"
	applog "inkserie-app/internal/log"
	"inkserie-app/internal/storage"
	"inkserie-app/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	applog.Init(os.Getenv("APP_ENV"))
	database.InitDB()

	accessor := store.New(database.DB)
	go accessor.Drain()
	defer accessor.Close()

	blobs, err := storage.NewObjectStore()
	if err != nil {
		applog.Logger.Fatal().Err(err).Msg("object store init failed")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := blobs.EnsureBucket(ctx); err != nil {
		applog.Logger.Fatal().Err(err).Msg("bucket init failed")
	}
	cancel()

	aiClient := ai.NewClient(config.GENAI_BASE_URL, config.GENAI_API_KEY, config.GENAI_MODEL)
	payloadCache := cache.NewPayloadCache()

	authapi.Init(accessor)
	seriesapi.Init(aiClient, accessor, payloadCache)
	uploads.Init(aiClient, blobs, payloadCache)
	publicapi.Init(payloadCache)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{os.Getenv("CORS_ORIGIN")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, accessor)

	r.Run(":" + config.PORT)
}
