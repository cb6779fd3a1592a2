package routes

import (
	authapi "inkserie-app/internal/api/auth"
	"inkserie-app/internal/api/billing"
	publicapi "inkserie-app/internal/api/public"
	seriesapi "inkserie-app/internal/api/series"
	"inkserie-app/internal/api/uploads"
	"inkserie-app/internal/app/http/middleware"
	"inkserie-app/internal/store"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, accessor *store.Accessor) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":        "ok",
			"failed_writes": accessor.FailedWrites(),
		})
	})

	// Anonymous storefront surface
	r.GET("/api/series/:id", publicapi.GetSeriePublic)
	r.GET("/api/books/:id", publicapi.GetBookPublic)
	r.GET("/series", publicapi.BrowseSeries)
	r.POST("/api/series/:id/checkout", billing.CheckoutSerie)

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", authapi.GetCurrentUser)
	auth.POST("/logout", authapi.Logout)
	auth.POST("/change-password", authapi.ChangePassword)

	auth.GET("/me/series", seriesapi.ListMySeries)

	auth.GET("/series/:id", seriesapi.GetSerie)
	auth.POST("/series", seriesapi.CreateSerie)
	auth.PUT("/series/:id", seriesapi.UpdateSerie)
	auth.DELETE("/series/:id", seriesapi.DeleteSerie)

	auth.POST("/series/:id/modulos", seriesapi.CreateModulo)
	auth.PUT("/modulos/:id", seriesapi.UpdateModulo)
	auth.DELETE("/modulos/:id", seriesapi.DeleteModulo)

	auth.POST("/modulos/:id/tatuagens", seriesapi.CreateTatuagem)
	auth.POST("/modulos/:id/upload", uploads.UploadImages)
	auth.PUT("/tatuagens/:id", seriesapi.UpdateTatuagem)
	auth.DELETE("/tatuagens/:id", seriesapi.DeleteTatuagem)
	auth.POST("/tatuagens/:id/curtir", seriesapi.CurtirTatuagem)

	auth.POST("/series/:id/compilar", seriesapi.CompileSerie)
	auth.POST("/ai/sugestoes", seriesapi.SuggestSerie)
}
