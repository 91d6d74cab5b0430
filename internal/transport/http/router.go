package httptransport

import (
	"log/slog"

	"github.com/ErlanBelekov/estate-listings/internal/transport/http/handler"
	"github.com/ErlanBelekov/estate-listings/internal/transport/http/middleware"
	"github.com/ErlanBelekov/estate-listings/internal/usecase"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	Listing  *handler.ListingHandler
	Property *handler.PropertyHandler
	Photo    *handler.PhotoHandler
	Location *handler.LocationHandler
}

func NewRouter(logger *slog.Logger, h Handlers, authUsecase *usecase.AuthUsecase, authLimiter *middleware.RateLimiter, hsts bool) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security(hsts))
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	authMW := middleware.Auth(authUsecase, logger)
	anonymousOnly := middleware.AnonymousOnly(authUsecase, logger)
	limit := authLimiter.Middleware()

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", limit, anonymousOnly, h.Auth.Register)
	auth.POST("/login", limit, h.Auth.Login)
	auth.POST("/token/refresh", limit, h.Auth.Refresh)
	auth.GET("/me", authMW, h.Auth.Me)
	auth.POST("/password", authMW, h.Auth.ChangePassword)

	// Reads are public; every mutation needs an access token.
	listings := api.Group("/listings")
	listings.GET("", h.Listing.List)
	listings.GET("/my", authMW, h.Listing.ListMine)
	listings.GET("/:id", h.Listing.GetByID)
	listings.POST("", authMW, h.Listing.Create)
	listings.PATCH("/:id", authMW, h.Listing.Update)
	listings.DELETE("/:id", authMW, h.Listing.Delete)
	listings.POST("/:id/publish", authMW, h.Listing.Publish)
	listings.POST("/:id/archive", authMW, h.Listing.Archive)

	properties := api.Group("/properties")
	properties.GET("", h.Property.List)
	properties.GET("/:id", h.Property.GetByID)
	properties.POST("", authMW, h.Property.Create)
	properties.PATCH("/:id", authMW, h.Property.Update)
	properties.DELETE("/:id", authMW, h.Property.Delete)

	photos := api.Group("/photos")
	photos.GET("", h.Photo.List)
	photos.GET("/:id", h.Photo.GetByID)
	photos.POST("", authMW, h.Photo.Create)
	photos.DELETE("/:id", authMW, h.Photo.Delete)

	locations := api.Group("/locations")

	cities := locations.Group("/cities")
	cities.GET("", h.Location.ListCities)
	cities.GET("/:id", h.Location.GetCity)
	cities.POST("", authMW, h.Location.CreateCity)
	cities.PATCH("/:id", authMW, h.Location.UpdateCity)
	cities.DELETE("/:id", authMW, h.Location.DeleteCity)

	districts := locations.Group("/districts")
	districts.GET("", h.Location.ListDistricts)
	districts.GET("/:id", h.Location.GetDistrict)
	districts.POST("", authMW, h.Location.CreateDistrict)
	districts.PATCH("/:id", authMW, h.Location.UpdateDistrict)
	districts.DELETE("/:id", authMW, h.Location.DeleteDistrict)

	microdistricts := locations.Group("/microdistricts")
	microdistricts.GET("", h.Location.ListMicrodistricts)
	microdistricts.GET("/:id", h.Location.GetMicrodistrict)
	microdistricts.POST("", authMW, h.Location.CreateMicrodistrict)
	microdistricts.PATCH("/:id", authMW, h.Location.UpdateMicrodistrict)
	microdistricts.DELETE("/:id", authMW, h.Location.DeleteMicrodistrict)

	categories := locations.Group("/categories")
	categories.GET("", h.Location.ListCategories)
	categories.GET("/:id", h.Location.GetCategory)
	categories.POST("", authMW, h.Location.CreateCategory)
	categories.PATCH("/:id", authMW, h.Location.UpdateCategory)
	categories.DELETE("/:id", authMW, h.Location.DeleteCategory)

	return r
}
