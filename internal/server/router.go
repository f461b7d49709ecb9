package server

import (
	"net/http"

	"agenda/internal/config"
	"agenda/internal/middleware"
	"agenda/internal/modules/booking"
	"agenda/internal/modules/catalog"
	"agenda/internal/modules/profile"
	jwtsvc "agenda/internal/pkg/jwt"
	"agenda/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NewRouter wires every module onto one gin engine.
func NewRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	tokens := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	profileService := profile.NewService(db, profile.Defaults{
		Timezone:            cfg.DefaultTimezone,
		SlotDurationMinutes: cfg.DefaultSlotDurationMinutes,
	})
	profileHandler := profile.NewHandler(profileService)

	catalogHandler := catalog.NewHandler(catalog.NewService(repository.NewServiceRepository(db)))

	bookingHandler := booking.NewHandler(booking.NewService(booking.NewGormStore(db)))

	r := gin.New()
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		// public
		bookingHandler.RegisterPublicRoutes(v1)

		// authenticated provider
		me := v1.Group("/me")
		me.Use(middleware.JWTAuth(tokens), middleware.EnsureProfile(profileService))
		{
			profileHandler.RegisterRoutes(me)
			catalogHandler.RegisterRoutes(me)
			bookingHandler.RegisterProviderRoutes(me)
		}
	}

	return r
}
