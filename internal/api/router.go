package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/slapp/studio-booking-backend/internal/auth"
	"github.com/slapp/studio-booking-backend/internal/availability"
	availabilityHttp "github.com/slapp/studio-booking-backend/internal/availability/http"
	"github.com/slapp/studio-booking-backend/internal/policy"
	policyHttp "github.com/slapp/studio-booking-backend/internal/policy/http"
	"github.com/slapp/studio-booking-backend/internal/reservation"
	reservationHttp "github.com/slapp/studio-booking-backend/internal/reservation/http"
	"github.com/slapp/studio-booking-backend/internal/room"
	roomHttp "github.com/slapp/studio-booking-backend/internal/room/http"
	"github.com/slapp/studio-booking-backend/internal/studio"
	studioHttp "github.com/slapp/studio-booking-backend/internal/studio/http"
	"github.com/slapp/studio-booking-backend/internal/user"
	userHttp "github.com/slapp/studio-booking-backend/internal/user/http"
)

// Config carries everything the router needs to assemble middleware and
// register module routes.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Logger       *zap.Logger
	JWTManager   *auth.JWTManager

	UserService         user.Service
	StudioService       studio.Service
	RoomService         room.Service
	PolicyService       policy.Service
	AvailabilityService availability.Service
	ReservationService  reservation.Service
}

// NewRouter assembles the gin engine: logging, recovery, CORS, auth
// middleware, and all module routes under /v1.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(RequestLogger(cfg.Logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	adminMiddleware := RequireSystemAdmin(cfg.UserService)

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	studioHandler := studioHttp.NewHandler(cfg.StudioService)
	roomHandler := roomHttp.NewHandler(cfg.RoomService)
	policyHandler := policyHttp.NewHandler(cfg.PolicyService)
	availabilityHandler := availabilityHttp.NewHandler(cfg.AvailabilityService)
	reservationHandler := reservationHttp.NewHandler(cfg.ReservationService)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		studioHttp.RegisterRoutes(v1, studioHandler, authMiddleware)
		roomHttp.RegisterRoutes(v1, roomHandler, authMiddleware)
		policyHttp.RegisterRoutes(v1, policyHandler, authMiddleware, adminMiddleware)
		availabilityHttp.RegisterRoutes(v1, availabilityHandler, authMiddleware)
		reservationHttp.RegisterRoutes(v1, reservationHandler, authMiddleware)
	}

	return r
}

// RequestLogger attaches the zap logger to the request context and logs each
// request on completion.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Set("logger", logger)

		c.Next()

		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
