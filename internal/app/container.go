package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/slapp/studio-booking-backend/internal/api"
	"github.com/slapp/studio-booking-backend/internal/auth"
	"github.com/slapp/studio-booking-backend/internal/availability"
	"github.com/slapp/studio-booking-backend/internal/pkg/lock"
	"github.com/slapp/studio-booking-backend/internal/policy"
	"github.com/slapp/studio-booking-backend/internal/reservation"
	"github.com/slapp/studio-booking-backend/internal/room"
	"github.com/slapp/studio-booking-backend/internal/studio"
	"github.com/slapp/studio-booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction  bool
	ProdOrigins   string
	DBPool        *pgxpool.Pool
	RedisAddr     string
	JWTSecret     string
	JWTTTL        time.Duration
	BcryptCost    int
	SweepInterval time.Duration
	Logger        *zap.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router  *gin.Engine
	Sweeper *Sweeper

	redisLocker *lock.RedisLocker
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// Per-room lock scope: Redis when configured, in-process otherwise.
	var (
		locker      lock.Locker
		redisLocker *lock.RedisLocker
	)
	if cfg.RedisAddr != "" {
		rl, err := lock.NewRedisLocker(cfg.RedisAddr)
		if err != nil {
			return nil, fmt.Errorf("connect redis locker: %w", err)
		}
		locker = rl
		redisLocker = rl
	} else {
		locker = lock.NewKeyedMutex()
	}

	// User module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Cancellation policy module
	policyRepo := policy.NewPgxRepository(cfg.DBPool)
	policyService := policy.NewService(policyRepo)

	// Studio module
	studioRepo := studio.NewPgxRepository(cfg.DBPool)
	studioService := studio.NewService(studioRepo)

	// Room module
	roomRepo := room.NewPgxRepository(cfg.DBPool)
	roomService := room.NewService(roomRepo, studioService)

	// Availability module
	availabilityRepo := availability.NewPgxRepository(cfg.DBPool)
	availabilityService := availability.NewService(availabilityRepo, roomService, studioService)
	ledger := availability.NewLedger(availabilityRepo, roomService, studioService)

	// Reservation module
	reservationRepo := reservation.NewPgxRepository(cfg.DBPool)
	reservationService := reservation.NewService(reservationRepo, roomService, studioService, policyService, ledger, locker)

	router := api.NewRouter(api.Config{
		IsProduction: cfg.IsProduction,
		ProdOrigins:  cfg.ProdOrigins,
		Logger:       cfg.Logger,
		JWTManager:   jwtManager,

		UserService:         userService,
		StudioService:       studioService,
		RoomService:         roomService,
		PolicyService:       policyService,
		AvailabilityService: availabilityService,
		ReservationService:  reservationService,
	})

	return &Container{
		Router:      router,
		Sweeper:     NewSweeper(reservationService, cfg.SweepInterval, cfg.Logger),
		redisLocker: redisLocker,
	}, nil
}

// Close releases resources held by optional components.
func (c *Container) Close() error {
	if c.redisLocker != nil {
		return c.redisLocker.Close()
	}
	return nil
}
