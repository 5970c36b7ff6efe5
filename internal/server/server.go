package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"courtly/internal/auth"
	"courtly/internal/config"
	"courtly/internal/court"
	"courtly/internal/match"
	"courtly/internal/notify"
	"courtly/internal/reservation"
	"courtly/internal/schedule"
	"courtly/internal/training"
	"courtly/internal/user"
)

type Server struct {
	router *gin.Engine
	db     *sqlx.DB
	config *config.Config
	http   *http.Server
}

func New(db *sqlx.DB, cfg *config.Config, notifier *notify.Service) (*Server, error) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(cfg))
	router.Use(corsMiddleware())

	courtRepo := court.NewRepository(db)
	userRepo := user.NewRepository(db)
	reservationRepo := reservation.NewRepository(db)
	trainingRepo := training.NewRepository(db)
	matchRepo := match.NewRepository(db)

	resolver := court.NewResolver(courtRepo, cfg.PrincipalCapacity)
	checker := schedule.NewChecker(courtRepo, resolver, reservationRepo, trainingRepo, matchRepo)
	booker := schedule.NewBooker(db, checker)

	hours := schedule.OperatingHours{
		Open:         cfg.OpenTime,
		Close:        cfg.CloseTime,
		BlockMinutes: cfg.BlockMinutes,
	}
	gridBuilder, err := schedule.NewGridBuilder(resolver, hours, reservationRepo, trainingRepo, matchRepo)
	if err != nil {
		return nil, err
	}

	userHandler := user.NewHandler(user.NewService(userRepo, cfg.JWTSecret))
	courtHandler := court.NewHandler(court.NewService(courtRepo))
	reservationHandler := reservation.NewHandler(reservation.NewService(
		reservationRepo, courtRepo, userRepo, checker, booker, notifier))
	trainingHandler := training.NewHandler(training.NewService(trainingRepo, booker))
	matchHandler := match.NewHandler(match.NewService(matchRepo, booker))

	public := router.Group("/auth")
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.RefreshToken)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)

		protected.GET("/courts", courtHandler.ListCourts)
		protected.GET("/courts/:id", courtHandler.GetCourt)
		protected.GET("/availability", AvailabilityGrid(gridBuilder))

		protected.GET("/reservations/check", reservationHandler.CheckAvailability)
		protected.POST("/reservations", reservationHandler.CreateReservation)
		protected.GET("/reservations", reservationHandler.ListMyReservations)
		protected.GET("/reservations/:id", reservationHandler.GetReservation)
		protected.POST("/reservations/:id/cancel", reservationHandler.CancelReservation)

		protected.GET("/sessions", trainingHandler.ListSessions)
		protected.GET("/sessions/:id", trainingHandler.GetSession)
		protected.GET("/matches", matchHandler.ListMatches)
		protected.GET("/matches/:id", matchHandler.GetMatch)
	}

	coach := router.Group("/")
	coach.Use(authMiddleware, auth.RequireRole(auth.RoleCoach, auth.RoleAdmin))
	{
		coach.POST("/sessions", trainingHandler.CreateSession)
		coach.PUT("/sessions/:id", trainingHandler.UpdateSession)
		coach.DELETE("/sessions/:id", trainingHandler.DeleteSession)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRole(auth.RoleAdmin))
	{
		admin.POST("/courts", courtHandler.CreateCourt)
		admin.PUT("/courts/:id/status", courtHandler.UpdateCourtStatus)

		admin.GET("/reservations", reservationHandler.ListReservationsByCourt)
		admin.POST("/reservations/:id/approve", reservationHandler.ApproveReservation)
		admin.POST("/reservations/:id/reject", reservationHandler.RejectReservation)

		admin.POST("/matches", matchHandler.ScheduleMatch)
		admin.PUT("/matches/:id/reschedule", matchHandler.RescheduleMatch)
		admin.PUT("/matches/:id/status", matchHandler.UpdateMatchStatus)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	router.GET("/test-email", TestEmail(notifier))

	return &Server{
		router: router,
		db:     db,
		config: cfg,
	}, nil
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
