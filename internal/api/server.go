package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/paul-techiesapp/martin-aia/docs"
	v1 "github.com/paul-techiesapp/martin-aia/internal/api/handler/v1"
	"github.com/paul-techiesapp/martin-aia/internal/api/middleware"
	"github.com/paul-techiesapp/martin-aia/internal/cache"
	"github.com/paul-techiesapp/martin-aia/internal/config"
	"github.com/paul-techiesapp/martin-aia/internal/events"
	"github.com/paul-techiesapp/martin-aia/internal/repository"
	"github.com/paul-techiesapp/martin-aia/internal/repository/dao"
	"github.com/paul-techiesapp/martin-aia/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	campaignRepo := repository.NewCampaignRepository(dao.NewCampaignDAO(db))
	invitationRepo := repository.NewInvitationRepository(dao.NewInvitationDAO(db))
	pinCodeRepo := repository.NewPinCodeRepository(dao.NewPinCodeDAO(db))
	attendanceRepo := repository.NewAttendanceRepository(dao.NewAttendanceDAO(db))
	rewardRepo := repository.NewRewardRepository(dao.NewRewardDAO(db))

	userSvc := service.NewUserService(userRepo)
	campaignSvc := service.NewCampaignService(campaignRepo)
	pinCodeSvc := service.NewPinCodeService(pinCodeRepo, campaignRepo, s.initInventoryCache())
	invitationSvc := service.NewInvitationService(invitationRepo, userRepo, campaignRepo, campaignRepo)
	registrationSvc := service.NewRegistrationService(invitationRepo)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, pinCodeRepo, invitationRepo, s.initEventPublisher())
	rewardSvc := service.NewRewardService(rewardRepo, invitationRepo, userRepo, campaignRepo)

	authHandler := v1.NewAuthHandler(conf.API, service.NewAuthService(userRepo, campaignRepo))
	userHandler := v1.NewUserHandler(userSvc)
	campaignHandler := v1.NewCampaignHandler(campaignSvc, userSvc)
	tierHandler := v1.NewTierHandler(campaignSvc, userSvc)
	pinCodeHandler := v1.NewPinCodeHandler(pinCodeSvc, userSvc)
	invitationHandler := v1.NewInvitationHandler(invitationSvc, userSvc)
	registrationHandler := v1.NewRegistrationHandler(registrationSvc)
	attendanceHandler := v1.NewAttendanceHandler(attendanceSvc, userSvc)
	rewardHandler := v1.NewRewardHandler(rewardSvc)

	s.MountHandlers(authHandler, userHandler, campaignHandler, tierHandler,
		pinCodeHandler, invitationHandler, registrationHandler, attendanceHandler, rewardHandler)

	return s
}

// initInventoryCache returns a nil cache when Redis is not configured or
// unreachable, which disables caching.
func (s *Server) initInventoryCache() service.InventoryCache {
	if s.Config.Redis == nil || s.Config.Redis.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     s.Config.Redis.Addr,
		Password: s.Config.Redis.Password,
		DB:       s.Config.Redis.DB,
	})

	return cache.NewInventoryCache(client)
}

// initEventPublisher returns a nil publisher when the broker is not
// configured or unreachable, which disables event publishing.
func (s *Server) initEventPublisher() service.EventPublisher {
	if s.Config.AMQP == nil || s.Config.AMQP.URL == "" {
		return nil
	}

	publisher, err := events.NewPublisher(s.Config.AMQP.URL)
	if err != nil {
		zap.L().Warn("event publishing disabled", zap.Error(err))

		return nil
	}

	return publisher
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	campaignHandler *v1.CampaignHandler,
	tierHandler *v1.TierHandler,
	pinCodeHandler *v1.PinCodeHandler,
	invitationHandler *v1.InvitationHandler,
	registrationHandler *v1.RegistrationHandler,
	attendanceHandler *v1.AttendanceHandler,
	rewardHandler *v1.RewardHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup/admin", authHandler.HandleSignupAdmin)
		auth.POST("/auth/signup/agent", authHandler.HandleSignupAgent)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	// The invitee-facing surface is unauthenticated and rate limited.
	public := s.Router.Group(basePath+"/public", middleware.NewRateLimiter(5, 10).Limit())
	{
		public.GET("/invitations/:token", registrationHandler.HandleResolveInvitation)
		public.POST("/invitations/:token/register", registrationHandler.HandleRegisterInvitation)
		public.POST("/slots/:slotID/checkin", attendanceHandler.HandleCheckIn)
		public.POST("/slots/:slotID/checkout", attendanceHandler.HandleCheckOut)
	}

	protected := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		protected.GET("/users/:userID", userHandler.HandleGetUser)
		protected.GET("/agents", userHandler.HandleListAgents)
		protected.GET("/agents/me", userHandler.HandleGetMyAgent)
		protected.GET("/agents/:agentID", userHandler.HandleGetAgent)
		protected.PUT("/agents/:agentID", userHandler.HandleUpdateAgent)

		protected.GET("/campaigns", campaignHandler.HandleGetCampaigns)
		protected.POST("/campaigns", campaignHandler.HandleCreateCampaign)
		protected.GET("/campaigns/:campaignID", campaignHandler.HandleGetCampaign)
		protected.PUT("/campaigns/:campaignID", campaignHandler.HandleUpdateCampaign)
		protected.POST("/campaigns/:campaignID/status", campaignHandler.HandleTransitionCampaign)
		protected.GET("/campaigns/:campaignID/slots", campaignHandler.HandleGetSlots)
		protected.POST("/campaigns/:campaignID/slots", campaignHandler.HandleCreateSlot)
		protected.GET("/campaigns/:campaignID/report", campaignHandler.HandleCampaignReport)
		protected.PUT("/slots/:slotID", campaignHandler.HandleUpdateSlot)

		protected.GET("/tiers", tierHandler.HandleGetTiers)
		protected.POST("/tiers", tierHandler.HandleCreateTier)
		protected.PUT("/tiers/:tierID", tierHandler.HandleUpdateTier)
		protected.DELETE("/tiers/:tierID", tierHandler.HandleDeleteTier)

		protected.GET("/slots/:slotID/pin-codes", pinCodeHandler.HandleGetPinCodes)
		protected.POST("/slots/:slotID/pin-codes", pinCodeHandler.HandleGeneratePinCodes)
		protected.DELETE("/slots/:slotID/pin-codes", pinCodeHandler.HandleDeleteAllPinCodes)
		protected.DELETE("/slots/:slotID/pin-codes/unused", pinCodeHandler.HandleDeleteUnusedPinCodes)
		protected.GET("/slots/:slotID/pin-codes/inventory", pinCodeHandler.HandleGetPinInventory)

		protected.GET("/invitations", invitationHandler.HandleGetMyInvitations)
		protected.POST("/invitations", invitationHandler.HandleCreateInvitations)
		protected.GET("/invitations/:invitationID", invitationHandler.HandleGetInvitation)
		protected.POST("/invitations/:invitationID/expire", invitationHandler.HandleExpireInvitation)
		protected.GET("/slots/:slotID/quota", invitationHandler.HandleGetQuota)
		protected.GET("/slots/:slotID/invitations", invitationHandler.HandleGetSlotInvitations)
		protected.GET("/slots/:slotID/attendance", attendanceHandler.HandleGetSlotAttendance)

		protected.GET("/rewards", rewardHandler.HandleGetMyRewards)
		protected.GET("/rewards/summary", rewardHandler.HandleGetMyRewardSummary)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Recruitment Campaign API"
	docs.SwaggerInfo.Description = "Campaign, invitation and attendance API."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
