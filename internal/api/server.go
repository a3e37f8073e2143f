package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/vietanh2810/isk-lottery/docs"
	v1 "github.com/vietanh2810/isk-lottery/internal/api/handler/v1"
	"github.com/vietanh2810/isk-lottery/internal/api/middleware"
	"github.com/vietanh2810/isk-lottery/internal/config"
	"github.com/vietanh2810/isk-lottery/internal/metrics"
	"github.com/vietanh2810/isk-lottery/internal/service"
)

// Services are the business services behind the HTTP API. They are built by
// the caller so the scheduler and the API share one instance of each.
type Services struct {
	Auth      v1.AuthService
	Lotteries v1.LotteryService
	Templates v1.TemplateService
	Rewards   v1.RewardService
	Scanner   service.PaymentScanner
	Sweeper   v1.Sweeper
}

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, svcs Services) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()
	s.MountHandlers(
		v1.NewAuthHandler(conf.API, svcs.Auth),
		v1.NewLotteryHandler(svcs.Lotteries),
		v1.NewTemplateHandler(svcs.Templates),
		v1.NewRewardHandler(svcs.Rewards),
		v1.NewOpsHandler(svcs.Scanner, svcs.Sweeper),
	)

	return s
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
	s.Router.Use(middleware.Metrics())
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	lotteryHandler *v1.LotteryHandler,
	templateHandler *v1.TemplateHandler,
	rewardHandler *v1.RewardHandler,
	opsHandler *v1.OpsHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	authenticated := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authenticated.POST("/lotteries", lotteryHandler.HandleCreateLottery)
		authenticated.GET("/lotteries", lotteryHandler.HandleListLotteries)
		authenticated.GET("/lotteries/:lotteryID", lotteryHandler.HandleGetLottery)
		authenticated.DELETE("/lotteries/:lotteryID", lotteryHandler.HandleDeleteLottery)
		authenticated.POST("/lotteries/:lotteryID/cancel", lotteryHandler.HandleCancelLottery)
		authenticated.GET("/lotteries/:lotteryID/tickets", lotteryHandler.HandleListTickets)
		authenticated.GET("/lotteries/:lotteryID/winners", lotteryHandler.HandleListWinners)

		authenticated.POST("/winners/:winnerID/distributed", lotteryHandler.HandleSetWinnerDistributed)

		authenticated.GET("/anomalies", lotteryHandler.HandleListAnomalies)
		authenticated.DELETE("/anomalies/:anomalyID", lotteryHandler.HandleAcknowledgeAnomaly)

		authenticated.POST("/templates", templateHandler.HandleCreateTemplate)
		authenticated.GET("/templates", templateHandler.HandleListTemplates)
		authenticated.GET("/templates/:templateID", templateHandler.HandleGetTemplate)
		authenticated.PUT("/templates/:templateID", templateHandler.HandleUpdateTemplate)
		authenticated.DELETE("/templates/:templateID", templateHandler.HandleDeleteTemplate)
		authenticated.POST("/templates/:templateID/activate", templateHandler.HandleActivateTemplate)
		authenticated.POST("/templates/:templateID/deactivate", templateHandler.HandleDeactivateTemplate)
		authenticated.POST("/templates/:templateID/run", templateHandler.HandleRunTemplate)

		authenticated.GET("/rewards/tiers", rewardHandler.HandleListRewardTiers)
		authenticated.POST("/rewards/tiers", rewardHandler.HandleCreateRewardTier)

		authenticated.POST("/ops/scan", opsHandler.HandleScan)
		authenticated.POST("/ops/sweep", opsHandler.HandleSweep)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "ISK lottery operator API"
	docs.SwaggerInfo.Description = "Operator API of the ISK lottery: lotteries, recurring templates, anomalies and manual runs of the reconciliation jobs."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
