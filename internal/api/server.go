package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/vietanh2810/lucky-ticket-api/docs"
	v1 "github.com/vietanh2810/lucky-ticket-api/internal/api/handler/v1"
	"github.com/vietanh2810/lucky-ticket-api/internal/api/middleware"
	"github.com/vietanh2810/lucky-ticket-api/internal/config"
	"github.com/vietanh2810/lucky-ticket-api/internal/pkg/numgen"
	"github.com/vietanh2810/lucky-ticket-api/internal/repository"
	"github.com/vietanh2810/lucky-ticket-api/internal/repository/dao"
	"github.com/vietanh2810/lucky-ticket-api/internal/service"
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

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	lotteryHandler := s.initLotteryHandler(db)
	s.MountHandlers(authHandler, userHandler, lotteryHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo, s.Config.API.FixedPassword)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewUserService(repo)
	spinSvc := service.NewSpinService(
		repository.NewSpinAllocationRepository(dao.NewSpinAllocationDAO(db)),
		s.Config.Lottery.SpinWeights,
	)
	handler := v1.NewUserHandler(svc, spinSvc)

	return handler
}

func (s *Server) initLotteryHandler(db *gorm.DB) *v1.LotteryHandler {
	allocationRepo := repository.NewSpinAllocationRepository(dao.NewSpinAllocationDAO(db))
	submissionRepo := repository.NewSubmissionRepository(dao.NewSubmissionDAO(db))

	spinSvc := service.NewSpinService(allocationRepo, s.Config.Lottery.SpinWeights)
	submissionSvc := service.NewSubmissionService(submissionRepo, allocationRepo)
	suggestionSvc := service.NewSuggestionService(numgen.NewClient(s.Config.Suggest))
	handler := v1.NewLotteryHandler(spinSvc, submissionSvc, suggestionSvc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(authHandler *v1.AuthHandler, userHandler *v1.UserHandler, lotteryHandler *v1.LotteryHandler) {
	const basePath = "/api/v1"

	authenticator := middleware.NewAuthenticator(s.Config.API.SessionSigningKey)

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/login", authHandler.HandleLogin)
		auth.POST("/auth/logout", authHandler.HandleLogout)
	}

	lottery := s.Router.Group(basePath, authenticator.SessionRequired())
	{
		lottery.GET("/me", userHandler.HandleGetMe)
		lottery.POST("/spin", lotteryHandler.HandleSpin)
		lottery.POST("/submissions", lotteryHandler.HandleSubmit)
		lottery.GET("/suggestion", lotteryHandler.HandleGetSuggestion)
	}

	admin := s.Router.Group(basePath, authenticator.SessionRequired(), middleware.AdminRequired())
	{
		admin.GET("/submissions", lotteryHandler.HandleListSubmissions)
	}

	pageHandler := v1.NewPageHandler()
	pages := s.Router.Group("", authenticator.PageGate())
	{
		pages.GET(middleware.LoginPath, pageHandler.HandleLoginPage)
		pages.GET(middleware.DashboardPath, pageHandler.HandleDashboardPage)
		pages.GET(middleware.AdminPath, pageHandler.HandleAdminPage)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Lucky Ticket API"
	docs.SwaggerInfo.Description = "Lottery-ticket promotion API: spin, submit, report."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
