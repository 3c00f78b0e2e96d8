package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/outabout/outabout-api/docs"
	v1 "github.com/outabout/outabout-api/internal/api/handler/v1"
	"github.com/outabout/outabout-api/internal/api/middleware"
	"github.com/outabout/outabout-api/internal/config"
	"github.com/outabout/outabout-api/internal/repository"
	"github.com/outabout/outabout-api/internal/repository/dao"
	"github.com/outabout/outabout-api/internal/service"
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
	activityHandler := s.initActivityHandler(db)
	requestHandler := s.initActivityRequestHandler(db)
	s.MountHandlers(authHandler, userHandler, activityHandler, requestHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewUserService(repo)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) initActivityHandler(db *gorm.DB) *v1.ActivityHandler {
	activityDAO := dao.NewActivityDAO(db)
	repo := repository.NewActivityRepository(activityDAO)
	svc := service.NewActivityService(repo)
	handler := v1.NewActivityHandler(svc)

	return handler
}

func (s *Server) initActivityRequestHandler(db *gorm.DB) *v1.ActivityRequestHandler {
	requestDAO := dao.NewActivityRequestDAO(db)
	repo := repository.NewActivityRequestRepository(requestDAO)
	activityRepo := repository.NewActivityRepository(dao.NewActivityDAO(db))
	svc := service.NewActivityRequestService(repo, activityRepo)
	handler := v1.NewActivityRequestHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(authHandler *v1.AuthHandler, userHandler *v1.UserHandler, activityHandler *v1.ActivityHandler, requestHandler *v1.ActivityRequestHandler) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	users := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		users.GET("/users/:userID", userHandler.HandleGetUser)
	}

	activities := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		activities.GET("/activities", activityHandler.HandleGetActivities)
		activities.POST("/activities", activityHandler.HandleCreateActivity)
		activities.GET("/activities/:activityID", activityHandler.HandleGetActivity)
		activities.GET("/activities/:activityID/participants", activityHandler.HandleGetParticipants)

		activities.POST("/activities/:activityID/requests", requestHandler.HandleCreateRequest)
		activities.GET("/activities/:activityID/requests", requestHandler.HandleGetRequests)
		activities.DELETE("/activities/:activityID/requests", requestHandler.HandleWithdrawRequest)
		activities.DELETE("/activities/:activityID/participation", requestHandler.HandleLeaveActivity)
		activities.PATCH("/requests/:requestID", requestHandler.HandleDecideRequest)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "outabout API"
	docs.SwaggerInfo.Description = "Activity platform backend: users host activities, request to join them, and hosts accept or reject requests."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
