package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/vietanh2810/festivals-api/docs"
	v1 "github.com/vietanh2810/festivals-api/internal/api/handler/v1"
	"github.com/vietanh2810/festivals-api/internal/api/middleware"
	"github.com/vietanh2810/festivals-api/internal/config"
	"github.com/vietanh2810/festivals-api/internal/filestore"
	"github.com/vietanh2810/festivals-api/internal/repository"
	"github.com/vietanh2810/festivals-api/internal/repository/dao"
	"github.com/vietanh2810/festivals-api/internal/service"
)

// formOverhead is the room left for text fields and multipart framing on
// top of the image size cap.
const formOverhead = 1 << 20

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB, images filestore.Store) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()
	if conf.Upload.MaxSize > 0 {
		engine.MaxMultipartMemory = conf.Upload.MaxSize
	}

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	festivalHandler := s.initFestivalHandler(db, images)
	s.MountHandlers(authHandler, festivalHandler)
	s.MountUploads(images)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	adminDAO := dao.NewAdminDAO(db)
	repo := repository.NewAdminRepository(adminDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initFestivalHandler(db *gorm.DB, images filestore.Store) *v1.FestivalHandler {
	festivalDAO := dao.NewFestivalDAO(db)
	repo := repository.NewFestivalRepository(festivalDAO)
	svc := service.NewFestivalService(repo, images)
	handler := v1.NewFestivalHandler(svc, s.Config.Upload.MaxSize)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New(requestid.WithGenerator(uuid.NewString)))
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(authHandler *v1.AuthHandler, festivalHandler *v1.FestivalHandler) {
	const basePath = "/api"

	authenticator := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)

	public := s.Router.Group(basePath)
	{
		public.POST("/login", authHandler.HandleLogin)
		public.GET("/festivals", festivalHandler.HandleGetFestivals)
		public.GET("/festivals/:festivalID", festivalHandler.HandleGetFestival)
	}

	limitBody := middleware.LimitBody(s.maxBodySize())

	admin := s.Router.Group(basePath, authenticator.VerifyJWT())
	{
		admin.GET("/auth/me", authHandler.HandleMe)
		admin.POST("/festivals", limitBody, festivalHandler.HandleCreateFestival)
		admin.PUT("/festivals/:festivalID", limitBody, festivalHandler.HandleUpdateFestival)
		admin.DELETE("/festivals/:festivalID", festivalHandler.HandleDeleteFestival)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Festival directory API"
	docs.SwaggerInfo.Description = "Festivals in Tirol and Bayern."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}

// maxBodySize bounds festival form bodies. Zero disables the bound.
func (s *Server) maxBodySize() int64 {
	if s.Config.Upload.MaxSize <= 0 {
		return 0
	}
	return s.Config.Upload.MaxSize + formOverhead
}

// MountUploads serves locally stored images. Remote stores hand out
// absolute URLs and need no route.
func (s *Server) MountUploads(images filestore.Store) {
	local, ok := images.(*filestore.LocalStore)
	if !ok {
		return
	}

	s.Router.Static(local.PublicPath(), local.Dir())
}
