package internal

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	docs "github.com/redink-lab/redink/docs"
	"github.com/redink-lab/redink/internal/handler"
	"github.com/redink-lab/redink/internal/middleware"
	"github.com/redink-lab/redink/internal/resputil"
	"github.com/redink-lab/redink/pkg/config"
	"github.com/redink-lab/redink/pkg/constants"
)

type Backend struct {
	R *gin.Engine
}

func (b *Backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.R.ServeHTTP(w, r)
}

func Register(conf *handler.RegisterConfig) *Backend {
	s := new(Backend)
	s.R = gin.Default()

	// 浏览器客户端的跨域来源来自配置，带上凭证以便刷新 Cookie 生效
	if origins := config.GetConfig().CORSOrigins; len(origins) > 0 {
		corsConf := cors.DefaultConfig()
		corsConf.AllowOrigins = origins
		corsConf.AllowCredentials = true
		corsConf.AddAllowHeaders("Authorization")
		s.R.Use(cors.New(corsConf))
	}

	// Kubernetes health check
	s.R.GET("/health", func(c *gin.Context) {
		resputil.Message(c, "ok")
	})

	// 未匹配的路径也走统一响应包络
	s.R.NoRoute(func(c *gin.Context) {
		resputil.HTTPError(c, http.StatusNotFound, "route not found")
	})

	// Register custom routes
	s.RegisterService(conf)

	// Swagger
	// todo: DisablingWrapHandler https://github.com/swaggo/gin-swagger/blob/master/swagger.go#L205
	docs.SwaggerInfo.BasePath = "/"
	s.R.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return s
}

func (b *Backend) RegisterService(conf *handler.RegisterConfig) {
	managers := registerManagers(conf)

	///////////////////////////////////////
	//// Public routers, no need login ////
	///////////////////////////////////////

	publicRouter := b.R.Group("")

	///////////////////////////////////////
	//// Protected routers, need login ////
	///////////////////////////////////////

	protectedRouter := b.R.Group(constants.APIPrefix)
	protectedRouter.Use(middleware.AuthProtected())

	///////////////////////////////////////
	//// Admin routers, need admin role ///
	///////////////////////////////////////

	adminRouter := b.R.Group(constants.APIPrefix + "/admin")
	adminRouter.Use(middleware.AuthProtected(), middleware.AuthAdmin())

	for _, mgr := range managers {
		mgr.RegisterPublic(publicRouter)
		mgr.RegisterProtected(protectedRouter)
		mgr.RegisterAdmin(adminRouter)
	}
}
