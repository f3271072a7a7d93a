package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	v1 "warbler/api/v1"
	"warbler/config"
	"warbler/dao"
	"warbler/internal/auth"
	myvalidator "warbler/internal/validator"
	"warbler/middleware"
	"warbler/model"
	"warbler/service"
)

func main() {
	// 初始化配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../"
	}
	config.InitConfig(configPath)
	config.InitRedis()

	// 初始化数据库（APP_ENV=test 选择测试库）
	db, err := gorm.Open(mysql.Open(config.DatabaseDSN()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	// 自动迁移
	if err := db.AutoMigrate(&model.User{}, &model.Message{}, &model.Follow{}); err != nil {
		panic(err)
	}

	// 初始化 DAO 和 Service
	session := auth.NewRedisSessionStore(config.RedisClient)
	userDAO := dao.NewUserDAO(db)
	messageDAO := dao.NewMessageDAO(db)
	followDAO := dao.NewFollowDAO(db)

	userService := service.NewUserService(userDAO, session)
	messageService := service.NewMessageService(messageDAO, userDAO)
	followService := service.NewFollowService(followDAO, userDAO)

	userAPI := v1.NewUserAPI(userService)
	messageAPI := v1.NewMessageAPI(messageService)
	followAPI := v1.NewFollowAPI(followService)

	// 初始化路由
	r := gin.Default()
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 注册自定义校验器
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("imageurl", myvalidator.IsImageURL); err != nil {
			panic(err)
		}
	}

	// 公共路由
	public := r.Group("/api/v1")
	{
		public.POST("/users/register", userAPI.Register)
		loginLimiter := middleware.LoginRateLimiter(config.RedisClient, 5, time.Minute)
		public.POST("/users/login", loginLimiter, userAPI.Login)
		public.POST("/users/refresh", userAPI.RefreshToken)
		public.GET("/users/:id/messages", messageAPI.ListByUser)
	}

	// 私有路由
	private := r.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(session))
	{
		private.POST("/users/logout", userAPI.Logout)
		private.DELETE("/users/me", userAPI.DeleteMe)

		private.GET("/users/:id/following", followAPI.Following)
		private.GET("/users/:id/followers", followAPI.Followers)
		private.POST("/users/:id/follow", followAPI.Follow)
		private.DELETE("/users/:id/follow", followAPI.Unfollow)

		private.POST("/messages", messageAPI.Compose)
		private.DELETE("/messages/:id", messageAPI.Delete)
	}

	// 启动服务
	if err := r.Run(config.GlobalConfig.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
