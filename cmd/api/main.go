package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/ecg-portal/internal/config"
	"github.com/yourusername/ecg-portal/internal/handler"
	"github.com/yourusername/ecg-portal/internal/middleware"
	pgRepo "github.com/yourusername/ecg-portal/internal/repository/postgres"
	redisRepo "github.com/yourusername/ecg-portal/internal/repository/redis"
	"github.com/yourusername/ecg-portal/internal/service"
	"github.com/yourusername/ecg-portal/pkg/auth"
	"github.com/yourusername/ecg-portal/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	quizRepo := pgRepo.NewQuizRepo(db)
	resultRepo := pgRepo.NewResultRepo(db)
	articleRepo := pgRepo.NewArticleRepo(db)
	videoRepo := pgRepo.NewVideoRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	attemptStore, err := redisRepo.NewAttemptStore(redisClient, cfg.Cache.AttemptTTL())
	if err != nil {
		log.Printf("Failed to initialize AttemptStore: %v", err)
		os.Exit(1)
	}

	// Инициализируем JWT
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)

	// Почтовый сервис: без ключа Resend письма не отправляются,
	// но заявки администраторов все равно создаются
	var emailService service.EmailService
	if cfg.Email.ResendAPIKey != "" {
		emailService, err = service.NewResendEmailService(cfg.Email.ResendAPIKey, cfg.Email.From, cfg.Email.OwnerEmail)
		if err != nil {
			log.Printf("Failed to initialize ResendEmailService: %v", err)
			os.Exit(1)
		}
	} else {
		log.Println("RESEND_API_KEY не задан: используется NoopEmailService")
		emailService = &service.NoopEmailService{}
	}

	// Инициализируем сервисы
	quizService := service.NewQuizService(quizRepo, cacheRepo, cfg.Cache.QuizTTL())
	attemptService := service.NewAttemptService(quizService, attemptStore, resultRepo)
	leaderboardService := service.NewLeaderboardService(resultRepo, userRepo)
	authService := service.NewAuthService(userRepo, emailService, jwtService, cfg.Server.BaseURL)
	userService := service.NewUserService(userRepo)
	articleService := service.NewArticleService(articleRepo)
	videoService := service.NewVideoService(videoRepo)

	// Инициализируем обработчики
	authHandler := handler.NewAuthHandler(authService, userService)
	userHandler := handler.NewUserHandler(userService)
	quizHandler := handler.NewQuizHandler(quizService)
	attemptHandler := handler.NewAttemptHandler(attemptService)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService)
	articleHandler := handler.NewArticleHandler(articleService)
	videoHandler := handler.NewVideoHandler(videoService)

	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	router := gin.Default()

	if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
		log.Printf("Warning: failed to set trusted proxies: %v", err)
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Data-Source"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Аутентификация
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			// Переход владельца по ссылке из письма
			authGroup.GET("/approve", authHandler.Approve)

			authedAuth := authGroup.Group("/")
			authedAuth.Use(authMiddleware.RequireAuth())
			{
				authedAuth.GET("/me", authHandler.Me)
			}
		}

		// Викторины: чтение доступно всем аутентифицированным
		quizzes := api.Group("/quizzes")
		quizzes.Use(authMiddleware.RequireAuth())
		{
			quizzes.GET("", quizHandler.List)
			quizzes.GET("/:id", middleware.ExtractUintParam("id", "quiz_id"), quizHandler.Get)

			// Мутации — только администраторам
			quizzes.POST("", authMiddleware.AdminOnly(), quizHandler.Create)
			quizzes.PUT("/:id", authMiddleware.AdminOnly(), middleware.ExtractUintParam("id", "quiz_id"), quizHandler.Update)
			quizzes.PUT("/:id/questions", authMiddleware.AdminOnly(), middleware.ExtractUintParam("id", "quiz_id"), quizHandler.ReplaceQuestions)
			quizzes.DELETE("/:id", authMiddleware.AdminOnly(), middleware.ExtractUintParam("id", "quiz_id"), quizHandler.Delete)
		}

		// Попытки прохождения
		attempts := api.Group("/attempts")
		attempts.Use(authMiddleware.RequireAuth())
		{
			attempts.POST("", attemptHandler.Start)
			attempts.GET("/:id/question", attemptHandler.CurrentQuestion)
			attempts.POST("/:id/answer", attemptHandler.SelectAnswer)
			attempts.POST("/:id/advance", attemptHandler.Advance)
			attempts.POST("/:id/retreat", attemptHandler.Retreat)
			attempts.GET("/:id/result", attemptHandler.Result)
		}

		// Сохраненные результаты текущего пользователя
		api.GET("/results/my", authMiddleware.RequireAuth(), attemptHandler.MyResults)

		// Лидерборд: чтение открыто всем, экспорт — только администраторам
		api.GET("/leaderboard", leaderboardHandler.Get)
		api.GET("/leaderboard/export", authMiddleware.RequireAuth(), authMiddleware.AdminOnly(), leaderboardHandler.Export)

		// Учебные материалы: статьи
		articles := api.Group("/articles")
		articles.Use(authMiddleware.RequireAuth())
		{
			articles.GET("", articleHandler.List)
			articles.GET("/:id", middleware.ExtractUintParam("id", "article_id"), articleHandler.Get)

			articles.POST("", authMiddleware.AdminOnly(), articleHandler.Create)
			articles.PUT("/:id", authMiddleware.AdminOnly(), middleware.ExtractUintParam("id", "article_id"), articleHandler.Update)
			articles.DELETE("/:id", authMiddleware.AdminOnly(), middleware.ExtractUintParam("id", "article_id"), articleHandler.Delete)
		}

		// Учебные материалы: видео
		videos := api.Group("/videos")
		videos.Use(authMiddleware.RequireAuth())
		{
			videos.GET("", videoHandler.List)
			videos.GET("/:id", middleware.ExtractUintParam("id", "video_id"), videoHandler.Get)

			videos.POST("", authMiddleware.AdminOnly(), videoHandler.Create)
			videos.PUT("/:id", authMiddleware.AdminOnly(), middleware.ExtractUintParam("id", "video_id"), videoHandler.Update)
			videos.DELETE("/:id", authMiddleware.AdminOnly(), middleware.ExtractUintParam("id", "video_id"), videoHandler.Delete)
		}

		// Управление пользователями (только администраторы)
		users := api.Group("/users")
		users.Use(authMiddleware.RequireAuth(), authMiddleware.AdminOnly())
		{
			users.GET("", userHandler.List)
			users.GET("/:id", middleware.ExtractUintParam("id", "target_user_id"), userHandler.Get)
			users.PUT("/:id", middleware.ExtractUintParam("id", "target_user_id"), userHandler.Update)
			users.DELETE("/:id", middleware.ExtractUintParam("id", "target_user_id"), userHandler.Delete)
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	// Ждем сигнал остановки
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited properly")
}
