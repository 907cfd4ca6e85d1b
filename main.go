package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/CUknot/forum_backend/config"
	"github.com/CUknot/forum_backend/controllers"
	"github.com/CUknot/forum_backend/database"
	"github.com/CUknot/forum_backend/docs"
	"github.com/CUknot/forum_backend/middleware"
	"github.com/CUknot/forum_backend/sessions"
	"github.com/CUknot/forum_backend/utils"
	"github.com/CUknot/forum_backend/websocket"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const sessionPurgeInterval = time.Hour

// @title           Forum API
// @version         1.0
// @description     Rooms, topics and messages for a discussion forum
// @host            localhost:8080
// @BasePath        /
// @schemes         http
func main() {
	cfg := config.Load()
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	store := database.NewStore(db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Session store
	var sessionStore sessions.Store
	var redisClient *redis.Client
	switch cfg.SessionStore {
	case config.StoreRedis:
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to redis at %s: %v", cfg.RedisAddr, err)
		}
		sessionStore = sessions.NewRedisStore(redisClient)
		log.Printf("Sessions stored in redis at %s", cfg.RedisAddr)
	default:
		dbSessions := sessions.NewDBStore(db)
		go sessions.RunJanitor(ctx, dbSessions, sessionPurgeInterval)
		sessionStore = dbSessions
	}

	auth := &middleware.Auth{
		Sessions: sessionStore,
		Users:    store,
		Tokens:   utils.NewTokenCodec(cfg.JWTSecret),
		TTL:      cfg.SessionTTL,
		Secure:   cfg.CookieSecure,
	}

	hub := websocket.NewHub()
	go hub.Run(ctx)

	utils.RegisterValidators()

	// Set up Swagger info
	docs.SwaggerInfo.Host = "localhost:" + cfg.Port
	docs.SwaggerInfo.BasePath = "/"
	docs.SwaggerInfo.Schemes = []string{"http"}

	// Set up router
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(auth.LoadSession())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	controllers.New(store, auth, hub).Routes(router)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server running on port %s", cfg.Port)
		log.Printf("Swagger documentation available at http://localhost:%s/swagger/index.html", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	operations := map[string]gfshutdown.Operation{
		"http-server": func(ctx context.Context) error {
			return server.Shutdown(ctx)
		},
		"background": func(ctx context.Context) error {
			cancel()
			return nil
		},
		"database": func(ctx context.Context) error {
			return store.Close()
		},
	}
	if redisClient != nil {
		operations["redis"] = func(ctx context.Context) error {
			return redisClient.Close()
		}
	}

	wait := gfshutdown.GracefulShutdown(context.Background(), cfg.ShutdownTimeout, operations)
	exitCode := <-wait
	log.Printf("Server exited with code: %d", exitCode)
	os.Exit(exitCode)
}
