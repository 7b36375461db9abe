package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beka-birhanu/vinom-maze/api"
	"github.com/beka-birhanu/vinom-maze/api/auth"
	api_i "github.com/beka-birhanu/vinom-maze/api/i"
	mazeapi "github.com/beka-birhanu/vinom-maze/api/maze"
	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/beka-birhanu/vinom-maze/infrastruture/leaderboard"
	logger "github.com/beka-birhanu/vinom-maze/infrastruture/log"
	"github.com/beka-birhanu/vinom-maze/infrastruture/repo"
	"github.com/beka-birhanu/vinom-maze/infrastruture/token"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	startupTimeout = 30 * time.Second
	runsCollection = "runs"
)

// Global variables for dependencies
var (
	mongoClient    *mongo.Client
	redisClient    *redis.Client
	runRepo        i.RunRepo
	board          i.Leaderboard
	jwtTokenizer   i.Tokenizer
	sessionManager *service.SessionManager
	mazeController api_i.Controller
	router         *api.Router
	appLogger      *logger.Logger
)

func fatal(format string, args ...any) {
	appLogger.Error(fmt.Sprintf(format, args...))
	os.Exit(1)
}

func initMongo(ctx context.Context) {
	if config.Envs.DBHost == "" {
		appLogger.Warning("DB_HOST not set, run history disabled")
		return
	}

	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)
	if config.Envs.DBUser == "" {
		uri = fmt.Sprintf("mongodb://%s:%v", config.Envs.DBHost, config.Envs.DBPort)
	}

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		fatal("Failed to connect to MongoDB: %v", err)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		fatal("MongoDB ping failed: %v", err)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRunRepo(ctx context.Context) {
	if mongoClient == nil {
		return
	}

	runs := repo.NewRunRepo(mongoClient, config.Envs.DBName, runsCollection)
	if err := runs.EnsureIndexes(ctx); err != nil {
		fatal("Creating run indexes: %v", err)
	}
	runRepo = runs
	appLogger.Info("Run repository initialized")
}

func initRedis(ctx context.Context) {
	if config.Envs.RedisAddr == "" {
		appLogger.Warning("REDIS_ADDR not set, leaderboard disabled")
		return
	}

	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		fatal("Redis ping failed: %v", err)
	}
	appLogger.Info("Connected to Redis")
}

func initLeaderboard() {
	if redisClient == nil {
		return
	}

	var err error
	board, err = leaderboard.NewRedisLeaderboard(redisClient, leaderboard.Options{
		TTL:     config.Envs.LeaderboardTTL,
		MaxSize: config.Envs.LeaderboardSize,
	})
	if err != nil {
		fatal("Creating leaderboard: %v", err)
	}
	appLogger.Info("Leaderboard initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initSessionManager() {
	sessionLogger, err := logger.New("SESSION-MANAGER", config.ColorCyan, os.Stdout)
	if err != nil {
		fatal("Creating session manager logger: %v", err)
	}

	mode, err := maze.ParseMoveMode(config.Envs.MoveMode)
	if err != nil {
		fatal("Reading MOVE_MODE: %v", err)
	}

	sessionManager, err = service.NewSessionManager(&service.Config{
		Tokenizer:   jwtTokenizer,
		Logger:      sessionLogger,
		RunRepo:     runRepo,
		Leaderboard: board,
		MoveMode:    mode,
		TokenTTL:    config.Envs.TokenTTL,
	})
	if err != nil {
		fatal("Creating session manager: %v", err)
	}
	appLogger.Info(fmt.Sprintf("Session manager initialized (%s moves)", mode))
}

func initMazeController() {
	controllerLogger, err := logger.New("MAZE-API", config.ColorMagenta, os.Stdout)
	if err != nil {
		fatal("Creating maze controller logger: %v", err)
	}

	mazeController, err = mazeapi.NewMazeController(sessionManager, controllerLogger)
	if err != nil {
		fatal("Creating maze controller: %v", err)
	}
	appLogger.Info("Maze controller initialized")
}

func initRouter(t i.Tokenizer) {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{mazeController},
		AuthorizationMiddleware: auth.Authorize(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	appLogger, _ = logger.New("APP", config.ColorGreen, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startupCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	initMongo(startupCtx)
	defer func() {
		if mongoClient != nil {
			_ = mongoClient.Disconnect(context.Background())
		}
	}()
	initRunRepo(startupCtx)

	initRedis(startupCtx)
	defer func() {
		if redisClient != nil {
			_ = redisClient.Close()
		}
	}()
	initLeaderboard()

	initJWTTokenizer()
	initSessionManager()
	defer sessionManager.StopAll()
	initMazeController()
	initRouter(jwtTokenizer)

	if err := router.Run(ctx); err != nil {
		appLogger.Error(fmt.Sprintf("Running server: %v", err))
		return
	}
	appLogger.Info("Server stopped")
}
