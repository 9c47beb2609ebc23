package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/mindful-labyrinth/api"
	gameapi "github.com/beka-birhanu/mindful-labyrinth/api/game"
	api_i "github.com/beka-birhanu/mindful-labyrinth/api/i"
	"github.com/beka-birhanu/mindful-labyrinth/api/identity"
	"github.com/beka-birhanu/mindful-labyrinth/config"
	"github.com/beka-birhanu/mindful-labyrinth/game/maze"
	logger "github.com/beka-birhanu/mindful-labyrinth/infrastruture/log"
	"github.com/beka-birhanu/mindful-labyrinth/infrastruture/repo"
	"github.com/beka-birhanu/mindful-labyrinth/infrastruture/sortedstorage"
	"github.com/beka-birhanu/mindful-labyrinth/infrastruture/token"
	"github.com/beka-birhanu/mindful-labyrinth/service"
	"github.com/beka-birhanu/mindful-labyrinth/service/i"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap/zapcore"
)

// Global variables for dependencies
var (
	mongoClient         *mongo.Client
	redisClient         *redis.Client
	resultRepo          i.ResultRepo
	progressRepo        i.ProgressRepo
	leaderboard         i.Leaderboard
	quotePool           []maze.Quote
	labyrinthManager    i.LabyrinthManager
	labyrinthController api_i.Controller
	jwtTokenizer        i.Tokenizer
	router              *api.Router
	appLogger           *logger.Logger
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the labyrinth HTTP service",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func newLogger(name, color string) *logger.Logger {
	level := zapcore.InfoLevel
	if config.Envs.LogDebug {
		level = zapcore.DebugLevel
	}
	l, err := logger.New(name, color, os.Stdout, logger.WithLevel(level))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Creating %s logger: %v\n", name, err)
		os.Exit(1)
	}
	return l
}

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRepos(client *mongo.Client) {
	resultRepo = repo.NewResultRepo(client, config.Envs.DBName, config.Envs.ResultsCollection)
	progressRepo = repo.NewProgressRepo(client, config.Envs.DBName, config.Envs.ProgressCollection)
	appLogger.Info("Result and progress repositories initialized")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initLeaderboard() {
	set, err := sortedstorage.NewRedisSortedSet(redisClient, config.Envs.LeaderboardTTL)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating leaderboard store: %v", err))
		os.Exit(1)
	}

	leaderboard, err = service.NewLeaderboard(set, newLogger("LEADERBOARD", config.ColorYellow), "")
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating leaderboard: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Leaderboard initialized")
}

func initQuotePool() {
	if config.Envs.QuotesFile == "" {
		quotePool = maze.DefaultPool()
		appLogger.Info(fmt.Sprintf("Using the built-in pool of %d quotes", len(quotePool)))
		return
	}

	var err error
	quotePool, err = maze.LoadPoolFile(config.Envs.QuotesFile)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Loading quote pool: %v", err))
		os.Exit(1)
	}
	appLogger.Info(fmt.Sprintf("Loaded %d quotes from %s", len(quotePool), config.Envs.QuotesFile))
}

func initLabyrinthManager() {
	var err error
	labyrinthManager, err = service.NewLabyrinthSessionManager(&service.Config{
		Pool:        quotePool,
		Results:     resultRepo,
		Progress:    progressRepo,
		Leaderboard: leaderboard,
		Logger:      newLogger("LABYRINTH", config.ColorCyan),
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating labyrinth manager: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Labyrinth manager initialized")
}

func initLabyrinthController() {
	var err error
	labyrinthController, err = gameapi.NewLabyrinthController(labyrinthManager, leaderboard, newLogger("HTTP", config.ColorBlue))
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating labyrinth controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Labyrinth controller initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Mode:                    config.Envs.GinMode,
		Controllers:             []api_i.Controller{labyrinthController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func serve() {
	config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	appLogger = newLogger("APP", config.ColorGreen)
	defer func() {
		_ = appLogger.Sync()
	}()

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()
	initRedis(ctx)
	defer redisClient.Close()

	initRepos(mongoClient)
	initLeaderboard()
	initQuotePool()
	initLabyrinthManager()
	initLabyrinthController()
	initJWTTokenizer()
	initRouter(jwtTokenizer)

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
