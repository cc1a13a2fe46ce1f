package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-account-service/config"
	"github.com/oksasatya/user-account-service/internal/application"
	repo "github.com/oksasatya/user-account-service/internal/domain/repository"
	"github.com/oksasatya/user-account-service/pkg/helpers"
)

// app-level container to share constructed components across packages.
// Optional clients stay nil when their integration is disabled.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	esClient    *elasticsearch.Client
	rabbitPub   *helpers.RabbitPublisher

	userRepo   repo.UserRepository
	hasher     helpers.PasswordHasher
	jwtManager *helpers.JWTManager

	authService *application.AuthService
	userService *application.UserService
)

func SetConfig(c *config.Config)              { cfg = c }
func GetConfig() *config.Config               { return cfg }
func SetLogger(l *logrus.Logger)              { logger = l }
func GetLogger() *logrus.Logger               { return logger }
func SetPGPool(p *pgxpool.Pool)               { pgPool = p }
func GetPGPool() *pgxpool.Pool                { return pgPool }
func SetRedis(r *redis.Client)                { redisClient = r }
func GetRedis() *redis.Client                 { return redisClient }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }
func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }

func SetUserRepo(r repo.UserRepository)  { userRepo = r }
func GetUserRepo() repo.UserRepository   { return userRepo }
func SetHasher(h helpers.PasswordHasher) { hasher = h }
func GetHasher() helpers.PasswordHasher  { return hasher }
func SetJWT(m *helpers.JWTManager)       { jwtManager = m }
func GetJWT() *helpers.JWTManager        { return jwtManager }

func GetAuthService() *application.AuthService { return authService }
func GetUserService() *application.UserService { return userService }

// BuildServices constructs the application services from what has been set so far.
// Call it after the repository, hasher and JWT manager are in place.
func BuildServices() {
	authService = application.NewAuthService(userRepo, hasher, jwtManager, logger)

	userService = application.NewUserService(userRepo, logger)
	if redisClient != nil {
		userService.WithCache(redisClient, cfg.UserCacheTTL)
	}
	if esClient != nil {
		userService.WithSearch(esClient, cfg.ESUsersIndex)
	}
	if rabbitPub != nil {
		userService.WithEvents(rabbitPub)
	}
}
