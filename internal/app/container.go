package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/you/contactsvc/domain"
	"github.com/you/contactsvc/internal/config"
	httpx "github.com/you/contactsvc/internal/http"
	"github.com/you/contactsvc/internal/http/handlers"
	"github.com/you/contactsvc/internal/http/middleware"
	"github.com/you/contactsvc/internal/infrastructure/audit"
	"github.com/you/contactsvc/internal/infrastructure/auth"
	"github.com/you/contactsvc/internal/infrastructure/database"
	"github.com/you/contactsvc/internal/infrastructure/notifications"
	"github.com/you/contactsvc/internal/infrastructure/repositories"
	"github.com/you/contactsvc/internal/infrastructure/storage"
	"github.com/you/contactsvc/internal/services"
)

// Infrastructure holds externally owned adapters.
// Nil fields are built from the configuration.
type Infrastructure struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Notifier domain.NotificationService
	Images   domain.ImageHost
}

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config
	Logger *log.Logger

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client
	ownsDB      bool
	ownsRedis   bool

	// Repositories
	UserRepo    domain.UserRepository
	ContactRepo domain.ContactRepository
	Revocations domain.RevocationStore

	// Adapters
	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	ImageHost       domain.ImageHost
	ImageProcessor  domain.ImageProcessor
	AuditLogger     domain.AuditLogger

	// Services
	AuthSvc    domain.AuthService
	UserSvc    domain.UserService
	ContactSvc domain.ContactService
	PolicySvc  *services.PolicyServiceImpl
}

// NewContainer creates and initializes all dependencies from cfg
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	return NewContainerWith(ctx, cfg, Infrastructure{})
}

// NewContainerWith is NewContainer with some adapters supplied by the caller.
// Connections passed in are not closed by Close.
func NewContainerWith(ctx context.Context, cfg *config.Config, infra Infrastructure) (*Container, error) {
	container := &Container{
		Config:          cfg,
		Logger:          log.StandardLogger(),
		DB:              infra.DB,
		RedisClient:     infra.Redis,
		NotificationSvc: infra.Notifier,
		ImageHost:       infra.Images,
	}

	// Initialize infrastructure
	if err := container.initDatabase(); err != nil {
		return nil, err
	}
	if err := container.initRedis(ctx); err != nil {
		container.Close()
		return nil, err
	}
	if err := container.initAdapters(ctx); err != nil {
		container.Close()
		return nil, err
	}

	// Initialize repositories
	container.initRepositories()

	// Initialize services
	if err := container.initServices(ctx); err != nil {
		container.Close()
		return nil, err
	}

	return container, nil
}

func (c *Container) initDatabase() error {
	if c.DB == nil {
		db, err := database.Open(c.Config.DSN, c.Config.LogLevel)
		if err != nil {
			return err
		}
		c.DB = db
		c.ownsDB = true
	}

	// Auto-migrate
	return database.AutoMigrate(c.DB)
}

func (c *Container) initRedis(ctx context.Context) error {
	if c.RedisClient == nil {
		c.RedisClient = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB).Client
		c.ownsRedis = true
	}
	if err := c.RedisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis unavailable: %w", err)
	}
	return nil
}

func (c *Container) initAdapters(ctx context.Context) error {
	c.PasswordSvc = auth.NewPasswordService()

	tokenSvc, err := auth.NewJWTService(c.Config.JWTSecret, c.Config.JWTAlgorithm, c.Config.JWTIssuer, auth.TokenTTLs{
		Access:        c.Config.AccessTTL,
		Refresh:       c.Config.RefreshTTL,
		VerifyEmail:   c.Config.VerifyEmailTTL,
		ResetPassword: c.Config.ResetPasswordTTL,
	})
	if err != nil {
		return err
	}
	c.TokenSvc = tokenSvc

	if c.NotificationSvc == nil {
		c.NotificationSvc = notifications.NewEmailService(notifications.SMTPSettings{
			Host:     c.Config.SMTPHost,
			Port:     c.Config.SMTPPort,
			User:     c.Config.SMTPUser,
			Password: c.Config.SMTPPassword,
			From:     c.Config.MailFrom,
		}, c.Logger)
	}

	if c.ImageHost == nil {
		host, err := storage.NewS3ImageHost(ctx, storage.S3Settings{
			Region:    c.Config.S3Region,
			Endpoint:  c.Config.S3Endpoint,
			AccessKey: c.Config.S3AccessKey,
			SecretKey: c.Config.S3SecretKey,
			Bucket:    c.Config.S3Bucket,
			PublicURL: c.Config.S3PublicURL,
		})
		if err != nil {
			return err
		}
		c.ImageHost = host
	}
	c.ImageProcessor = storage.NewAvatarProcessor(c.Config.AvatarSize)
	c.AuditLogger = audit.NewLogrusAuditLogger(c.Logger)
	return nil
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.ContactRepo = repositories.NewContactRepository(c.DB)
	c.Revocations = repositories.NewRevocationRepository(c.RedisClient)
}

func (c *Container) initServices(ctx context.Context) error {
	// Initialize policy service
	cas, err := auth.NewCasbinService(c.DB, c.Config.CasbinModelPath)
	if err != nil {
		return err
	}
	c.PolicySvc = services.NewPolicyService(cas.E)
	if err := c.PolicySvc.SyncDefaults(c.Config.AvatarUploadPolicy == config.AvatarSelfService); err != nil {
		return fmt.Errorf("failed to sync default policies: %w", err)
	}

	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.PasswordSvc,
		c.TokenSvc,
		c.Revocations,
		c.AuditLogger,
		services.AuthOptions{RotateRefreshTokens: c.Config.RotateRefreshTokens},
	)
	c.UserSvc = services.NewUserService(services.UserDeps{
		Users:       c.UserRepo,
		Passwords:   c.PasswordSvc,
		Tokens:      c.TokenSvc,
		Revocations: c.Revocations,
		Notifier:    c.NotificationSvc,
		Images:      c.ImageHost,
		Processor:   c.ImageProcessor,
		Audit:       c.AuditLogger,
	}, services.UserOptions{
		PublicBaseURL:       c.Config.PublicBaseURL,
		AllowRoleOnRegister: c.Config.AllowRoleOnRegister,
	})
	c.ContactSvc = services.NewContactService(c.ContactRepo)

	if c.Config.AdminUsername != "" {
		admin, err := c.UserSvc.EnsureAdmin(ctx, c.Config.AdminUsername, c.Config.AdminPassword)
		if err != nil {
			return fmt.Errorf("failed to bootstrap admin: %w", err)
		}
		c.Logger.WithField("user_id", admin.ID).Info("bootstrap admin ready")
	}

	return nil
}

// Router builds the HTTP router over the container's services
func (c *Container) Router() *gin.Engine {
	h := httpx.Handlers{
		Auth: handlers.NewAuthHandlers(c.AuthSvc),
		Users: handlers.NewUserHandlers(c.UserSvc, handlers.UserHandlerOptions{
			ExposeTokens: c.Config.ExposeTokens,
		}),
		Contacts: handlers.NewContactHandlers(c.ContactSvc),
		Admin:    handlers.NewAdminHandlers(c.UserSvc, c.PolicySvc),
	}
	return httpx.BuildRouter(h,
		middleware.NewAuthMW(c.AuthSvc),
		middleware.NewCasbinMW(c.PolicySvc, c.AuditLogger),
		httpx.RouterOptions{CORSOrigins: c.Config.CORSOrigins, Logger: c.Logger},
	)
}

// Close closes the connections the container opened
func (c *Container) Close() error {
	if c.RedisClient != nil && c.ownsRedis {
		c.RedisClient.Close()
	}

	if c.DB != nil && c.ownsDB {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
