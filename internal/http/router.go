package httpx

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/you/contactsvc/internal/http/handlers"
	"github.com/you/contactsvc/internal/http/middleware"
)

// Handlers groups everything the router mounts
type Handlers struct {
	Auth     *handlers.AuthHandlers
	Users    *handlers.UserHandlers
	Contacts *handlers.ContactHandlers
	Admin    *handlers.AdminHandlers
}

// RouterOptions configures cross-cutting middleware
type RouterOptions struct {
	CORSOrigins []string
	Logger      *log.Logger
}

func BuildRouter(h Handlers, authmw *middleware.AuthMW, cb *middleware.CasbinMW, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.ClientContext(), middleware.Metrics())
	if opts.Logger != nil {
		r.Use(middleware.RequestLogger(opts.Logger))
	}
	if len(opts.CORSOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = opts.CORSOrigins
		corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
		r.Use(cors.New(corsCfg))
	}

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/token", h.Auth.Login)
	r.POST("/refresh", h.Auth.Refresh)
	r.POST("/logout", h.Auth.Logout)

	r.POST("/users", h.Users.Register)
	r.GET("/verify-email/:token", h.Users.VerifyEmail)
	r.POST("/users/request-password-reset", h.Users.RequestPasswordReset)
	r.POST("/users/reset-password", h.Users.ResetPassword)

	authed := r.Group("/", authmw.RequireUser())
	authed.GET("/me", h.Users.Me)

	gated := r.Group("/", authmw.RequireUser(), cb.Enforce())
	gated.POST("/users/avatar", h.Users.UploadAvatar)

	contacts := r.Group("/contacts", authmw.RequireUser())
	contacts.POST("/", h.Contacts.Create)
	contacts.GET("/", h.Contacts.List)
	contacts.GET("/search/", h.Contacts.Search)
	contacts.GET("/upcoming_birthdays/", h.Contacts.UpcomingBirthdays)
	contacts.GET("/:id", h.Contacts.Get)
	contacts.PUT("/:id", h.Contacts.Update)
	contacts.DELETE("/:id", h.Contacts.Delete)

	adm := r.Group("/admin", authmw.RequireUser(), cb.Enforce())
	adm.DELETE("/users/:id", h.Admin.DeleteUser)
	adm.GET("/policies", h.Admin.ListPolicies)
	adm.POST("/policies", h.Admin.AddPolicy)
	adm.DELETE("/policies", h.Admin.RemovePolicy)

	return r
}
