package http

import (
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/corpoativo/gymapi/internal/auth"
	"github.com/corpoativo/gymapi/internal/config"
	"github.com/corpoativo/gymapi/internal/domain/user"
	"github.com/corpoativo/gymapi/internal/http/handlers"
	"github.com/corpoativo/gymapi/internal/http/middlewares"
	"github.com/corpoativo/gymapi/internal/observability"
	"github.com/corpoativo/gymapi/internal/repo"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const maxBodyBytes = 1 << 20 // 1MB, same cap the frontend ever needs

func NewRouter(cfg config.Config, log *slog.Logger, store repo.Store, prom *observability.Prom) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(maxBodyBytes))
	r.Use(middlewares.RequireJSON())

	if prom != nil {
		r.Use(prom.GinHandleMiddleware())
	}

	if cfg.TracingEnabled {
		r.Use(otelgin.Middleware("gymapi"))
	}

	tokens := auth.NewManager()
	authmw := middlewares.NewAuthMiddleware(store.Sessions(), tokens)

	// every route sees the session if one is present; gates come later
	r.Use(authmw.ResolveSession())

	// health
	ping := func() error {
		ctx, cancel := config.WithTimeout(1 * time.Second)
		defer cancel()

		return store.Ping(ctx)
	}

	health := handlers.NewHealthHandler(ping)
	r.GET("/healthz", health.Healthz)
	r.GET("/readyz", health.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// wire up handlers
	publicHandler := handlers.NewPublicHandler(store.Plans(), store.Coaches(), store.Schedules(), store.Leads())
	authHandler := handlers.NewAuthHandler(store.Users(), store.Sessions(), tokens)
	dashboardHandler := handlers.NewDashboardHandler(store, prom)
	plansHandler := handlers.NewPlansHandler(store.Plans())
	coachesHandler := handlers.NewCoachesHandler(store.Coaches())
	schedulesHandler := handlers.NewSchedulesHandler(store.Schedules())
	leadsHandler := handlers.NewLeadsHandler(store.Leads())
	studentsHandler := handlers.NewStudentsHandler(store.Students(), store.Users())
	usersHandler := handlers.NewUsersHandler(store.Users())

	// public marketing surface
	r.GET("/api/public-data", publicHandler.GetPublicData)
	r.POST("/api/leads", publicHandler.CreateLead)

	// credential endpoints get an IP limiter to slow brute force
	loginLimiter := middlewares.NewRateLimiter(10, time.Minute)

	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", loginLimiter.RateLimiterMiddleware(middlewares.KeyByIP), authHandler.Register)
		authGroup.POST("/login", loginLimiter.RateLimiterMiddleware(middlewares.KeyByIP), authHandler.Login)
		authGroup.POST("/logout", authHandler.Logout)
		authGroup.GET("/me", authmw.RequireUser(), authHandler.Me)
		authGroup.PUT("/account", authmw.RequireUser(), authHandler.UpdateAccount)
	}

	admin := r.Group("/api/admin", authmw.RequireRoles(user.RoleStaff, user.RoleOwner))
	{
		admin.GET("/dashboard", dashboardHandler.Get)

		admin.POST("/plans", plansHandler.Create)
		admin.PUT("/plans/:id", plansHandler.Update)
		admin.DELETE("/plans/:id", plansHandler.Delete)

		admin.POST("/coaches", coachesHandler.Create)
		admin.PUT("/coaches/:id", coachesHandler.Update)
		admin.DELETE("/coaches/:id", coachesHandler.Delete)

		admin.POST("/schedules", schedulesHandler.Create)
		admin.PUT("/schedules/:id", schedulesHandler.Update)
		admin.DELETE("/schedules/:id", schedulesHandler.Delete)

		admin.DELETE("/leads/:id", leadsHandler.Delete)

		admin.POST("/students", studentsHandler.Create)
		admin.PUT("/students/:id", studentsHandler.Update)
		admin.DELETE("/students/:id", authmw.RequireRoles(user.RoleOwner), studentsHandler.Delete)

		admin.PUT("/users/:id/role", authmw.RequireRoles(user.RoleOwner), usersHandler.UpdateRole)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(nethttp.StatusNotFound, gin.H{"error": "Rota de API não encontrada."})
	})

	return r
}
