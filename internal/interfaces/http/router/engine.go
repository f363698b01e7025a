package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/society/backend/internal/infrastructure/auth"
	"github.com/society/backend/internal/infrastructure/config"
	"github.com/society/backend/internal/infrastructure/logger"
	"github.com/society/backend/internal/interfaces/http/dto"
	"github.com/society/backend/internal/interfaces/http/handler"
	"github.com/society/backend/internal/interfaces/http/middleware"
)

// ProvisionMemberPath is where the provisioning function is served
const ProvisionMemberPath = "/functions/v1/provision-member"

// Handlers are the HTTP handlers mounted by NewEngine
type Handlers struct {
	Provisioning *handler.ProvisioningHandler
	Documents    *handler.DocumentHandler
	System       *handler.SystemHandler
}

// Dependencies is everything NewEngine needs besides the handlers
type Dependencies struct {
	Config     *config.Config
	Logger     *zap.Logger
	JWTService *auth.JWTService
}

// NewEngine builds the gin engine with the middleware stack and all routes.
//
// Middleware order: request id, panic recovery, access log, security
// headers, tracing, CORS, body limit. The provisioning function sets its own
// CORS headers and answers its own preflight, so the shared CORS policy skips
// it and it is mounted on the engine root with optional authentication. Everything under /api/v1 except the
// system info endpoint requires a valid bearer token.
func NewEngine(deps Dependencies, h Handlers) *gin.Engine {
	cfg := deps.Config
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	jwtService := deps.JWTService
	if jwtService == nil {
		jwtService = auth.NewJWTService(cfg.JWT)
	}

	middleware.SetupValidator()
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure(cfg.App.Env == "production"))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.TracingAttributeInjector(), middleware.SpanErrorMarker())
	engine.Use(exceptPath(ProvisionMemberPath, middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.HTTP.CORSAllowOrigins,
		AllowMethods:  cfg.HTTP.CORSAllowMethods,
		AllowHeaders:  cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	})))
	if cfg.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimitWithConfig(middleware.BodyLimitConfig{
			MaxBytes: cfg.HTTP.MaxBodySize,
			Reject:   rejectOversize,
		}))
	}

	if h.System != nil {
		engine.GET("/health", h.System.Health)
	}

	swagger := engine.Group("/swagger", middleware.SwaggerProtection(middleware.SwaggerConfig{
		Enabled:    cfg.Swagger.Enabled,
		AllowedIPs: cfg.Swagger.AllowedIPs,
	}))
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if h.Provisioning != nil {
		engine.Any(ProvisionMemberPath, middleware.OptionalJWTAuthMiddleware(jwtService), h.Provisioning.Handle)
	}

	r := NewRouter(engine, WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths:  []string{"/api/v1/system/info"},
		Logger:     log,
	}))

	if h.Documents != nil {
		onboardingRoutes := NewDomainGroup("onboarding", "/onboarding")
		onboardingRoutes.POST("/documents/upload-url", h.Documents.CreateUploadURL)
		r.Register(onboardingRoutes)
	}
	if h.System != nil {
		systemRoutes := NewDomainGroup("system", "/system")
		systemRoutes.GET("/info", h.System.GetSystemInfo)
		r.Register(systemRoutes)
	}
	r.Setup()

	return engine
}

// exceptPath runs mw on every request except those for path
func exceptPath(path string, mw gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == path {
			c.Next()
			return
		}
		mw(c)
	}
}

// rejectOversize answers 413 in the body shape of the route being called
func rejectOversize(c *gin.Context) {
	if c.Request.URL.Path == ProvisionMemberPath {
		c.JSON(http.StatusRequestEntityTooLarge, dto.FunctionError{Error: "Request body too large"})
		return
	}
	c.JSON(http.StatusRequestEntityTooLarge,
		dto.NewErrorResponse(dto.ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size"))
}
