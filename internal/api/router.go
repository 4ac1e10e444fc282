package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hashdoctor/telehealth-api/internal/api/handler"
	"github.com/hashdoctor/telehealth-api/internal/api/middleware"
	"github.com/hashdoctor/telehealth-api/internal/core/ports"
)

// Deps bundles everything the router needs. Services are constructed in
// main so the triage dispatcher's lifecycle stays under its control.
type Deps struct {
	DB        *mongo.Database
	Redis     *redis.Client
	JWTSecret string
	Logger    zerolog.Logger

	Auth      ports.AuthService
	Directory ports.DirectoryService
	Wallet    ports.WalletService
	Chat      ports.ChatService
	Calls     ports.CallService
	Insights  ports.InsightService
	Snapshots ports.SnapshotService
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("hashdoctor"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	userHandler := handler.NewUserHandler(d.Directory)
	walletHandler := handler.NewWalletHandler(d.Wallet)
	chatHandler := handler.NewChatHandler(d.Chat)
	callHandler := handler.NewCallHandler(d.Calls)
	insightHandler := handler.NewInsightHandler(d.Insights)
	snapshotHandler := handler.NewSnapshotHandler(d.Snapshots, d.Directory)

	// --- Public routes ---
	e.POST("/auth/login", authHandler.Login)

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.DB, d.Redis)
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Authenticated API ---
	auth := middleware.Auth(d.JWTSecret)
	v1 := e.Group("/v1", auth)

	v1.GET("/users", userHandler.List, middleware.AdminOnly())
	v1.GET("/users/:id", userHandler.Get)
	v1.PATCH("/users/:id", userHandler.Update)
	v1.POST("/users/:id/freeze", userHandler.Freeze, middleware.AdminOnly())
	v1.GET("/users/:id/transactions", userHandler.Transactions)
	v1.GET("/doctors", userHandler.ListDoctors)
	v1.POST("/patients/:id/diagnoses", userHandler.AddDiagnosis, middleware.ClinicalOnly())
	v1.POST("/presence/heartbeat", userHandler.Heartbeat)

	v1.POST("/payments", walletHandler.Pay)
	v1.POST("/wallet/deposit", walletHandler.Deposit)
	v1.POST("/wallet/bonus", walletHandler.ActivateBonus)
	v1.GET("/sessions/:doctorID", walletHandler.SessionCheck)

	v1.GET("/chats/:peerID", chatHandler.Thread)
	v1.POST("/chats/:peerID", chatHandler.Send)
	v1.POST("/chats/:peerID/transcript", chatHandler.SaveTranscript)

	v1.POST("/calls", callHandler.Initiate)
	v1.POST("/calls/accept", callHandler.Accept)
	v1.POST("/calls/end", callHandler.End)
	v1.GET("/calls/active", callHandler.Active)

	v1.POST("/sos", callHandler.InitiateSOS)
	v1.POST("/sos/respond", callHandler.RespondSOS, middleware.ClinicalOnly())
	v1.GET("/sos/pending", callHandler.PendingSOS)
	v1.POST("/sos/false-alarm", walletHandler.FalseSOS, middleware.ClinicalOnly())

	v1.GET("/insights", insightHandler.HealthInsights)
	v1.GET("/feed", insightHandler.Feed)

	v1.GET("/snapshot", snapshotHandler.Export, middleware.AdminOnly())
	v1.POST("/snapshot", snapshotHandler.Import, middleware.AdminOnly())
	v1.DELETE("/snapshot", snapshotHandler.Reset, middleware.AdminOnly())

	return e
}
