package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prepmate/interview-server/internal/api/rest/handler"
	"github.com/prepmate/interview-server/internal/api/rest/middleware"
	"github.com/prepmate/interview-server/internal/logger"
	"github.com/prepmate/interview-server/internal/model"
)

// Router wires services, middleware and routes into a gin engine.
type Router struct {
	interviewService handler.InterviewService
	streakService    handler.StreakService
	resumeService    handler.ResumeService
	tokenService     middleware.TokenService
	contextManager   model.ContextManager
	logger           *logger.Logger
}

// New creates new Router instance.
func New(
	interviewService handler.InterviewService,
	streakService handler.StreakService,
	resumeService handler.ResumeService,
	tokenService middleware.TokenService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		interviewService: interviewService,
		streakService:    streakService,
		resumeService:    resumeService,
		tokenService:     tokenService,
		contextManager:   contextManager,
		logger:           logger,
	}
}

// Register sets up middleware and all routes and returns the engine.
// Everything under /api requires a bearer token; /healthz is open.
func (r *Router) Register() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenService, r.contextManager, r.logger)
	engine.Use(logging.Handle)

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	api.Use(authenticate.Handle)

	interviewHandler := handler.NewInterview(r.interviewService, r.contextManager, r.logger)
	api.POST("/interviews", interviewHandler.Start)
	api.GET("/interviews", interviewHandler.List)
	api.GET("/interviews/:id", interviewHandler.Get)
	api.PATCH("/interviews/:id", interviewHandler.Continue)
	api.PATCH("/interviews/:id/end", interviewHandler.End)
	api.DELETE("/interviews/:id", interviewHandler.Delete)

	streakHandler := handler.NewStreak(r.streakService, r.contextManager, r.logger)
	api.GET("/streak", streakHandler.Get)
	api.POST("/streak", streakHandler.Record)

	resumeHandler := handler.NewResume(r.resumeService, r.contextManager, r.logger)
	api.POST("/resume", resumeHandler.Upload)
	api.GET("/resume", resumeHandler.Download)
	api.DELETE("/resume", resumeHandler.Delete)

	return engine
}
