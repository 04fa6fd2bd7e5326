package cockpit

import (
	"net/http"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"

	"github.com/colonyops/cockpit/internal/cockpit/handler/middleware"
	v1 "github.com/colonyops/cockpit/internal/cockpit/handler/v1"
	"github.com/colonyops/cockpit/internal/cockpit/service/assistant"
	"github.com/colonyops/cockpit/internal/pkg/options"
)

// routerDeps holds the dependencies needed for route registration.
type routerDeps struct {
	assistantModule *assistant.Module
	accessTokens    []options.AccessTokenConfig
}

func initRouter(g *gin.Engine, deps *routerDeps) {
	installMiddleware(g, deps)
	installController(g, deps)
}

func installMiddleware(g *gin.Engine, deps *routerDeps) {
	g.Use(gin.Recovery())
	g.Use(middleware.CORS())
	g.Use(middleware.TokenAuth(deps.accessTokens))
}

func installController(g *gin.Engine, deps *routerDeps) {
	g.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	pprof.Register(g)

	chatHandler := v1.NewChatHandler(deps.assistantModule.Orchestrator)

	apiV1 := g.Group("/v1")
	{
		apiV1.POST("/assistant/chat", chatHandler.Handle)
	}
}
