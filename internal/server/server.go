// internal/server/server.go
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"iate-log/internal/config"
	"iate-log/internal/logger"
	"iate-log/internal/service"
)

// Version is reported by /healthz, the MCP endpoint and the CLI.
const Version = "1.0.0"

type MealLogServer struct {
	svc        *service.Service
	hub        *Hub
	engine     *gin.Engine
	httpServer *http.Server
	tools      map[string]toolHandler
	info       protocol.Implementation
}

// NewMealLogServer wires the REST, MCP and websocket routes. hub should be
// the notifier the service was built with.
func NewMealLogServer(cfg config.HTTPConfig, svc *service.Service, hub *Hub) *MealLogServer {
	s := &MealLogServer{
		svc: svc,
		hub: hub,
		info: protocol.Implementation{
			Name:    "iate-log",
			Version: Version,
		},
	}
	s.tools = s.registerTools()

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:          12 * time.Hour,
	}))

	r.GET("/healthz", s.handleHealth)
	r.GET("/mcp", s.handleMCPInfo)
	r.POST("/mcp", s.handleMCP)

	api := r.Group("/api")
	api.GET("/meals", s.handleListMeals)
	api.POST("/meals", s.handleAddMeal)
	api.POST("/meals/photo", s.handleAddMealPhoto)
	api.DELETE("/meals/:id", s.handleDeleteMeal)
	api.DELETE("/meals", s.handleClearMeals)
	api.GET("/profile", s.handleGetProfile)
	api.PUT("/profile", s.handleSaveProfile)
	api.DELETE("/profile", s.handleResetProfile)
	api.GET("/summary/:period", s.handleSummary)
	api.GET("/ws", s.handleWS)

	s.engine = r
	s.httpServer = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *MealLogServer) Handler() http.Handler { return s.engine }

func (s *MealLogServer) Start(ctx context.Context) error {
	logger.Info("server.starting", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *MealLogServer) Stop(ctx context.Context) error {
	s.hub.Close()
	return s.httpServer.Shutdown(ctx)
}

func (s *MealLogServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "name": s.info.Name, "version": s.info.Version})
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("http.request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds())
	}
}

func (s *MealLogServer) createJSONResponse(data interface{}) (*protocol.CallToolResult, error) {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return &protocol.CallToolResult{
		Content: []protocol.Content{
			protocol.TextContent{
				Type: "text",
				Text: string(jsonBytes),
			},
		},
	}, nil
}
