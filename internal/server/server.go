package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agenthands/folio/internal/chat"
	"github.com/agenthands/folio/internal/geo"
	"github.com/agenthands/folio/internal/metrics"
	"github.com/agenthands/folio/internal/navigation"
	"github.com/agenthands/folio/internal/portfolio"
	"github.com/agenthands/folio/internal/skills"
)

// FallbackAnswer is sent with status 200 when the chat backend fails.
const FallbackAnswer = "I'm sorry, I'm currently experiencing technical difficulties. Please try again in a moment."

type Portfolio interface {
	Profile() (*portfolio.Profile, error)
	Projects() (*portfolio.Projects, error)
}

type Server struct {
	Portfolio Portfolio
	Skills    skills.Source
	Chat      chat.Backend
	// Map is nil when no GeoJSON outline is configured.
	Map     *geo.Projection
	Metrics *metrics.Collector
	Logger  *zap.Logger
}

func (s *Server) SetupRouter() *gin.Engine {
	if s.Logger == nil {
		s.Logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.Logger))
	if s.Metrics != nil {
		r.Use(instrument(s.Metrics))
		r.GET("/metrics", gin.WrapH(s.Metrics.Handler()))
	}

	r.GET("/healthz", s.Health)

	api := r.Group("/api")
	api.GET("/profile", s.Profile)
	api.GET("/projects", s.Projects)
	api.GET("/skills-graph", s.SkillsGraph)
	api.GET("/locations", s.Locations)
	api.GET("/map", s.MapOutline)
	api.POST("/navigate", s.Navigate)
	api.POST("/chat", s.ChatMessage)

	return r
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) Profile(c *gin.Context) {
	p, err := s.Portfolio.Profile()
	if err != nil {
		s.Logger.Error("failed to read profile", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Profile unavailable"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) Projects(c *gin.Context) {
	p, err := s.Portfolio.Projects()
	if err != nil {
		s.Logger.Error("failed to read projects", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Projects unavailable"})
		return
	}
	if c.Query("featured") == "true" {
		c.JSON(http.StatusOK, portfolio.Projects{Projects: p.Featured()})
		return
	}
	c.JSON(http.StatusOK, p)
}

type SkillsGraphResponse struct {
	Nodes     []skills.Node   `json:"nodes"`
	Edges     []skills.Edge   `json:"edges"`
	Collapsed map[string]bool `json:"collapsed"`
}

// SkillsGraph returns the graph with visibility computed from the collapsed
// categories in ?collapsed=a,b and the search term in ?q=.
func (s *Server) SkillsGraph(c *gin.Context) {
	g, err := s.Skills.Load(c.Request.Context())
	if err != nil {
		s.Logger.Error("failed to load skills graph", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Skills graph unavailable"})
		return
	}

	state := skills.NewStateFromGraph(g)
	seen := make(map[string]bool)
	for _, id := range strings.Split(c.Query("collapsed"), ",") {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		state.ToggleCategory(id)
	}
	if q := c.Query("q"); q != "" {
		state.FilterNodes(q)
	}

	out := state.Graph()
	c.JSON(http.StatusOK, SkillsGraphResponse{
		Nodes:     out.Nodes,
		Edges:     out.Edges,
		Collapsed: state.Collapsed(),
	})
}

func (s *Server) Locations(c *gin.Context) {
	p, err := s.Portfolio.Profile()
	if err != nil {
		s.Logger.Error("failed to read profile", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Profile unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"locations": portfolio.Locations(p, s.Map)})
}

func (s *Server) MapOutline(c *gin.Context) {
	if s.Map == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Map not configured"})
		return
	}
	c.JSON(http.StatusOK, s.Map)
}

type NavigateRequest struct {
	Query string `json:"query" binding:"required"`
}

func (s *Server) Navigate(c *gin.Context) {
	var req NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	section, ok := navigation.MapQueryToSection(req.Query)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"section": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"section": section})
}

// ChatMessage answers a chat request. A backend failure still answers 200
// with FallbackAnswer so the widget has something to show.
func (s *Server) ChatMessage(c *gin.Context) {
	var req chat.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	resp, err := s.Chat.Chat(c.Request.Context(), req)
	if err != nil {
		s.Logger.Error("chat backend failed", zap.String("session_id", req.SessionID), zap.Error(err))
		s.countChat(metrics.ChatFailed)
		c.JSON(http.StatusOK, chat.Response{
			Answer:  FallbackAnswer,
			Sources: []chat.Source{},
		})
		return
	}

	if resp.Blocked {
		s.countChat(metrics.ChatBlocked)
	} else {
		s.countChat(metrics.ChatAnswered)
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) countChat(outcome string) {
	if s.Metrics != nil {
		s.Metrics.ChatOutcomes.WithLabelValues(outcome).Inc()
	}
}
