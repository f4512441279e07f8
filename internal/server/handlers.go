package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"irview/internal/explain"
	"irview/internal/ir"
	"irview/internal/segment"
	"irview/internal/store"
)

// ErrorResponse is the uniform error body for all endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// DefaultContextRadius is the context window used when a request does
// not specify one.
const DefaultContextRadius = 3

type segmentRequest struct {
	Text string `json:"text"`
}

type segmentResponse struct {
	Passes []ir.Pass `json:"passes"`
}

type parseRequest struct {
	Text string `json:"text"`
}

type contextRequest struct {
	Text   string `json:"text"`
	Line   int    `json:"line"`
	Radius int    `json:"radius"`
}

type contextResponse struct {
	Lines []string `json:"lines"`
}

type saveDumpRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type explainNodeRequest struct {
	Text   string `json:"text"`
	NodeID string `json:"node_id"`
	Radius int    `json:"radius"`
}

type explainPassRequest struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

type explainResponse struct {
	Explanation string `json:"explanation"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleSegment(c *gin.Context) {
	var req segmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: "INVALID_REQUEST"})
		return
	}
	c.JSON(http.StatusOK, segmentResponse{Passes: segment.Split(req.Text)})
}

func (s *Server) handleParse(c *gin.Context) {
	var req parseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: "INVALID_REQUEST"})
		return
	}
	c.JSON(http.StatusOK, s.cache.Build(req.Text))
}

func (s *Server) handleContext(c *gin.Context) {
	var req contextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: "INVALID_REQUEST"})
		return
	}
	if req.Radius == 0 {
		req.Radius = DefaultContextRadius
	}
	g := s.cache.Build(req.Text)
	lines := g.Context(req.Line, req.Radius)
	if lines == nil {
		lines = []string{}
	}
	c.JSON(http.StatusOK, contextResponse{Lines: lines})
}

func (s *Server) handleSaveDump(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "dump storage not configured", Code: "STORE_DISABLED"})
		return
	}
	var req saveDumpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: "INVALID_REQUEST"})
		return
	}
	d, err := s.store.SaveDump(c.Request.Context(), req.Title, req.Content)
	if err != nil {
		slog.Error("save dump failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not save dump", Code: "STORE_ERROR"})
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (s *Server) handleListDumps(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "dump storage not configured", Code: "STORE_DISABLED"})
		return
	}
	summaries, err := s.store.ListDumps(c.Request.Context())
	if err != nil {
		slog.Error("list dumps failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not list dumps", Code: "STORE_ERROR"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"dumps": summaries})
}

func (s *Server) handleGetDump(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "dump storage not configured", Code: "STORE_DISABLED"})
		return
	}
	d, err := s.store.GetDump(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "dump not found", Code: "NOT_FOUND"})
			return
		}
		slog.Error("get dump failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not load dump", Code: "STORE_ERROR"})
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) handleDeleteDump(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "dump storage not configured", Code: "STORE_DISABLED"})
		return
	}
	if err := s.store.DeleteDump(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "dump not found", Code: "NOT_FOUND"})
			return
		}
		slog.Error("delete dump failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not delete dump", Code: "STORE_ERROR"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleExplainNode(c *gin.Context) {
	var req explainNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: "INVALID_REQUEST"})
		return
	}
	if req.NodeID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "node_id is required", Code: "INVALID_REQUEST"})
		return
	}
	if req.Radius == 0 {
		req.Radius = DefaultContextRadius
	}

	g := s.cache.Build(req.Text)
	node := g.Node(req.NodeID)
	if node == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "node not found: " + req.NodeID, Code: "NOT_FOUND"})
		return
	}

	text, err := s.explainer.ExplainNode(c.Request.Context(), node, g.Context(node.SourceLine, req.Radius))
	if err != nil {
		slog.Warn("node explanation failed", "node", req.NodeID, "error", err)
		text = explain.Placeholder
	}
	c.JSON(http.StatusOK, explainResponse{Explanation: text})
}

func (s *Server) handleExplainPass(c *gin.Context) {
	var req explainPassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: "INVALID_REQUEST"})
		return
	}

	text, err := s.explainer.ExplainPass(c.Request.Context(), req.Name, req.Text)
	if err != nil {
		slog.Warn("pass explanation failed", "pass", req.Name, "error", err)
		text = explain.Placeholder
	}
	c.JSON(http.StatusOK, explainResponse{Explanation: text})
}
