// ABOUTME: MCP server implementation for fictrack
// ABOUTME: Provides tools, resources, and prompts for AI agents to work with tracked story metrics

package mcp

import (
	"github.com/harper/fictrack/internal/config"
	"github.com/harper/fictrack/internal/fetch"
	"github.com/harper/fictrack/internal/scrape"
	"github.com/harper/fictrack/internal/storage"
	"github.com/mark3labs/mcp-go/server"
)

// Server wraps the MCP server with fictrack-specific context
type Server struct {
	mcpServer *server.MCPServer
	store     storage.Store
	cfg       *config.Config
}

// NewServer creates a new MCP server instance
func NewServer(store storage.Store, cfg *config.Config) *Server {
	if cfg == nil {
		cfg = &config.Config{}
	}
	s := &Server{
		store: store,
		cfg:   cfg,
	}

	s.mcpServer = server.NewMCPServer(
		"fictrack",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithPromptCapabilities(true),
	)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

// ServeStdio starts the MCP server on stdio
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) baseURL() string {
	if s.cfg.BaseURL != "" {
		return s.cfg.BaseURL
	}
	return scrape.DefaultBaseURL
}

func (s *Server) newFetcher() *fetch.Fetcher {
	return fetch.NewWithOptions(s.cfg.FetchOptions())
}

// registerTools is implemented in tools.go
// registerResources is implemented in resources.go
// registerPrompts is implemented in prompts.go
