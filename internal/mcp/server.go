// Package mcp exposes the flashcard collection as MCP tools over stdio.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hpungsan/flashdeck/internal/config"
	"github.com/hpungsan/flashdeck/internal/store"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"flashcard_list": {
		def:     listToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleList },
	},
	"flashcard_subjects": {
		def:     subjectsToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSubjects },
	},
	"flashcard_groups": {
		def:     groupsToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleGroups },
	},
	"flashcard_create": {
		def:     createToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCreate },
	},
	"flashcard_delete": {
		def:     deleteToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleDelete },
	},
	"flashcard_delete_all": {
		def:     deleteAllToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleDeleteAll },
	},
	"flashcard_export": {
		def:     exportToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleExport },
	},
	"flashcard_import": {
		def:     importToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleImport },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with the flashcard tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(st *store.Store, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"flashdeck",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(st, cfg)

	disabled := make(map[string]bool, len(cfg.DisabledTools))
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(st *store.Store, cfg *config.Config, version string) error {
	return server.ServeStdio(NewServer(st, cfg, version))
}
