package mcp

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/flashdeck/internal/config"
	"github.com/hpungsan/flashdeck/internal/errors"
	"github.com/hpungsan/flashdeck/internal/ops"
	"github.com/hpungsan/flashdeck/internal/store"
)

// Handlers holds dependencies for MCP tool handlers.
//
// The store is not safe for concurrent use; mu serializes tool calls.
type Handlers struct {
	mu  sync.Mutex
	st  *store.Store
	cfg *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(st *store.Store, cfg *config.Config) *Handlers {
	return &Handlers{st: st, cfg: cfg}
}

// Request types for each tool

// ListRequest represents the arguments for list.
type ListRequest struct {
	Subject string `json:"subject,omitempty"`
	Search  string `json:"search,omitempty"`
	Limit   int    `json:"limit,omitempty"`
	Offset  int    `json:"offset,omitempty"`
}

// CreateRequest represents the arguments for create.
type CreateRequest struct {
	Subject string `json:"subject"`
	Front   string `json:"front"`
	Back    string `json:"back"`
}

// DeleteRequest represents the arguments for delete.
type DeleteRequest struct {
	Position *int `json:"position"`
}

// DeleteAllRequest represents the arguments for delete_all.
type DeleteAllRequest struct {
	Confirm bool `json:"confirm"`
}

// ExportRequest represents the arguments for export.
type ExportRequest struct {
	Path   string `json:"path,omitempty"`
	Format string `json:"format,omitempty"`
}

// ImportRequest represents the arguments for import.
type ImportRequest struct {
	Path   string `json:"path"`
	Format string `json:"format,omitempty"`
	Mode   string `json:"mode,omitempty"`
}

// Handler implementations

// HandleList handles the list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	result, err := ops.List(h.st, ops.ListInput{
		Subject: input.Subject,
		Search:  input.Search,
		Limit:   input.Limit,
		Offset:  input.Offset,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleSubjects handles the subjects tool call.
func (h *Handlers) HandleSubjects(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	result, err := ops.Subjects(h.st)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleGroups handles the groups tool call.
func (h *Handlers) HandleGroups(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	result, err := ops.Groups(h.st)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleCreate handles the create tool call.
func (h *Handlers) HandleCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CreateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	result, err := ops.Create(h.st, ops.CreateInput{
		Subject: input.Subject,
		Front:   input.Front,
		Back:    input.Back,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDelete handles the delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.Position == nil {
		return errorResult(errors.NewInvalidRequest("position is required")), nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	result, err := ops.Delete(h.st, ops.DeleteInput{Position: *input.Position})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDeleteAll handles the delete_all tool call.
func (h *Handlers) HandleDeleteAll(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DeleteAllRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	result, err := ops.DeleteAll(h.st, ops.DeleteAllInput{Confirm: input.Confirm})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleExport handles the export tool call.
func (h *Handlers) HandleExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ExportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	result, err := ops.Export(h.st, h.cfg, ops.ExportInput{
		Path:   input.Path,
		Format: input.Format,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleImport handles the import tool call.
func (h *Handlers) HandleImport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ImportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	result, err := ops.Import(h.st, h.cfg, ops.ImportInput{
		Path:   input.Path,
		Format: input.Format,
		Mode:   ops.ImportMode(input.Mode),
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Internal error details are not exposed.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if dErr, ok := errors.As(err); ok && dErr.Code != errors.ErrInternal {
		errorObj := map[string]any{
			"code":    dErr.Code,
			"message": dErr.Message,
			"status":  dErr.Status,
		}
		if dErr.Details != nil {
			errorObj["details"] = dErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    errors.ErrInternal,
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
