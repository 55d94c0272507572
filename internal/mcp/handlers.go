package mcp

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/matealv/recetario/internal/config"
	"github.com/matealv/recetario/internal/errors"
	"github.com/matealv/recetario/internal/media"
	"github.com/matealv/recetario/internal/ops"
	"github.com/matealv/recetario/internal/scrape"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db        *sql.DB
	cfg       *config.Config
	extractor scrape.Extractor
	store     *media.Store
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *sql.DB, cfg *config.Config, extractor scrape.Extractor, store *media.Store) *Handlers {
	return &Handlers{db: db, cfg: cfg, extractor: extractor, store: store}
}

// Request types for each tool

// AddRequest represents the arguments for recipe_add.
type AddRequest struct {
	URL    string `json:"url"`
	Title  string `json:"title,omitempty"`
	Folder string `json:"folder,omitempty"`
}

// FetchRequest represents the arguments for recipe_fetch.
type FetchRequest struct {
	ID int64 `json:"id"`
}

// ListRequest represents the arguments for recipe_list.
type ListRequest struct {
	Page   int     `json:"page,omitempty"`
	Folder *string `json:"folder,omitempty"`
}

// SearchRequest represents the arguments for recipe_search.
type SearchRequest struct {
	Query  string  `json:"query"`
	Page   int     `json:"page,omitempty"`
	Folder *string `json:"folder,omitempty"`
}

// DeleteRequest represents the arguments for recipe_delete.
type DeleteRequest struct {
	ID int64 `json:"id"`
}

// MoveRequest represents the arguments for recipe_move.
type MoveRequest struct {
	ID     int64  `json:"id"`
	Folder string `json:"folder"`
}

// FolderNameRequest represents the arguments for folder_create and
// folder_delete.
type FolderNameRequest struct {
	Name string `json:"name"`
}

// Handler implementations

// HandleAdd handles the recipe_add tool call.
func (h *Handlers) HandleAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AddRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Add(ctx, h.db, h.extractor, h.store, ops.AddInput{
		URL:    input.URL,
		Title:  input.Title,
		Folder: input.Folder,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleFetch handles the recipe_fetch tool call.
func (h *Handlers) HandleFetch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FetchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Fetch(h.db, input.ID)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleList handles the recipe_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.List(h.db, ops.ListInput{
		Page:   input.Page,
		Folder: input.Folder,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleSearch handles the recipe_search tool call.
func (h *Handlers) HandleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SearchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Search(h.db, ops.SearchInput{
		Query:  input.Query,
		Page:   input.Page,
		Folder: input.Folder,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDelete handles the recipe_delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Delete(h.db, h.store, input.ID)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleMove handles the recipe_move tool call.
func (h *Handlers) HandleMove(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[MoveRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Move(h.db, ops.MoveInput{
		ID:     input.ID,
		Folder: input.Folder,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleFolderList handles the folder_list tool call.
func (h *Handlers) HandleFolderList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Folders(h.db)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleFolderCreate handles the folder_create tool call.
func (h *Handlers) HandleFolderCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FolderNameRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.CreateFolder(h.db, input.Name)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleFolderDelete handles the folder_delete tool call.
func (h *Handlers) HandleFolderDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FolderNameRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.DeleteFolder(h.db, input.Name)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleFolderReconcile handles the folder_reconcile tool call.
func (h *Handlers) HandleFolderReconcile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Reconcile(h.db)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if appErr, ok := err.(*errors.AppError); ok {
		errorObj := map[string]any{
			"code":    appErr.Code,
			"message": appErr.Message,
			"status":  appErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if appErr.Code != errors.ErrInternal && appErr.Details != nil {
			errorObj["details"] = appErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
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
