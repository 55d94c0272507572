package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool definitions for the Recetario MCP surface.

var addToolDef = mcp.NewTool("recipe_add",
	mcp.WithDescription("Save a recipe post by URL. Extracts metadata from the post; re-adding the same URL updates the stored recipe in place."),
	mcp.WithString("url", mcp.Required(), mcp.Description("URL of the post to save")),
	mcp.WithString("title", mcp.Description("Optional title; derived from the post caption when omitted")),
	mcp.WithString("folder", mcp.Description("Optional folder; defaults to General")),
)

var fetchToolDef = mcp.NewTool("recipe_fetch",
	mcp.WithDescription("Fetch a single recipe by its numeric id."),
	mcp.WithNumber("id", mcp.Required(), mcp.Description("Recipe id")),
)

var listToolDef = mcp.NewTool("recipe_list",
	mcp.WithDescription("List recipes, newest first, in pages of 21."),
	mcp.WithNumber("page", mcp.Description("1-based page number (default 1)")),
	mcp.WithString("folder", mcp.Description("Restrict to one folder")),
)

var searchToolDef = mcp.NewTool("recipe_search",
	mcp.WithDescription("Search recipes by title, author, or caption (case-insensitive substring)."),
	mcp.WithString("query", mcp.Required(), mcp.Description("Search text; must not be blank")),
	mcp.WithNumber("page", mcp.Description("1-based page number (default 1)")),
	mcp.WithString("folder", mcp.Description("Restrict to one folder")),
)

var deleteToolDef = mcp.NewTool("recipe_delete",
	mcp.WithDescription("Delete a recipe and its stored media. Deleting an unknown id reports deleted=false."),
	mcp.WithNumber("id", mcp.Required(), mcp.Description("Recipe id")),
)

var moveToolDef = mcp.NewTool("recipe_move",
	mcp.WithDescription("Move a recipe to a folder, creating the folder if it does not exist."),
	mcp.WithNumber("id", mcp.Required(), mcp.Description("Recipe id")),
	mcp.WithString("folder", mcp.Required(), mcp.Description("Target folder name")),
)

var folderListToolDef = mcp.NewTool("folder_list",
	mcp.WithDescription("List all folder names, ordered case-insensitively."),
)

var folderCreateToolDef = mcp.NewTool("folder_create",
	mcp.WithDescription("Create a folder. Creating an existing folder (any case) returns the existing one."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Folder name")),
)

var folderDeleteToolDef = mcp.NewTool("folder_delete",
	mcp.WithDescription("Delete a folder; its recipes are reassigned to the Other folder. Deleting an unknown folder is a no-op."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Folder name")),
)

var folderReconcileToolDef = mcp.NewTool("folder_reconcile",
	mcp.WithDescription("Create folder rows for any folder labels referenced by recipes but missing from the folders table."),
)
