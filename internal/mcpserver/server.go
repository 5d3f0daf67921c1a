// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Skillet tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mbracken/skillet/internal/index"
	"github.com/mbracken/skillet/internal/planservice"
)

// Server wraps the MCP server with Skillet tools.
type Server struct {
	mcp *server.MCPServer
	svc *planservice.Service
	db  *index.DB
}

// New creates a new MCP server with all Skillet tools registered.
func New(svc *planservice.Service, db *index.DB) *Server {
	s := &Server{svc: svc, db: db}

	s.mcp = server.NewMCPServer(
		"Skillet",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("add_meal",
		mcp.WithDescription("Schedule a meal on a day of the current week in the meal plan. "+
			"The plan note and the current week section are created when absent. "+
			"Read the skillet://plan-format resource or the get_plan_contract tool "+
			"to learn how plan notes are laid out."),
		mcp.WithString("day", mcp.Required(), mcp.Description("Day of week (e.g. Wednesday)")),
		mcp.WithString("name", mcp.Required(), mcp.Description("Meal or recipe name; recipe names become [[wikilinks]]")),
	), s.addMeal)

	s.mcp.AddTool(mcp.NewTool("get_calendar",
		mcp.WithDescription("Get the calendar grid of scheduled meals for a month."),
		mcp.WithString("month", mcp.Description("Display month as YYYY-MM (empty for current)")),
	), s.getCalendar)

	s.mcp.AddTool(mcp.NewTool("generate_shopping_list",
		mcp.WithDescription("Aggregate the ingredients of the recipes scheduled in the given plan "+
			"weeks into a shopping checklist, write it to the shopping note, and return it."),
		mcp.WithString("weeks", mcp.Description("Comma-separated week labels (e.g. \"January 8th\"); empty for all current and future weeks")),
	), s.generateShoppingList)

	s.mcp.AddTool(mcp.NewTool("list_recipes",
		mcp.WithDescription("List the recipes in the vault's recipe catalog."),
		mcp.WithString("tag", mcp.Description("Optional tag to filter by")),
	), s.listRecipes)

	s.mcp.AddTool(mcp.NewTool("search_recipes",
		mcp.WithDescription("Full-text search through recipe titles and bodies."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchRecipes)

	s.mcp.AddTool(mcp.NewTool("read_note",
		mcp.WithDescription("Read the full content of a vault note (plan, recipe, or shopping list)."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the note (e.g. Recipes/Pasta Carbonara.md)")),
	), s.readNote)

	s.mcp.AddTool(mcp.NewTool("get_plan_contract",
		mcp.WithDescription("Returns the canonical meal-plan note format contract. "+
			"Call this before editing plan notes directly to ensure correct structure."),
	), s.getPlanContract)

	// Resource: plan format contract.
	s.mcp.AddResource(
		mcp.NewResource("skillet://plan-format", "Meal Plan Format Contract",
			mcp.WithResourceDescription("Canonical meal-plan note layouts (list and table) that Skillet understands."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readPlanFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) addMeal(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	day, err := req.RequireString("day")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.svc.AddMeal(ctx, day, name); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("scheduled: %s on %s", name, day)), nil
}

func (s *Server) getCalendar(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref := time.Now()
	if month, err := req.RequireString("month"); err == nil && month != "" {
		parsed, perr := time.Parse("2006-01", month)
		if perr != nil {
			return mcp.NewToolResultError("month must be formatted as YYYY-MM"), nil
		}
		ref = parsed
	}
	cal, err := s.svc.Calendar(ctx, ref)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(cal, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) generateShoppingList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var labels []string
	if raw, err := req.RequireString("weeks"); err == nil && strings.TrimSpace(raw) != "" {
		for _, l := range strings.Split(raw, ",") {
			if l = strings.TrimSpace(l); l != "" {
				labels = append(labels, l)
			}
		}
	}
	content, lineErrs, err := s.svc.ShoppingList(ctx, labels)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(lineErrs) > 0 {
		var b strings.Builder
		b.WriteString(content)
		b.WriteString("\n<!-- unparsed ingredient lines -->\n")
		for _, le := range lineErrs {
			b.WriteString("<!-- " + le.Error() + " -->\n")
		}
		return mcp.NewToolResultText(b.String()), nil
	}
	return mcp.NewToolResultText(content), nil
}

func (s *Server) listRecipes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tag := ""
	if v, err := req.RequireString("tag"); err == nil {
		tag = v
	}
	rows, _, err := s.db.ListRecipes(500, 0, tag)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var lines []string
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%s\t%s", r.Path, r.Title))
	}
	if len(lines) == 0 {
		return mcp.NewToolResultText("no recipes found"), nil
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) searchRecipes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.db.Search(query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := s.svc.ReadNote(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", path)), nil
	}
	return mcp.NewToolResultText(content), nil
}

func (s *Server) getPlanContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(PlanFormatContract), nil
}

func (s *Server) readPlanFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "skillet://plan-format",
			MIMEType: "text/markdown",
			Text:     PlanFormatContract,
		},
	}, nil
}
