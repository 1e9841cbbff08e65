package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"f2yaml/internal/application"
	"f2yaml/internal/application/commands"
	"f2yaml/internal/ports"
)

// RegisterReadTools adds the tools that never modify task files to the MCP
// server.
func RegisterReadTools(s *server.MCPServer, engine *application.Engine, store ports.SessionStore) {
	s.AddTool(parseLinkTool(), parseLinkHandler(engine))
	s.AddTool(resolveLinkTool(), resolveLinkHandler(engine))
	s.AddTool(isTaskTool(), isTaskHandler(engine))
	s.AddTool(nearestTaskTool(), nearestTaskHandler(engine))
	s.AddTool(idLinkTool(), idLinkHandler(engine))
	s.AddTool(linkAtTool(), linkAtHandler(engine))
	s.AddTool(csvLineTool(), csvLineHandler(engine))
	s.AddTool(statusTool(), statusHandler(store))
}

func linkArg(description string) mcp.ToolOption {
	return mcp.WithString("link",
		mcp.Description(description),
		mcp.Required(),
	)
}

// --- parse_link ---

func parseLinkTool() mcp.Tool {
	return mcp.NewTool("parse_link",
		mcp.WithDescription("Split an F2YAML link (-->folder//file.segment.segment<) into its segments without reading any file."),
		linkArg("The link to parse, including the --> and < markers"),
	)
}

func parseLinkHandler(engine *application.Engine) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewParseLinkCommand(engine, req.GetString("link", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- resolve_link ---

func resolveLinkTool() mcp.Tool {
	return mcp.NewTool("resolve_link",
		mcp.WithDescription("Resolve a link to the YAML file and line it points at. Returns path:line."),
		linkArg("The link to resolve"),
	)
}

func resolveLinkHandler(engine *application.Engine) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewFollowCommand(engine, req.GetString("link", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- is_task ---

func isTaskTool() mcp.Tool {
	return mcp.NewTool("is_task",
		mcp.WithDescription("Check whether a link addresses a task, i.e. a key carrying a status code such as TODO or DOING."),
		linkArg("The link to classify"),
	)
}

func isTaskHandler(engine *application.Engine) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewIsTaskCommand(engine, req.GetString("link", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- nearest_task ---

func nearestTaskTool() mcp.Tool {
	return mcp.NewTool("nearest_task",
		mcp.WithDescription("Find the task owning a link: the link itself when it is a task, otherwise its nearest enclosing task."),
		linkArg("The link to start from"),
	)
}

func nearestTaskHandler(engine *application.Engine) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewOwnerCommand(engine, req.GetString("link", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- id_link ---

func idLinkTool() mcp.Tool {
	return mcp.NewTool("id_link",
		mcp.WithDescription("Convert a summary link to its stable Id form, using each key's Id field when present."),
		linkArg("The summary link to convert"),
	)
}

func idLinkHandler(engine *application.Engine) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewIDLinkCommand(engine, req.GetString("link", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- link_at ---

func linkAtTool() mcp.Tool {
	return mcp.NewTool("link_at",
		mcp.WithDescription("Return the link at a cursor position: the link written under the column if any, otherwise the summary link of the key enclosing the line."),
		mcp.WithString("path",
			mcp.Description("Path of the YAML file"),
			mcp.Required(),
		),
		mcp.WithNumber("line",
			mcp.Description("1-based line number"),
			mcp.Required(),
		),
		mcp.WithNumber("column",
			mcp.Description("0-based column; omit to derive the summary link of the line"),
		),
	)
}

func linkAtHandler(engine *application.Engine) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewLinkAtCommand(engine,
			req.GetString("path", ""),
			req.GetInt("line", 0),
			req.GetInt("column", -1),
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- csv_line ---

func csvLineTool() mcp.Tool {
	return mcp.NewTool("csv_line",
		mcp.WithDescription("Render the task owning a link as one CSV line. Fields default to the configured csv_fields."),
		linkArg("Link to the task or to anything inside it"),
		mcp.WithString("fields",
			mcp.Description("Space separated field names: TaskStatus, SummaryLink, IdLink, Task, or any key of the task"),
		),
	)
}

func csvLineHandler(engine *application.Engine) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		fields := strings.Fields(req.GetString("fields", ""))
		result, err := commands.NewCSVLineCommand(engine, req.GetString("link", ""), fields).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- status ---

func statusTool() mcp.Tool {
	return mcp.NewTool("status",
		mcp.WithDescription("Show the running task, the timer and the selected standup report."),
	)
}

func statusHandler(store ports.SessionStore) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewStatusCommand(store).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func requireString(req mcp.CallToolRequest, key string) (string, error) {
	v := strings.TrimSpace(req.GetString(key, ""))
	if v == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return v, nil
}
