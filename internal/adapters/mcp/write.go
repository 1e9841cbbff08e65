package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"f2yaml/internal/application"
	"f2yaml/internal/application/commands"
	"f2yaml/internal/ports"
)

// RegisterWriteTools adds the timer and standup tools to the MCP server.
// They write the standup report and task files.
func RegisterWriteTools(s *server.MCPServer, engine *application.Engine, store ports.SessionStore) {
	s.AddTool(selectStandupTool(), selectStandupHandler(engine, store))
	s.AddTool(startTaskTool(), startTaskHandler(engine, store))
	s.AddTool(pauseTaskTool(), pauseTaskHandler(store))
	s.AddTool(stopTaskTool(), stopTaskHandler(engine, store))
	s.AddTool(generateWorkLogsTool(), generateWorkLogsHandler(engine, store))
}

// --- select_sr ---

func selectStandupTool() mcp.Tool {
	return mcp.NewTool("select_sr",
		mcp.WithDescription("Select the standup report that timed tasks are recorded in. Creates {Was: [~], Next: [~]} under the code when missing."),
		mcp.WithString("file",
			mcp.Description("Path of the YAML file holding standup reports"),
			mcp.Required(),
		),
		mcp.WithString("code",
			mcp.Description("Top-level key of the report, e.g. a date"),
			mcp.Required(),
		),
	)
}

func selectStandupHandler(engine *application.Engine, store ports.SessionStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		file, err := requireString(req, "file")
		if err != nil {
			return toolError(err)
		}
		code, err := requireString(req, "code")
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewSelectStandupCommand(engine, store, file, code).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- start_task ---

func startTaskTool() mcp.Tool {
	return mcp.NewTool("start_task",
		mcp.WithDescription("Start timing a task. A running task is stopped first and the new one is added to the Was list of the standup report."),
		linkArg("Link to the task"),
	)
}

func startTaskHandler(engine *application.Engine, store ports.SessionStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewStartTaskCommand(engine, store, req.GetString("link", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		msg := result.Message
		if result.Stopped != nil {
			msg = result.Stopped.Message + "\n" + msg
		}
		return mcp.NewToolResultText(msg), nil
	}
}

// --- pause_task ---

func pauseTaskTool() mcp.Tool {
	return mcp.NewTool("pause_task",
		mcp.WithDescription("Pause the running task, or resume it when paused."),
	)
}

func pauseTaskHandler(store ports.SessionStore) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewPauseTaskCommand(store).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- stop_task ---

func stopTaskTool() mcp.Tool {
	return mcp.NewTool("stop_task",
		mcp.WithDescription("Stop the running task and add the elapsed minutes to its standup entry."),
	)
}

func stopTaskHandler(engine *application.Engine, store ports.SessionStore) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewStopTaskCommand(engine, store).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- generate_worklogs ---

func generateWorkLogsTool() mcp.Tool {
	return mcp.NewTool("generate_worklogs",
		mcp.WithDescription("Stop the running task, then copy every Was entry of the standup report into the WorkLog of its task."),
	)
}

func generateWorkLogsHandler(engine *application.Engine, store ports.SessionStore) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewGenerateWorkLogsCommand(engine, store).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
