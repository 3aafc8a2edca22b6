package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
)

func sessionArg() mcp.ToolOption {
	return mcp.WithString("session", mcp.Required(), mcp.Description("Session ID returned by wizard-open"))
}

// registerTools adds every storefront tool to the MCP server.
func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("catalog-list",
			mcp.WithDescription("List the storefront products grouped by category"),
			mcp.WithString("category", mcp.Description("Only list this category"),
				mcp.Enum("nitro", "decoration", "server", "boost")),
		),
		s.handleCatalogList,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("wizard-open",
			mcp.WithDescription("Start a server configuration wizard and return its session ID"),
		),
		s.handleWizardOpen,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("wizard-select-type",
			mcp.WithDescription("Choose the server type"),
			sessionArg(),
			mcp.WithString("type", mcp.Required(), mcp.Description("Server type"),
				mcp.Enum("community", "gaming", "other")),
		),
		s.handleSelectType,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("wizard-advance",
			mcp.WithDescription("Go to the next wizard step"),
			sessionArg(),
		),
		s.handleAdvance,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("wizard-retreat",
			mcp.WithDescription("Go back to the previous wizard step"),
			sessionArg(),
		),
		s.handleRetreat,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("wizard-toggle",
			mcp.WithDescription("Flip an option. Disabling the bot also disables bot hosting"),
			sessionArg(),
			mcp.WithString("option", mcp.Required(), mcp.Description("Option to flip"),
				mcp.Enum("withBot", "botManaged", "boostHelp", "promo")),
		),
		s.handleToggle,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("wizard-finalize",
			mcp.WithDescription("Generate the ticket for the configured server"),
			sessionArg(),
		),
		s.handleFinalize,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("wizard-reset",
			mcp.WithDescription("Start the wizard over with default options"),
			sessionArg(),
		),
		s.handleReset,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("wizard-snapshot",
			mcp.WithDescription("Show the current wizard state"),
			sessionArg(),
		),
		s.handleSnapshot,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("wizard-close",
			mcp.WithDescription("Discard a wizard session"),
			sessionArg(),
		),
		s.handleClose,
	)
}
