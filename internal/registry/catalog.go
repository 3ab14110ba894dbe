package registry

import "github.com/codex-k8s/trademe-mcp-server/internal/constants"

// Catalog returns the fixed set of Trade Me tools.
func Catalog() []ToolDescriptor {
	return []ToolDescriptor{
		{
			Name:        constants.ToolHelloWorld,
			Title:       "Hello world",
			Description: "A simple hello world tool to verify the MCP server is working.",
			ReadOnly:    true,
		},
		{
			Name:        constants.ToolGetServerInfo,
			Title:       "Server info",
			Description: "Get information about this MCP server.",
			ReadOnly:    true,
		},
		{
			Name:        constants.ToolTestSDKConnection,
			Title:       "Test Trade Me connection",
			Description: "Test the connection to the Trade Me API by fetching a single watchlist item.",
			ReadOnly:    true,
			OpenWorld:   true,
		},
		{
			Name:        constants.ToolGetListing,
			Title:       "Get listing",
			Description: "Get details for a specific Trade Me listing.",
			ReadOnly:    true,
			OpenWorld:   true,
			Params: []Param{
				{
					Name:        "listing_id",
					Type:        TypeInteger,
					Description: "The ID of the listing to retrieve",
					Required:    true,
					Positive:    true,
				},
			},
		},
		{
			Name:        constants.ToolGetWatchlist,
			Title:       "Get watchlist",
			Description: "Get the user's watchlist from Trade Me.",
			ReadOnly:    true,
			OpenWorld:   true,
			Params: []Param{
				{
					Name:        "filter_type",
					Type:        TypeString,
					Description: "Filter type (default: \"All\")",
					Default:     constants.DefaultWatchlistFilter,
					NonEmpty:    true,
				},
				{
					Name:        "page",
					Type:        TypeInteger,
					Description: "Page number (default: 1)",
					Default:     int64(constants.DefaultWatchlistPage),
					Positive:    true,
				},
				{
					Name:        "rows",
					Type:        TypeInteger,
					Description: "Number of items per page (default: 50)",
					Default:     int64(constants.DefaultWatchlistRows),
					Positive:    true,
				},
				{
					Name:        "category",
					Type:        TypeString,
					Description: "Optional category filter",
				},
			},
		},
	}
}

// Default builds the registry from Catalog.
func Default() *Registry {
	r, err := New(Catalog()...)
	if err != nil {
		panic(err)
	}
	return r
}
