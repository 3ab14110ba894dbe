package constants

// Tool names exposed by the server.
const (
	ToolHelloWorld        = "hello_world"
	ToolGetServerInfo     = "get_server_info"
	ToolTestSDKConnection = "test_sdk_connection"
	ToolGetListing        = "get_listing"
	ToolGetWatchlist      = "get_watchlist"
)

// Transport aliases.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Log output formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Watchlist defaults forwarded explicitly to the API client.
const (
	DefaultWatchlistFilter = "All"
	DefaultWatchlistPage   = 1
	DefaultWatchlistRows   = 50
)
