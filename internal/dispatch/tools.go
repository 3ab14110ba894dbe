package dispatch

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/codex-k8s/trademe-mcp-server/internal/constants"
	"github.com/codex-k8s/trademe-mcp-server/internal/protocol"
	"github.com/codex-k8s/trademe-mcp-server/internal/registry"
	"github.com/codex-k8s/trademe-mcp-server/internal/trademe"
)

// HelloMessage is the fixed hello_world payload.
const HelloMessage = "Hello from Trade Me MCP Server!"

func (d *Dispatcher) handlers() map[string]boundTool {
	return map[string]boundTool{
		constants.ToolHelloWorld:        {handle: d.helloWorld, failurePrefix: "Hello world failed"},
		constants.ToolGetServerInfo:     {handle: d.serverInfo, failurePrefix: "Failed to get server info"},
		constants.ToolTestSDKConnection: {handle: d.testConnection, failurePrefix: "SDK connection test failed"},
		constants.ToolGetListing:        {handle: d.getListing, failurePrefix: "Failed to get listing"},
		constants.ToolGetWatchlist:      {handle: d.getWatchlist, failurePrefix: "Failed to get watchlist"},
	}
}

func (d *Dispatcher) helloWorld(context.Context, registry.Args) Outcome {
	return succeed(HelloMessage)
}

func (d *Dispatcher) serverInfo(context.Context, registry.Args) Outcome {
	info := d.info
	info.Tools = slices.Clone(d.info.Tools)
	return succeed(info)
}

// testConnection exercises auth and the API with a one-row watchlist read.
func (d *Dispatcher) testConnection(ctx context.Context, _ registry.Args) Outcome {
	api, failure := d.connect(ctx)
	if failure != nil {
		return Outcome{Failure: failure}
	}
	result, err := api.GetWatchlist(ctx, trademe.WatchlistQuery{
		Filter: constants.DefaultWatchlistFilter,
		Page:   constants.DefaultWatchlistPage,
		Rows:   1,
	})
	if err != nil {
		return fail(KindUpstream, err)
	}
	return succeed(protocol.ConnectionSummary{
		APIAccessible:  true,
		WatchlistItems: countItems(result),
	})
}

func (d *Dispatcher) getListing(ctx context.Context, args registry.Args) Outcome {
	api, failure := d.connect(ctx)
	if failure != nil {
		return Outcome{Failure: failure}
	}
	result, err := api.GetListing(ctx, args.Int("listing_id"))
	if err != nil {
		return fail(KindUpstream, err)
	}
	return succeed(payload(result))
}

func (d *Dispatcher) getWatchlist(ctx context.Context, args registry.Args) Outcome {
	api, failure := d.connect(ctx)
	if failure != nil {
		return Outcome{Failure: failure}
	}
	result, err := api.GetWatchlist(ctx, trademe.WatchlistQuery{
		Filter:   args.String("filter_type"),
		Page:     int(args.Int("page")),
		Rows:     int(args.Int("rows")),
		Category: args.String("category"),
	})
	if err != nil {
		return fail(KindUpstream, err)
	}
	return succeed(payload(result))
}

// connect acquires a fresh session and binds a client to it.
func (d *Dispatcher) connect(ctx context.Context) (trademe.API, *Failure) {
	session, err := d.auth.Acquire(ctx)
	if err != nil {
		return nil, &Failure{Kind: KindAuth, Err: fmt.Errorf("authentication failed: %w", err)}
	}
	api := d.clients(session)
	if api == nil {
		return nil, &Failure{Kind: KindUnexpected, Err: errors.New("api client unavailable")}
	}
	return api, nil
}

func payload(result map[string]any) map[string]any {
	if result == nil {
		return map[string]any{}
	}
	return result
}

func countItems(result map[string]any) int {
	items, ok := result["List"].([]any)
	if !ok {
		return 0
	}
	return len(items)
}
