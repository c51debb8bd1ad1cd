package server

import (
	"context"

	"github.com/fpt/scopefs/internal/roots"
	"github.com/mark3labs/mcp-go/mcp"
)

// registerRootsHandler subscribes to the MCP roots protocol. When the client
// announces a roots change the registry is replaced as a whole; if any
// candidate fails validation the previous set stays active.
func (d *Dispatcher) registerRootsHandler() {
	d.mcpServer.AddNotificationHandler("notifications/roots/list_changed",
		func(ctx context.Context, notification mcp.JSONRPCNotification) {
			uris := rootURIsFromParams(notification.Params.AdditionalFields)
			if uris == nil {
				d.logger.Warn("roots change notification carried no roots list, keeping current set",
					"roots", d.registry.List())
				return
			}
			d.UpdateRootsFromURIs(ctx, uris)
		})
}

// UpdateRootsFromURIs replaces the allowed-directory set from file:// URIs.
// Invalid URIs are skipped; a candidate that is not an existing directory
// aborts the whole update.
func (d *Dispatcher) UpdateRootsFromURIs(ctx context.Context, uris []string) {
	candidates := roots.CandidatesFromURIs(uris)
	if len(candidates) == 0 {
		d.logger.Warn("roots update contained no usable file URIs, keeping current set",
			"uris", len(uris))
		return
	}
	if err := d.registry.Replace(ctx, candidates); err != nil {
		d.logger.Error("roots update rejected, keeping current set", "error", err)
		return
	}
	d.logger.Info("allowed directories replaced", "roots", d.registry.List())
}

// rootURIsFromParams extracts root URIs when the notification inlines them.
// The shape mirrors the roots/list result: {"roots": [{"uri": "file://..."}]}.
// Returns nil when no roots field is present.
func rootURIsFromParams(fields map[string]any) []string {
	rawRoots, ok := fields["roots"]
	if !ok {
		return nil
	}
	items, ok := rawRoots.([]any)
	if !ok {
		return nil
	}

	uris := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			uris = append(uris, v)
		case map[string]any:
			if uri, ok := v["uri"].(string); ok {
				uris = append(uris, uri)
			}
		}
	}
	return uris
}
