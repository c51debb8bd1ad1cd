// Package server is the MCP boundary: it registers the filesystem tools,
// decodes arguments, and maps every engine error to a tool-visible error
// message. No retry logic lives here; a security rejection or a failed edit
// match cannot succeed without caller-side correction.
package server

import (
	"encoding/json"

	"github.com/fpt/scopefs/internal/fileops"
	"github.com/fpt/scopefs/internal/repository"
	"github.com/fpt/scopefs/internal/resolver"
	"github.com/fpt/scopefs/internal/roots"
	"github.com/fpt/scopefs/internal/traverse"
	pkgLogger "github.com/fpt/scopefs/pkg/logger"
	"github.com/mark3labs/mcp-go/server"
)

const serverName = "scopefs"

// Dispatcher owns the MCP server and routes tool calls into the resolver and
// the mutation and traversal engines.
type Dispatcher struct {
	mcpServer *server.MCPServer
	fsRepo    repository.FilesystemRepository
	registry  *roots.Registry
	resolver  *resolver.Resolver
	mutator   *fileops.Engine
	traverser *traverse.Engine
	logger    *pkgLogger.Logger

	// defaultExcludes are merged into every directory_tree and
	// search_files call.
	defaultExcludes []string
}

// Options carries optional dispatcher configuration.
type Options struct {
	Version         string
	DefaultExcludes []string
}

// New wires the engines together and registers the tool set.
func New(fsRepo repository.FilesystemRepository, registry *roots.Registry, opts Options) *Dispatcher {
	version := opts.Version
	if version == "" {
		version = "0.0.0-dev"
	}

	res := resolver.New(fsRepo, registry)
	d := &Dispatcher{
		mcpServer: server.NewMCPServer(
			serverName,
			version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
		fsRepo:          fsRepo,
		registry:        registry,
		resolver:        res,
		mutator:         fileops.NewEngine(fsRepo),
		traverser:       traverse.NewEngine(fsRepo, res),
		logger:          pkgLogger.NewComponentLogger("server"),
		defaultExcludes: opts.DefaultExcludes,
	}

	d.registerTools()
	d.registerRootsHandler()
	return d
}

// ServeStdio runs the server over stdin/stdout until the client disconnects.
func (d *Dispatcher) ServeStdio() error {
	d.logger.Info("serving MCP over stdio", "roots", d.registry.List())
	return server.ServeStdio(d.mcpServer)
}

// MCPServer exposes the underlying server, mainly for tests.
func (d *Dispatcher) MCPServer() *server.MCPServer {
	return d.mcpServer
}

// unmarshalArgs decodes the request's argument map into a typed struct by
// round-tripping through JSON.
func unmarshalArgs(arguments any, v any) error {
	data, err := json.Marshal(arguments)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func (d *Dispatcher) mergedExcludes(excludes []string) []string {
	if len(d.defaultExcludes) == 0 {
		return excludes
	}
	merged := make([]string, 0, len(d.defaultExcludes)+len(excludes))
	merged = append(merged, d.defaultExcludes...)
	merged = append(merged, excludes...)
	return merged
}
