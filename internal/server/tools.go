package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/fpt/scopefs/internal/fileops"
	"github.com/fpt/scopefs/internal/traverse"
	"github.com/mark3labs/mcp-go/mcp"
)

func (d *Dispatcher) registerTools() {
	d.mcpServer.AddTool(mcp.NewTool("read_text_file",
		mcp.WithDescription("Read the complete contents of a file as text. Use head or tail to read only the first or last N lines. Only works within allowed directories."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Absolute path to the file"),
		),
		mcp.WithNumber("head",
			mcp.Description("Return only the first N lines"),
		),
		mcp.WithNumber("tail",
			mcp.Description("Return only the last N lines"),
		),
	), d.handleReadTextFile)

	// read_file keeps the pre-rename tool name alive for older clients.
	d.mcpServer.AddTool(mcp.NewTool("read_file",
		mcp.WithDescription("Deprecated alias of read_text_file; use read_text_file instead."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Absolute path to the file"),
		),
		mcp.WithNumber("head",
			mcp.Description("Return only the first N lines"),
		),
		mcp.WithNumber("tail",
			mcp.Description("Return only the last N lines"),
		),
	), d.handleReadTextFile)

	d.mcpServer.AddTool(mcp.NewTool("read_media_file",
		mcp.WithDescription("Read an image or other binary file, returned base64-encoded with its MIME type. Only works within allowed directories."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Absolute path to the file"),
		),
	), d.handleReadMediaFile)

	d.mcpServer.AddTool(mcp.NewTool("read_multiple_files",
		mcp.WithDescription("Read multiple files in one call. Failures on individual files are reported inline and do not stop the rest. Only works within allowed directories."),
		mcp.WithArray("paths",
			mcp.Required(),
			mcp.Description("Absolute paths of the files to read"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	), d.handleReadMultipleFiles)

	d.mcpServer.AddTool(mcp.NewTool("write_file",
		mcp.WithDescription("Create a new file or overwrite an existing file atomically. Only works within allowed directories."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Absolute path to the file"),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Full file content"),
		),
	), d.handleWriteFile)

	d.mcpServer.AddTool(mcp.NewTool("edit_file",
		mcp.WithDescription("Make line-based edits to a text file and return a unified diff of the changes. With dryRun the file is left untouched. Only works within allowed directories."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Absolute path to the file"),
		),
		mcp.WithArray("edits",
			mcp.Required(),
			mcp.Description("Edit operations, applied in order"),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"oldText": map[string]any{
						"type":        "string",
						"description": "Text to search for",
					},
					"newText": map[string]any{
						"type":        "string",
						"description": "Text to replace with",
					},
				},
				"required": []string{"oldText", "newText"},
			}),
		),
		mcp.WithBoolean("dryRun",
			mcp.Description("Preview changes without applying them (default false)"),
		),
	), d.handleEditFile)

	d.mcpServer.AddTool(mcp.NewTool("create_directory",
		mcp.WithDescription("Create a directory, including missing parents. Succeeds if the directory already exists. Only works within allowed directories."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Absolute path of the directory"),
		),
	), d.handleCreateDirectory)

	d.mcpServer.AddTool(mcp.NewTool("list_directory",
		mcp.WithDescription("List the contents of a directory with [FILE] and [DIR] prefixes. Only works within allowed directories."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Absolute path of the directory"),
		),
	), d.handleListDirectory)

	d.mcpServer.AddTool(mcp.NewTool("list_directory_with_sizes",
		mcp.WithDescription("List directory contents with file sizes and a summary, sorted by name or by size. Only works within allowed directories."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Absolute path of the directory"),
		),
		mcp.WithString("sortBy",
			mcp.Description("Sort by name or size (default name)"),
			mcp.Enum("name", "size"),
		),
	), d.handleListDirectoryWithSizes)

	d.mcpServer.AddTool(mcp.NewTool("directory_tree",
		mcp.WithDescription("Get a recursive JSON tree of a directory. Symlinked directories are listed but not descended into. Only works within allowed directories."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Absolute path of the directory"),
		),
		mcp.WithArray("excludePatterns",
			mcp.Description("Glob patterns of relative paths to exclude"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	), d.handleDirectoryTree)

	d.mcpServer.AddTool(mcp.NewTool("move_file",
		mcp.WithDescription("Move or rename a file or directory. Fails if the destination already exists. Both paths must be within allowed directories."),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("Absolute source path"),
		),
		mcp.WithString("destination",
			mcp.Required(),
			mcp.Description("Absolute destination path"),
		),
	), d.handleMoveFile)

	d.mcpServer.AddTool(mcp.NewTool("search_files",
		mcp.WithDescription("Recursively search for files and directories whose relative path matches a glob pattern (*, **, ?). Excluded subtrees are skipped entirely. Only works within allowed directories."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Absolute path of the directory to search from"),
		),
		mcp.WithString("pattern",
			mcp.Required(),
			mcp.Description("Glob pattern matched against paths relative to the starting directory"),
		),
		mcp.WithArray("excludePatterns",
			mcp.Description("Glob patterns of relative paths to exclude"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	), d.handleSearchFiles)

	d.mcpServer.AddTool(mcp.NewTool("get_file_info",
		mcp.WithDescription("Get metadata about a file or directory: size, type, permissions, modification time. Only works within allowed directories."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Absolute path of the file or directory"),
		),
	), d.handleGetFileInfo)

	d.mcpServer.AddTool(mcp.NewTool("list_allowed_directories",
		mcp.WithDescription("List all directories this server is allowed to access."),
	), d.handleListAllowedDirectories)
}

func (d *Dispatcher) handleReadTextFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Path string `json:"path"`
		Head *int   `json:"head,omitempty"`
		Tail *int   `json:"tail,omitempty"`
	}
	if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.Head != nil && args.Tail != nil {
		return mcp.NewToolResultError("cannot specify both head and tail parameters simultaneously"), nil
	}

	resolved, err := d.resolver.Resolve(ctx, args.Path, true)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var content string
	switch {
	case args.Tail != nil:
		content, err = d.mutator.Tail(ctx, resolved.Path, *args.Tail)
	case args.Head != nil:
		content, err = d.mutator.Head(ctx, resolved.Path, *args.Head)
	default:
		var raw []byte
		raw, err = d.fsRepo.ReadFile(ctx, resolved.Path)
		content = string(raw)
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(content), nil
}

func (d *Dispatcher) handleReadMediaFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Path string `json:"path"`
	}
	if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	resolved, err := d.resolver.Resolve(ctx, args.Path, true)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	raw, err := d.fsRepo.ReadFile(ctx, resolved.Path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(resolved.Path)))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	encoded := base64.StdEncoding.EncodeToString(raw)

	if strings.HasPrefix(mimeType, "image/") {
		return mcp.NewToolResultImage(fmt.Sprintf("%s (%s)", args.Path, mimeType), encoded, mimeType), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s\n%s", mimeType, encoded)), nil
}

func (d *Dispatcher) handleReadMultipleFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Paths []string `json:"paths"`
	}
	if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if len(args.Paths) == 0 {
		return mcp.NewToolResultError("no paths provided"), nil
	}

	results := make([]string, 0, len(args.Paths))
	for _, p := range args.Paths {
		resolved, err := d.resolver.Resolve(ctx, p, true)
		if err != nil {
			results = append(results, fmt.Sprintf("%s: Error - %s", p, err.Error()))
			continue
		}
		raw, err := d.fsRepo.ReadFile(ctx, resolved.Path)
		if err != nil {
			results = append(results, fmt.Sprintf("%s: Error - %s", p, err.Error()))
			continue
		}
		results = append(results, fmt.Sprintf("%s:\n%s", p, string(raw)))
	}
	return mcp.NewToolResultText(strings.Join(results, "\n---\n")), nil
}

func (d *Dispatcher) handleWriteFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Path    string  `json:"path"`
		Content *string `json:"content"`
	}
	if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.Content == nil {
		return mcp.NewToolResultError("content parameter is required"), nil
	}

	resolved, err := d.resolver.Resolve(ctx, args.Path, false)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := d.mutator.WriteFile(ctx, resolved.Path, []byte(*args.Content)); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Successfully wrote to %s", args.Path)), nil
}

func (d *Dispatcher) handleEditFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Path   string                  `json:"path"`
		Edits  []fileops.EditOperation `json:"edits"`
		DryRun bool                    `json:"dryRun,omitempty"`
	}
	if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if len(args.Edits) == 0 {
		return mcp.NewToolResultError("no edits provided"), nil
	}

	resolved, err := d.resolver.Resolve(ctx, args.Path, true)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	diff, err := d.mutator.ApplyEdits(ctx, resolved.Path, args.Edits, args.DryRun)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(diff), nil
}

func (d *Dispatcher) handleCreateDirectory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Path string `json:"path"`
	}
	if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	resolved, err := d.resolver.Resolve(ctx, args.Path, false)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := d.fsRepo.MkdirAll(ctx, resolved.Path, 0o755); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Successfully created directory %s", args.Path)), nil
}

func (d *Dispatcher) handleListDirectory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Path string `json:"path"`
	}
	if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	resolved, err := d.resolver.Resolve(ctx, args.Path, true)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	entries, err := d.traverser.List(ctx, resolved.Path, "name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		prefix := "[FILE]"
		if entry.IsDir {
			prefix = "[DIR]"
		}
		lines = append(lines, fmt.Sprintf("%s %s", prefix, entry.Name))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (d *Dispatcher) handleListDirectoryWithSizes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Path   string `json:"path"`
		SortBy string `json:"sortBy,omitempty"`
	}
	if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.SortBy == "" {
		args.SortBy = "name"
	}

	resolved, err := d.resolver.Resolve(ctx, args.Path, true)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	entries, err := d.traverser.List(ctx, resolved.Path, args.SortBy)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(traverse.FormatListing(entries)), nil
}

func (d *Dispatcher) handleDirectoryTree(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Path            string   `json:"path"`
		ExcludePatterns []string `json:"excludePatterns,omitempty"`
	}
	if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	resolved, err := d.resolver.Resolve(ctx, args.Path, true)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tree, err := d.traverser.Tree(ctx, resolved.Path, d.mergedExcludes(args.ExcludePatterns))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	encoded, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(encoded)), nil
}

func (d *Dispatcher) handleMoveFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Source      string `json:"source"`
		Destination string `json:"destination"`
	}
	if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	// Source and destination may live under different roots, so each is
	// resolved independently.
	source, err := d.resolver.Resolve(ctx, args.Source, true)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	destination, err := d.resolver.Resolve(ctx, args.Destination, false)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := d.mutator.Move(ctx, source.Path, destination.Path); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Successfully moved %s to %s", args.Source, args.Destination)), nil
}

func (d *Dispatcher) handleSearchFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Path            string   `json:"path"`
		Pattern         string   `json:"pattern"`
		ExcludePatterns []string `json:"excludePatterns,omitempty"`
	}
	if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if args.Pattern == "" {
		return mcp.NewToolResultError("pattern parameter is required"), nil
	}

	resolved, err := d.resolver.Resolve(ctx, args.Path, true)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	matches, err := d.traverser.Search(ctx, resolved.Path, args.Pattern, d.mergedExcludes(args.ExcludePatterns))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(matches) == 0 {
		return mcp.NewToolResultText("No matches found"), nil
	}
	return mcp.NewToolResultText(strings.Join(matches, "\n")), nil
}

func (d *Dispatcher) handleGetFileInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Path string `json:"path"`
	}
	if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	resolved, err := d.resolver.Resolve(ctx, args.Path, true)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	info, err := d.traverser.Info(ctx, resolved.Path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(info.Format(args.Path)), nil
}

func (d *Dispatcher) handleListAllowedDirectories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dirs := d.registry.List()
	if len(dirs) == 0 {
		return mcp.NewToolResultText("No allowed directories configured"), nil
	}
	return mcp.NewToolResultText("Allowed directories:\n" + strings.Join(dirs, "\n")), nil
}
