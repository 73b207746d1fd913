package tools

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/use-agent/summarizer/fsutil"
)

var errNoWorkspace = errors.New("workspace is not configured")

func (h *Handlers) fileTools() []entry {
	return []entry{
		{
			tool: mcp.NewTool("list_directory",
				mcp.WithDescription("List the files and directories directly inside a directory, with type, size and modification time."),
				mcp.WithString("path", mcp.Description("Directory to list (default: current directory)")),
			),
			handler: h.listDirectory,
		},
		{
			tool: mcp.NewTool("get_current_directory",
				mcp.WithDescription("Return the absolute path of the tools' current working directory."),
			),
			handler: h.getCurrentDirectory,
		},
		{
			tool: mcp.NewTool("change_directory",
				mcp.WithDescription("Change the tools' current working directory. Relative paths in other file tools resolve against it."),
				mcp.WithString("path", mcp.Required(), mcp.Description("Directory to change to")),
			),
			handler: h.changeDirectory,
		},
		{
			tool: mcp.NewTool("file_info",
				mcp.WithDescription("Describe a file or directory: existence, absolute path, type, size, MIME type and modification time."),
				mcp.WithString("path", mcp.Required(), mcp.Description("Path to inspect")),
			),
			handler: h.fileInfo,
		},
		{
			tool: mcp.NewTool("create_directory",
				mcp.WithDescription("Create a directory and any missing parents. Succeeds if it already exists."),
				mcp.WithString("path", mcp.Required(), mcp.Description("Directory to create")),
			),
			handler: h.createDirectory,
		},
		{
			tool: mcp.NewTool("read_file_content",
				mcp.WithDescription("Read a text file, optionally restricted to a 1-based inclusive line range, with its metadata."),
				mcp.WithString("file_path", mcp.Required(), mcp.Description("File to read")),
				mcp.WithNumber("start_line", mcp.Description("First line to return (default: 1)")),
				mcp.WithNumber("end_line", mcp.Description("Last line to return (default: end of file)")),
			),
			handler: h.readFileContent,
		},
		{
			tool: mcp.NewTool("preview_file",
				mcp.WithDescription("Return the first lines of a file and its total line count."),
				mcp.WithString("file_path", mcp.Required(), mcp.Description("File to preview")),
				mcp.WithNumber("num_lines", mcp.Description("Number of lines to return (default: 10)")),
			),
			handler: h.previewFile,
		},
		{
			tool: mcp.NewTool("list_all_files",
				mcp.WithDescription("Recursively list every file under a directory with path, size, extension and modification time."),
				mcp.WithString("path", mcp.Description("Root directory (default: current directory)")),
				mcp.WithArray("exclude_dirs",
					mcp.Description("Directory names to skip (default: .git, node_modules, __pycache__, .venv, venv)"),
					mcp.WithStringItems(),
				),
			),
			handler: h.listAllFiles,
		},
		{
			tool: mcp.NewTool("find_files_by_type",
				mcp.WithDescription("Recursively find files with a given extension, case-insensitively."),
				mcp.WithString("path", mcp.Description("Root directory (default: current directory)")),
				mcp.WithString("file_type", mcp.Description("Extension such as .py or md; empty matches all files")),
			),
			handler: h.findFilesByType,
		},
	}
}

func (h *Handlers) workspace() (*fsutil.Workspace, *mcp.CallToolResult) {
	if h.deps.Workspace == nil {
		return nil, errorText(errNoWorkspace.Error())
	}
	return h.deps.Workspace, nil
}

func (h *Handlers) listDirectory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ws, bad := h.workspace()
	if bad != nil {
		return bad, nil
	}
	entries, err := ws.List(req.GetString("path", "."))
	if err != nil {
		return errorResult("list_directory", err), nil
	}
	return jsonResult("list_directory", entries), nil
}

func (h *Handlers) getCurrentDirectory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ws, bad := h.workspace()
	if bad != nil {
		return bad, nil
	}
	return mcp.NewToolResultText(ws.Getwd()), nil
}

func (h *Handlers) changeDirectory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ws, bad := h.workspace()
	if bad != nil {
		return bad, nil
	}
	path, err := req.RequireString("path")
	if err != nil {
		return errorText("path is required"), nil
	}
	cwd, err := ws.Chdir(path)
	if err != nil {
		return errorResult("change_directory", err), nil
	}
	return mcp.NewToolResultText(cwd), nil
}

func (h *Handlers) fileInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ws, bad := h.workspace()
	if bad != nil {
		return bad, nil
	}
	path, err := req.RequireString("path")
	if err != nil {
		return errorText("path is required"), nil
	}
	info, err := ws.Info(path)
	if err != nil {
		return errorResult("file_info", err), nil
	}
	return jsonResult("file_info", info), nil
}

func (h *Handlers) createDirectory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ws, bad := h.workspace()
	if bad != nil {
		return bad, nil
	}
	path, err := req.RequireString("path")
	if err != nil {
		return errorText("path is required"), nil
	}
	abs, err := ws.Mkdir(path)
	if err != nil {
		return errorResult("create_directory", err), nil
	}
	return jsonResult("create_directory", map[string]any{"success": true, "path": abs}), nil
}

func (h *Handlers) readFileContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ws, bad := h.workspace()
	if bad != nil {
		return bad, nil
	}
	path, err := req.RequireString("file_path")
	if err != nil {
		return errorText("file_path is required"), nil
	}
	content, err := ws.Read(path, req.GetInt("start_line", 1), req.GetInt("end_line", 0))
	if err != nil {
		return errorResult("read_file_content", err), nil
	}
	return jsonResult("read_file_content", content), nil
}

func (h *Handlers) previewFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ws, bad := h.workspace()
	if bad != nil {
		return bad, nil
	}
	path, err := req.RequireString("file_path")
	if err != nil {
		return errorText("file_path is required"), nil
	}
	preview, err := ws.Preview(path, req.GetInt("num_lines", fsutil.DefaultPreviewLines))
	if err != nil {
		return errorResult("preview_file", err), nil
	}
	return jsonResult("preview_file", preview), nil
}

func (h *Handlers) listAllFiles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ws, bad := h.workspace()
	if bad != nil {
		return bad, nil
	}
	list, err := ws.ListAll(req.GetString("path", "."), req.GetStringSlice("exclude_dirs", nil))
	if err != nil {
		return errorResult("list_all_files", err), nil
	}
	return jsonResult("list_all_files", list), nil
}

func (h *Handlers) findFilesByType(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ws, bad := h.workspace()
	if bad != nil {
		return bad, nil
	}
	matches, err := ws.FindByType(req.GetString("path", "."), req.GetString("file_type", ""))
	if err != nil {
		return errorResult("find_files_by_type", err), nil
	}
	return jsonResult("find_files_by_type", matches), nil
}
