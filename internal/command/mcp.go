// Copyright 2024 Alexandre Mahdhaoui
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package command

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/alexandremahdhaoui/go-carchive/internal/carchive"
	"github.com/alexandremahdhaoui/go-carchive/internal/mcpserver"
)

// BuildInput is the input of the MCP build tool.
type BuildInput struct {
	Name string `json:"name,omitempty" jsonschema:"output archive file name (default lib.a)"`
	Path string `json:"path,omitempty" jsonschema:"output directory (default ./)"`
}

// runMCP serves the build tool until the client goes away.
// stdout belongs to JSON-RPC here: everything else goes to stderr.
func runMCP(ctx context.Context, deps Dependencies, dispatcher carchive.Dispatcher, l logger) int {
	server := newMCPServer(deps.Version.String(), dispatcher, l)

	serve := deps.ServeMCP
	if serve == nil {
		serve = func(ctx context.Context, server *mcpserver.Server) error {
			return server.Run(ctx)
		}
	}

	if err := serve(ctx, server); err != nil {
		l.Printf("MCP server error: %v", err)
		return ExitFailure
	}

	return ExitOK
}

func newMCPServer(version string, dispatcher carchive.Dispatcher, l logger) *mcpserver.Server {
	server := mcpserver.New(Name, version)

	mcpserver.RegisterTool(server, &mcp.Tool{
		Name: "build",
		Description: fmt.Sprintf(
			"Start `go build -buildmode=%s %s` in the background. The build result is not observed.",
			carchive.BuildMode, carchive.SourceFile,
		),
	}, makeBuildHandler(dispatcher, l))

	return server
}

func makeBuildHandler(
	dispatcher carchive.Dispatcher,
	l logger,
) func(context.Context, *mcp.CallToolRequest, BuildInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input BuildInput) (*mcp.CallToolResult, any, error) {
		req := carchive.NewBuildRequest(input.Name, input.Path)
		l.Print(req.StatusLine())

		if err := dispatcher.Dispatch(ctx, req); err != nil {
			return mcpserver.ErrorResult(fmt.Sprintf("Build failed: %v", err)), nil, nil
		}

		return mcpserver.SuccessResult(req.StatusLine() + "\n" + req.CommandString()), nil, nil
	}
}
