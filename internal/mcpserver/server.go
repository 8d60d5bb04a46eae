// Package mcpserver exposes the comment commands as Model Context Protocol
// tools, so editors and agents that speak MCP can use them as a host.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"comment-translator/internal/batch"
	"comment-translator/internal/commands"
	"comment-translator/internal/editor"
	"comment-translator/internal/position"
	"comment-translator/internal/scanner"
	"comment-translator/internal/translation"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"
)

// Server holds what the tool handlers need.
type Server struct {
	runner     *batch.Runner
	targetLang string
}

// New creates the tool handlers. targetLang is used when a call does not name one.
func New(runner *batch.Runner, targetLang string) *Server {
	return &Server{runner: runner, targetLang: targetLang}
}

// MCPServer builds an MCP server with every tool registered.
func (s *Server) MCPServer(version string) *server.MCPServer {
	mcpServer := server.NewMCPServer(
		"comment-translator",
		version,
		server.WithToolCapabilities(true),
		server.WithLogging(),
		server.WithInstructions("Lists and translates source code comments. Pass the document text and its language identifier."),
	)
	s.Register(mcpServer)
	return mcpServer
}

// Register adds the show_comments and translate_comments tools.
func (s *Server) Register(mcpServer *server.MCPServer) {
	showTool := mcp.NewTool("show_comments",
		mcp.WithDescription("Lists every comment in a document with its character offsets and zero-based line/column range."),
		mcp.WithString("text",
			mcp.Description("Full document text"),
			mcp.Required(),
		),
		mcp.WithString("language",
			mcp.Description("Editor language identifier, e.g. python, go, javascript (default: plaintext)"),
		),
	)
	mcpServer.AddTool(showTool, s.HandleShowComments)

	translateTool := mcp.NewTool("translate_comments",
		mcp.WithDescription("Translates every comment in a document and returns the document with the comments replaced. Comments that fail to translate keep their original text."),
		mcp.WithString("text",
			mcp.Description("Full document text"),
			mcp.Required(),
		),
		mcp.WithString("language",
			mcp.Description("Editor language identifier, e.g. python, go, javascript (default: plaintext)"),
		),
		mcp.WithString("target_language",
			mcp.Description("BCP 47 code of the language to translate into (default: server setting)"),
		),
	)
	mcpServer.AddTool(translateTool, s.HandleTranslateComments)

	log.Debug().Msg("Registered MCP tools")
}

// Comment is the JSON form of an occurrence.
type Comment struct {
	Text  string         `json:"text"`
	Start int            `json:"start"`
	End   int            `json:"end"`
	Range position.Range `json:"range"`
}

// TranslatedComment is the JSON form of a batch result.
type TranslatedComment struct {
	Original   string `json:"original"`
	Translated string `json:"translated"`
	Succeeded  bool   `json:"succeeded"`
	Error      string `json:"error,omitempty"`
}

// TranslateOutput is returned by translate_comments.
type TranslateOutput struct {
	Text     string              `json:"text"`
	Comments []TranslatedComment `json:"comments"`
	Notices  []string            `json:"notices"`
}

func (s *Server) HandleShowComments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, language, err := documentArgs(request)
	if err != nil {
		return errorResult(err), nil
	}

	occurrences := scanner.Scan(text, language)
	comments := make([]Comment, len(occurrences))
	for i, o := range occurrences {
		comments[i] = Comment{
			Text:  o.Text,
			Start: o.Start,
			End:   o.End,
			Range: position.RangeOf(text, o.Start, o.End),
		}
	}

	return jsonResult(comments)
}

func (s *Server) HandleTranslateComments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, language, err := documentArgs(request)
	if err != nil {
		return errorResult(err), nil
	}

	target := s.targetLang
	if v, ok := request.Params.Arguments["target_language"].(string); ok && v != "" {
		target = v
	}
	target, err = translation.NormalizeLanguage(target)
	if err != nil {
		return errorResult(err), nil
	}

	host := editor.NewMemory("mcp://document", text, language)
	outcome, err := commands.TranslateComments(ctx, host, s.runner, target)
	if err != nil {
		return nil, fmt.Errorf("translate comments: %w", err)
	}

	out := TranslateOutput{Text: host.Text(), Comments: make([]TranslatedComment, len(outcome.Results))}
	for i, r := range outcome.Results {
		out.Comments[i] = TranslatedComment{
			Original:   r.Original.Text,
			Translated: r.Translated,
			Succeeded:  r.Succeeded,
		}
		if r.Err != nil {
			out.Comments[i].Error = r.Err.Error()
		}
	}
	for _, n := range host.Notices() {
		out.Notices = append(out.Notices, n.Message)
	}

	return jsonResult(out)
}

func documentArgs(request mcp.CallToolRequest) (string, string, error) {
	arguments := request.Params.Arguments

	text, ok := arguments["text"].(string)
	if !ok {
		return "", "", fmt.Errorf("text must be a string")
	}
	language, _ := arguments["language"].(string)
	if language == "" {
		language = "plaintext"
	}
	return text, language, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: string(data),
			},
		},
	}, nil
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: err.Error(),
			},
		},
		IsError: true,
	}
}
