package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/contentsearch/internal/core/domain"
)

// SearchInput is the input schema for the search_contents tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"prefix terms matched against titles, content, names and descriptions"`
}

// SearchOutput is the output schema for the search_contents tool.
type SearchOutput struct {
	Topics        []TopicOutput        `json:"topics"`
	NewsResources []NewsResourceOutput `json:"news_resources"`
	Count         int                  `json:"count"`
}

// TopicOutput is a matched topic.
type TopicOutput struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	ShortDescription string `json:"short_description,omitempty"`
	URL              string `json:"url,omitempty"`
}

// NewsResourceOutput is a matched news resource.
type NewsResourceOutput struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content,omitempty"`
	URL         string    `json:"url,omitempty"`
	PublishDate time.Time `json:"publish_date"`
}

// PopulateInput is the empty input schema for populate_fts.
type PopulateInput struct{}

// PopulateOutput reports one population run.
type PopulateOutput struct {
	RunID    string            `json:"run_id"`
	Counts   map[string]int    `json:"counts"`
	Failures map[string]string `json:"failures,omitempty"`
}

// CountInput is the empty input schema for search_contents_count.
type CountInput struct{}

// CountOutput is the number of indexed records.
type CountOutput struct {
	Count int `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_contents",
		Description: "Search indexed topics and news resources. Every term must match as a word prefix.",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "populate_fts",
		Description: "Rebuild the full-text index from the stored topics and news resources",
	}, s.handlePopulate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_contents_count",
		Description: "Count the records currently in the full-text index",
	}, s.handleCount)
}

// handleSearch handles the search_contents tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	result, err := s.ports.Search.Search(ctx, input.Query)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Topics:        make([]TopicOutput, len(result.Topics)),
		NewsResources: make([]NewsResourceOutput, len(result.NewsResources)),
		Count:         result.Total(),
	}
	for i, t := range result.Topics {
		output.Topics[i] = TopicOutput{
			ID:               t.ID,
			Name:             t.Name,
			ShortDescription: t.ShortDescription,
			URL:              t.URL,
		}
	}
	for i, n := range result.NewsResources {
		output.NewsResources[i] = NewsResourceOutput{
			ID:          n.ID,
			Title:       n.Title,
			Content:     n.Content,
			URL:         n.URL,
			PublishDate: n.PublishDate,
		}
	}

	return nil, output, nil
}

// handlePopulate handles the populate_fts tool invocation.
// A partial failure is reported in the output rather than as a tool error.
func (s *Server) handlePopulate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ PopulateInput,
) (*mcp.CallToolResult, PopulateOutput, error) {
	run, err := s.ports.Sync.Populate(ctx, domain.SyncTriggerManual)
	if err != nil && (run == nil || !errors.Is(err, domain.ErrPartialSync)) {
		return nil, PopulateOutput{}, err
	}

	output := PopulateOutput{
		RunID:  run.ID,
		Counts: make(map[string]int, len(run.Counts)),
	}
	for ct, n := range run.Counts {
		output.Counts[ct.String()] = n
	}
	if len(run.Failures) > 0 {
		output.Failures = make(map[string]string, len(run.Failures))
		for ct, msg := range run.Failures {
			output.Failures[ct.String()] = msg
		}
	}

	return nil, output, nil
}

// handleCount handles the search_contents_count tool invocation.
func (s *Server) handleCount(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ CountInput,
) (*mcp.CallToolResult, CountOutput, error) {
	n, err := s.ports.Search.SearchContentsCount(ctx)
	if err != nil {
		return nil, CountOutput{}, err
	}
	return nil, CountOutput{Count: n}, nil
}
