package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/contentsearch/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for content resources.
	uriScheme = serverName + "://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "topics",
		Name:        "topics",
		Description: "All stored topics ordered by id",
		MIMEType:    "application/json",
	}, s.handleTopicsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "news",
		Name:        "news",
		Description: "All stored news resources, newest first",
		MIMEType:    "application/json",
	}, s.handleNewsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "news/{newsResourceId}",
		Name:        "news-resource-content",
		Description: "Content of a specific news resource",
		MIMEType:    "text/plain",
	}, s.handleNewsContentResource)
}

// handleTopicsResource returns every topic.
func (s *Server) handleTopicsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Content == nil {
		return jsonResult(req.Params.URI, "[]"), nil
	}

	topics, err := s.ports.Content.ListTopics(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing topics: %w", err)
	}

	data, err := json.MarshalIndent(topics, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling topics: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

// handleNewsResource returns a summary of every news resource.
func (s *Server) handleNewsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Content == nil {
		return jsonResult(req.Params.URI, "[]"), nil
	}

	news, err := s.ports.Content.ListNewsResources(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing news resources: %w", err)
	}

	type newsInfo struct {
		ID    string `json:"id"`
		Title string `json:"title"`
		URL   string `json:"url"`
	}

	infos := make([]newsInfo, len(news))
	for i := range news {
		infos[i] = newsInfo{
			ID:    news[i].ID,
			Title: news[i].Title,
			URL:   news[i].URL,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling news resources: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

// handleNewsContentResource returns the content of one news resource.
func (s *Server) handleNewsContentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Content == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	id := extractNewsResourceID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	news, err := s.ports.Content.ListNewsResources(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing news resources: %w", err)
	}

	for i := range news {
		if news[i].ID == id {
			return &mcp.ReadResourceResult{
				Contents: []*mcp.ResourceContents{{
					URI:      req.Params.URI,
					MIMEType: "text/plain",
					Text:     formatNewsResource(news[i]),
				}},
			}, nil
		}
	}
	return nil, mcp.ResourceNotFoundError(req.Params.URI)
}

func formatNewsResource(n domain.NewsResource) string {
	var b strings.Builder
	b.WriteString(n.Title)
	b.WriteString("\n\n")
	b.WriteString(n.Content)
	if n.URL != "" {
		b.WriteString("\n\n")
		b.WriteString(n.URL)
	}
	return b.String()
}

func jsonResult(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}

// extractNewsResourceID extracts the id from a URI like contentsearch://news/{id}.
func extractNewsResourceID(uri string) string {
	const prefix = uriScheme + "news/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
