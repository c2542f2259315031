package handlers

import (
	"context"

	"github.com/boqier/qiwei-mcp-server/resources"
	"github.com/mark3labs/mcp-go/mcp"
)

func GetMarkdownGuide(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      resources.MarkdownGuideURI,
			MIMEType: "text/markdown",
			Text:     resources.MarkdownGuide,
		},
	}, nil
}
