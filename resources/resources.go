package resources

import (
	_ "embed"

	"github.com/mark3labs/mcp-go/mcp"
)

const MarkdownGuideURI = "docs://qiwei-markdown"

//go:embed docs/markdown.md
var MarkdownGuide string

func MarkdownGuideResource() mcp.Resource {
	return mcp.NewResource(
		MarkdownGuideURI,
		"QiWei Markdown Guide",
		mcp.WithResourceDescription("Markdown syntax rendered by WeCom group bot messages"),
		mcp.WithMIMEType("text/markdown"),
	)
}
