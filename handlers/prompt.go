package handlers

import (
	"context"

	"github.com/boqier/qiwei-mcp-server/resources"
	"github.com/mark3labs/mcp-go/mcp"
)

// 让模型知道企业微信只支持部分 Markdown 语法
func QiweiMarkdownPrompt() func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		return mcp.NewGetPromptResult(
			"qiwei-markdown",
			[]mcp.PromptMessage{
				mcp.NewPromptMessage(
					mcp.RoleAssistant,
					mcp.NewTextContent("When calling send_qiwei_message, write msg in the WeCom markdown subset below. "+
						"Keep it under 4096 bytes.\n\n"+resources.MarkdownGuide),
				),
			},
		), nil
	}
}
