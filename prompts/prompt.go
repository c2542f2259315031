package prompts

import "github.com/mark3labs/mcp-go/mcp"

func QiweiMarkdownPrompt() mcp.Prompt {
	return mcp.NewPrompt(
		"qiwei-markdown",
		mcp.WithPromptDescription("Markdown syntax supported by WeCom group bots, to use when composing send_qiwei_message content"),
	)
}
