package tools

import "github.com/mark3labs/mcp-go/mcp"

// SendResult is the structured output of send_qiwei_message.
type SendResult struct {
	Result string `json:"result"`
}

func SendQiweiMessageTool() mcp.Tool {
	return mcp.NewTool(
		"send_qiwei_message",
		mcp.WithDescription("发送信息到企业微信群\n"+
			"Send a Markdown message to the configured WeCom group bot.\n"+
			"Returns the raw response text of the webhook, e.g. {\"errcode\":0,\"errmsg\":\"ok\"}."),
		mcp.WithString("msg", mcp.Required(), mcp.Description("推送的企业微信的信息，Markdown 格式（必填）")),
		mcp.WithOutputSchema[SendResult](),
	)
}
