package handlers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/boqier/qiwei-mcp-server/pkg/sendmessage"
	"github.com/boqier/qiwei-mcp-server/tools"
	"github.com/mark3labs/mcp-go/mcp"
)

// Sender is the part of sendmessage.Client the handler needs.
type Sender interface {
	Send(ctx context.Context, msg sendmessage.OutboundMessage) (string, error)
}

func SendQiweiMessageHandler(client Sender, logger *slog.Logger) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		msg, err := request.RequireString("msg")
		if err != nil {
			return nil, fmt.Errorf("msg is required: %w", err)
		}
		resp, err := client.Send(ctx, sendmessage.OutboundMessage{Msg: msg})
		if err != nil {
			logger.Error("send message to qiwei failed", "err", err)
			return nil, fmt.Errorf("send message to qiwei failed: %w", err)
		}
		// the raw text goes back either way; a rejection is only worth a log line
		if code := sendmessage.ErrCode(resp); code.Exists() && code.Int() != 0 {
			logger.Warn("qiwei webhook rejected message", "errcode", code.Int(), "response", resp)
		} else {
			logger.Debug("message sent to qiwei", "bytes", len(msg))
		}
		return mcp.NewToolResultStructured(tools.SendResult{Result: resp}, resp), nil
	}
}
