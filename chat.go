package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/slack-go/slack"
)

// SendMessages posts messages, joined by newlines, as the bot user. The
// configured posting defaults (parse, link_names, unfurl_links,
// unfurl_media) are applied; unset ones are not sent.
func (c *Client) SendMessages(ctx context.Context, channelID string, messages []string) (Result, error) {
	if c == nil {
		return nil, ErrNilClient
	}

	params := c.options.postMessage.params()
	params["as_user"] = true
	params["channel"] = channelID
	params["text"] = strings.Join(messages, "\n")

	return c.Call(ctx, "chat.postMessage", params)
}

// SendAttachments posts structured attachments as the bot user.
func (c *Client) SendAttachments(ctx context.Context, channelID string, attachments []slack.Attachment) (Result, error) {
	if len(attachments) == 0 {
		return nil, errors.New("attachments list cannot be empty")
	}

	return c.Call(ctx, "chat.postMessage", Params{
		"as_user":     true,
		"channel":     channelID,
		"attachments": attachments,
	})
}

// ReplyInThread posts messages as a reply to the thread rooted at threadTS.
func (c *Client) ReplyInThread(ctx context.Context, channelID string, messages []string, threadTS string) (Result, error) {
	return c.Call(ctx, "chat.postMessage", Params{
		"as_user":   true,
		"channel":   channelID,
		"text":      strings.Join(messages, "\n"),
		"thread_ts": threadTS,
	})
}

func (c *Client) Delete(ctx context.Context, channelID, ts string) (Result, error) {
	return c.Call(ctx, "chat.delete", Params{"channel": channelID, "ts": ts})
}

// UpdateAttachments replaces the attachments of the message at ts.
func (c *Client) UpdateAttachments(ctx context.Context, channelID, ts string, attachments []slack.Attachment) (Result, error) {
	if attachments == nil {
		attachments = []slack.Attachment{}
	}

	return c.Call(ctx, "chat.update", Params{
		"channel":     channelID,
		"ts":          ts,
		"attachments": attachments,
	})
}

func (c *Client) SetTopic(ctx context.Context, channelID, topic string) (Result, error) {
	return c.Call(ctx, "channels.setTopic", Params{"channel": channelID, "topic": topic})
}

// OpenDialog opens a modal dialog in response to the interaction identified
// by triggerID.
func (c *Client) OpenDialog(ctx context.Context, dialog slack.Dialog, triggerID string) (Result, error) {
	if triggerID == "" {
		return nil, errors.New("trigger id must be set")
	}

	return c.Call(ctx, "dialog.open", Params{
		"dialog":     dialog,
		"trigger_id": triggerID,
	})
}

// RTMConnection is the result of rtm.connect: the WebSocket URL to open and
// the identity the token belongs to.
type RTMConnection struct {
	URL  string
	Self slack.User
}

// RTMConnect starts a real-time messaging session handshake.
func (c *Client) RTMConnect(ctx context.Context) (RTMConnection, error) {
	result, err := c.Call(ctx, "rtm.connect", nil)
	if err != nil {
		return RTMConnection{}, err
	}

	conn := RTMConnection{}
	conn.URL, _ = result["url"].(string)

	if err := result.Decode("self", &conn.Self); err != nil {
		return RTMConnection{}, fmt.Errorf("rtm.connect: %w", err)
	}

	if conn.URL == "" {
		return RTMConnection{}, errors.New("rtm.connect: response has no url")
	}

	return conn, nil
}
