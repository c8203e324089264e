package client

import (
	"context"
	"errors"
	"fmt"
)

// Conversation type filters accepted by conversations.list.
const (
	TypePublicChannel  = "public_channel"
	TypePrivateChannel = "private_channel"
	TypeMPIM           = "mpim"
	TypeIM             = "im"
)

// listPageSize keeps the number of paginated requests low in large workspaces.
const listPageSize = 500

// IM is a direct-message channel with a single user.
type IM struct {
	ID     string `json:"id"`
	UserID string `json:"user"`
}

// IMOpen opens (or returns the existing) direct-message channel with userID.
func (c *Client) IMOpen(ctx context.Context, userID string) (IM, error) {
	result, err := c.Call(ctx, "conversations.open", Params{"user": userID})
	if err != nil {
		return IM{}, err
	}

	var channel struct {
		ID string `json:"id"`
	}
	if err := result.Decode("channel", &channel); err != nil {
		return IM{}, fmt.Errorf("conversations.open: %w", err)
	}

	if channel.ID == "" {
		return IM{}, errors.New("conversations.open: response has no channel id")
	}

	return IM{ID: channel.ID, UserID: userID}, nil
}

func (c *Client) ChannelsInfo(ctx context.Context, channelID string) (Result, error) {
	return c.Call(ctx, "channels.info", Params{"channel": channelID})
}

// ConversationsList lists every conversation of the given types, following
// cursors until the last page. Extra params are sent with every page.
func (c *Client) ConversationsList(ctx context.Context, types []string, params Params) (Result, error) {
	if len(types) == 0 {
		types = []string{TypePublicChannel}
	}

	params = params.clone()
	params["types"] = types
	params["limit"] = listPageSize

	return c.CallPaginated(ctx, "conversations.list", params, "channels")
}

func (c *Client) ChannelsList(ctx context.Context, params Params) (Result, error) {
	return c.ConversationsList(ctx, []string{TypePublicChannel}, params)
}

// GroupsList lists private channels. The list is also published under "groups".
func (c *Client) GroupsList(ctx context.Context, params Params) (Result, error) {
	return c.listAs(ctx, TypePrivateChannel, "groups", params)
}

// MPIMList lists multi-party direct messages, also published under "groups".
func (c *Client) MPIMList(ctx context.Context, params Params) (Result, error) {
	return c.listAs(ctx, TypeMPIM, "groups", params)
}

// IMList lists direct messages, also published under "ims".
func (c *Client) IMList(ctx context.Context, params Params) (Result, error) {
	return c.listAs(ctx, TypeIM, "ims", params)
}

func (c *Client) listAs(ctx context.Context, conversationType, field string, params Params) (Result, error) {
	result, err := c.ConversationsList(ctx, []string{conversationType}, params)
	if err != nil {
		return nil, err
	}

	result[field] = result["channels"]

	return result, nil
}

// UsersList lists every member of the workspace under "members".
func (c *Client) UsersList(ctx context.Context) (Result, error) {
	return c.CallPaginated(ctx, "users.list", Params{"limit": listPageSize}, "members")
}
