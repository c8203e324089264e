package client

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

// Snapshot is the workspace state needed to start a real-time session.
// Channels holds public channels followed by private channels, each in API
// order.
type Snapshot struct {
	IMs      []IM
	Self     slack.User
	Users    []slack.User
	Channels []slack.Channel
	URL      string
}

// BuildSnapshot lists channels, performs the rtm.connect handshake, then
// lists direct messages and users. It returns either a complete snapshot or
// the first error.
func (c *Client) BuildSnapshot(ctx context.Context) (*Snapshot, error) {
	if _, err := c.transport(); err != nil {
		return nil, err
	}

	public, err := c.ChannelsList(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list public channels: %w", err)
	}

	private, err := c.GroupsList(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list private channels: %w", err)
	}

	var publicChannels, privateChannels []slack.Channel
	if err := public.Decode("channels", &publicChannels); err != nil {
		return nil, err
	}
	if err := private.Decode("groups", &privateChannels); err != nil {
		return nil, err
	}

	channels := make([]slack.Channel, 0, len(publicChannels)+len(privateChannels))
	channels = append(channels, publicChannels...)
	channels = append(channels, privateChannels...)

	conn, err := c.RTMConnect(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RTM: %w", err)
	}

	c.options.requestLogger.Debugf("Start building workspace snapshot")

	ims, err := c.IMList(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list direct messages: %w", err)
	}

	var imList []IM
	if err := ims.Decode("ims", &imList); err != nil {
		return nil, err
	}

	users, err := c.UsersList(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	var userList []slack.User
	if err := users.Decode("members", &userList); err != nil {
		return nil, err
	}

	c.options.requestLogger.Debugf("Done building workspace snapshot")

	return &Snapshot{
		IMs:      imList,
		Self:     conn.Self,
		Users:    userList,
		Channels: channels,
		URL:      conn.URL,
	}, nil
}
