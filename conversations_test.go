package client

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationsList_SendsTypesAndLimit(t *testing.T) {
	t.Parallel()

	fs := newFakeSlack(t)
	fs.queue("conversations.list", ok(`{"ok":true,"channels":[]}`))
	client, _ := newTestClient(t, fs)

	_, err := client.ConversationsList(context.Background(), []string{TypePublicChannel, TypePrivateChannel}, Params{"exclude_archived": true})
	require.NoError(t, err)

	form := fs.calls("conversations.list")[0].form
	assert.Equal(t, "public_channel,private_channel", form.Get("types"))
	assert.Equal(t, "500", form.Get("limit"))
	assert.Equal(t, "1", form.Get("exclude_archived"))
}

func TestListWrappers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		list      func(*Client) (Result, error)
		wantType  string
		wantAlias string
	}{
		{
			name:     "channels",
			list:     func(c *Client) (Result, error) { return c.ChannelsList(context.Background(), nil) },
			wantType: "public_channel",
		},
		{
			name:      "groups",
			list:      func(c *Client) (Result, error) { return c.GroupsList(context.Background(), nil) },
			wantType:  "private_channel",
			wantAlias: "groups",
		},
		{
			name:      "mpims",
			list:      func(c *Client) (Result, error) { return c.MPIMList(context.Background(), nil) },
			wantType:  "mpim",
			wantAlias: "groups",
		},
		{
			name:      "ims",
			list:      func(c *Client) (Result, error) { return c.IMList(context.Background(), nil) },
			wantType:  "im",
			wantAlias: "ims",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fs := newFakeSlack(t)
			fs.handle("conversations.list", func(form url.Values) fakeResponse {
				if form.Get("cursor") == "" {
					return ok(`{"ok":true,"channels":[{"id":"X1"}],"response_metadata":{"next_cursor":"n"}}`)
				}
				return ok(`{"ok":true,"channels":[{"id":"X2"}]}`)
			})
			client, _ := newTestClient(t, fs)

			result, err := tt.list(client)
			require.NoError(t, err)

			assert.Equal(t, []string{"X1", "X2"}, ids(t, result, "channels"))
			if tt.wantAlias != "" {
				assert.Equal(t, []string{"X1", "X2"}, ids(t, result, tt.wantAlias))
			}

			for _, call := range fs.calls("conversations.list") {
				assert.Equal(t, tt.wantType, call.form.Get("types"))
			}
		})
	}
}

func TestUsersList_Paginates(t *testing.T) {
	t.Parallel()

	fs := newFakeSlack(t)
	fs.queue("users.list",
		ok(`{"ok":true,"members":[{"id":"U1"}],"response_metadata":{"next_cursor":"u"}}`),
		ok(`{"ok":true,"members":[{"id":"U2"}],"response_metadata":{"next_cursor":""}}`),
	)
	client, _ := newTestClient(t, fs)

	result, err := client.UsersList(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"U1", "U2"}, ids(t, result, "members"))
	assert.Equal(t, "500", fs.calls("users.list")[0].form.Get("limit"))
}

func TestIMOpen(t *testing.T) {
	t.Parallel()

	fs := newFakeSlack(t)
	fs.queue("conversations.open", ok(`{"ok":true,"channel":{"id":"D123"}}`))
	client, _ := newTestClient(t, fs)

	im, err := client.IMOpen(context.Background(), "U42")
	require.NoError(t, err)

	assert.Equal(t, IM{ID: "D123", UserID: "U42"}, im)
	assert.Equal(t, "U42", fs.calls("conversations.open")[0].form.Get("user"))
}

func TestIMOpen_Errors(t *testing.T) {
	t.Parallel()

	t.Run("remote error", func(t *testing.T) {
		t.Parallel()

		fs := newFakeSlack(t)
		fs.queue("conversations.open", ok(`{"ok":false,"error":"user_not_found"}`))
		client, _ := newTestClient(t, fs)

		_, err := client.IMOpen(context.Background(), "U0")

		var remote *RemoteError
		require.ErrorAs(t, err, &remote)
		assert.Equal(t, "user_not_found", remote.Code)
	})

	t.Run("missing channel", func(t *testing.T) {
		t.Parallel()

		fs := newFakeSlack(t)
		fs.queue("conversations.open", ok(`{"ok":true}`))
		client, _ := newTestClient(t, fs)

		_, err := client.IMOpen(context.Background(), "U0")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no channel id")
	})
}

func TestChannelsInfo(t *testing.T) {
	t.Parallel()

	fs := newFakeSlack(t)
	fs.queue("channels.info", ok(`{"ok":true,"channel":{"id":"C1","name":"general"}}`))
	client, _ := newTestClient(t, fs)

	result, err := client.ChannelsInfo(context.Background(), "C1")
	require.NoError(t, err)

	channel, found := result["channel"].(map[string]any)
	require.True(t, found)
	assert.Equal(t, "general", channel["name"])
	assert.Equal(t, "C1", fs.calls("channels.info")[0].form.Get("channel"))
}
