package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	client "github.com/peteraglen/slack-api-client"
	"github.com/peteraglen/slack-api-client/internal/config"
)

// Version information, injected at build time via ldflags.
var (
	Version   = "dev"
	Build     = "unknown"
	BuildTime = "unknown"
)

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "slack-snapshot",
		Short: "Inspect a Slack workspace through the Web API",
		Long: `slack-snapshot talks to the Slack Web API with a bot token.

It follows paginated list endpoints to the end, waits out rate limits as the
server asks, and can assemble the workspace snapshot a bot needs before it
opens a real-time session. The token is read from the config file, a .env file
or SLACK_TOKEN.`,
		Version:       fmt.Sprintf("%s (build %s, %s)", Version, Build, BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "slack.yaml", "path to the YAML config file")
	rootCmd.AddCommand(newSnapshotCmd(&configPath), newListCmd(&configPath), newPostCmd(&configPath))

	return rootCmd
}

func newSnapshotCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot",
		Short: "Print a summary of the workspace snapshot as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := connect(cmd.Context(), *configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			snapshot, err := c.BuildSnapshot(cmd.Context())
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), summarize(snapshot))
		},
	}
}

func newListCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:       "list {channels|groups|mpims|ims|users}",
		Short:     "List every item of one kind as JSON",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"channels", "groups", "mpims", "ims", "users"},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := connect(cmd.Context(), *configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			var (
				result client.Result
				field  = args[0]
			)

			switch args[0] {
			case "channels":
				result, err = c.ChannelsList(ctx, nil)
			case "groups":
				result, err = c.GroupsList(ctx, nil)
			case "mpims":
				result, err = c.MPIMList(ctx, nil)
				field = "groups"
			case "ims":
				result, err = c.IMList(ctx, nil)
			case "users":
				result, err = c.UsersList(ctx)
				field = "members"
			default:
				return fmt.Errorf("unknown list kind %q", args[0])
			}
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), result[field])
		},
	}
}

func newPostCmd(configPath *string) *cobra.Command {
	var threadTS string

	postCmd := &cobra.Command{
		Use:   "post CHANNEL TEXT...",
		Short: "Post a message using the configured posting defaults",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := connect(cmd.Context(), *configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			var result client.Result
			if threadTS != "" {
				result, err = c.ReplyInThread(cmd.Context(), args[0], args[1:], threadTS)
			} else {
				result, err = c.SendMessages(cmd.Context(), args[0], args[1:])
			}
			if err != nil {
				return err
			}

			ts, _ := result["ts"].(string)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), ts)
			return err
		},
	}

	postCmd.Flags().StringVar(&threadTS, "thread", "", "reply in the thread with this timestamp")

	return postCmd
}

func connect(ctx context.Context, configPath string, logOutput io.Writer) (*client.Client, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(logOutput, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))

	opts := append(cfg.Options(), client.WithRequestLogger(client.NewSlogLogger(logger)))
	c := client.New(cfg.Token, opts...)

	if err := c.Connect(ctx); err != nil {
		return nil, err
	}

	return c, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type snapshotSummary struct {
	URL      string `json:"url"`
	SelfID   string `json:"self_id"`
	SelfName string `json:"self_name"`
	Users    int    `json:"users"`
	Channels int    `json:"channels"`
	IMs      int    `json:"ims"`
}

func summarize(s *client.Snapshot) snapshotSummary {
	return snapshotSummary{
		URL:      s.URL,
		SelfID:   s.Self.ID,
		SelfName: s.Self.Name,
		Users:    len(s.Users),
		Channels: len(s.Channels),
		IMs:      len(s.IMs),
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
