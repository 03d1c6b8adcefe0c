package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Execute runs the root command until it finishes or the process receives
// SIGINT or SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCommand().ExecuteContext(ctx)
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "castify",
		Short: "Turn a video link into a Farcaster cast",
		Long: "castify fetches a page, reads its Open Graph title and image, and publishes " +
			"a cast embedding the link through the Neynar API. Configuration comes from the " +
			"environment; flags override it.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: `  castify serve --port 3000
  castify cast https://www.youtube.com/watch?v=dQw4w9WgXcQ
  castify cast --dry-run --image-policy optional https://example.com/clip`,
	}

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newCastCommand())

	return cmd
}
