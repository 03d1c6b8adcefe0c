package cli

import (
	"fmt"
	"io"

	"github.com/Bahjat/castify/internal/castify"
	"github.com/Bahjat/castify/internal/model"
	"github.com/Bahjat/castify/internal/platform/errs"
	"github.com/spf13/cobra"
)

type castOptions struct {
	dryRun      bool
	imagePolicy string
}

func newCastCommand() *cobra.Command {
	var opts castOptions

	cmd := &cobra.Command{
		Use:   "cast <url>",
		Short: "Publish a cast for a single link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCast(cmd, opts, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the cast without publishing it")
	cmd.Flags().StringVar(&opts.imagePolicy, "image-policy", "", "What to do without an og:image: required or optional (overrides IMAGE_POLICY)")
	cmd.Flags().SortFlags = false

	return cmd
}

func runCast(cmd *cobra.Command, opts castOptions, targetURL string) error {
	cfg, err := loadConfig(opts.imagePolicy)
	if err != nil {
		return err
	}

	engine, err := newEngine(cfg, !opts.dryRun)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.dryRun {
		payload, err := engine.Prepare(cmd.Context(), targetURL)
		if err != nil {
			return classified(err)
		}
		printCast(out, payload.Text, payload.Embeds)
		_, _ = fmt.Fprintf(out, "Compose: %s\n", castify.ComposerURL(payload))
		return nil
	}

	result, err := engine.Convert(cmd.Context(), targetURL)
	if err != nil {
		return classified(err)
	}
	_, _ = fmt.Fprintf(out, "Hash: %s\n", result.Hash)
	printCast(out, result.Text, result.Embeds)
	_, _ = fmt.Fprintf(out, "URL: %s\n", castify.CastURL(result.Hash))
	return nil
}

func printCast(w io.Writer, text string, embeds []model.Embed) {
	_, _ = fmt.Fprintf(w, "Text:\n%s\n", text)
	for i, e := range embeds {
		_, _ = fmt.Fprintf(w, "Embed %d: %s\n", i+1, e.URL)
	}
}

// classifiedError shows the user-facing message while keeping the original
// error reachable through errors.As.
type classifiedError struct {
	message string
	cause   error
}

func (e *classifiedError) Error() string { return e.message }
func (e *classifiedError) Unwrap() error { return e.cause }

func classified(err error) error {
	appErr := errs.Classify(err)
	return &classifiedError{message: appErr.Message, cause: err}
}
