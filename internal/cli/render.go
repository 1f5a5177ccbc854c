package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"impractical.co/talkpage"
	"impractical.co/talkpage/internal/config"
)

// newRenderCommand creates the "render" subcommand that renders a talk page from a render context document.
func newRenderCommand(cfg config.Config) *cobra.Command {
	var (
		inputPath  string
		outputPath string
		variant    string
		themeDir   string
		title      string
		minRepeat  int
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a talk page from a YAML or JSON render context",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())

			v, err := talkpage.ParseVariant(variant)
			if err != nil {
				return err
			}

			in, err := config.LoadInput(inputPath, cmd.InOrStdin())
			if err != nil {
				return err
			}
			rc := in.RenderContext(talkpage.RedisplayPolicy{MinComments: minRepeat})

			opts := []talkpage.Option{talkpage.WithDefaultTitle(title)}
			if themeDir != "" {
				info, err := os.Stat(themeDir)
				if err != nil {
					return fmt.Errorf("open theme directory %q: %w", themeDir, err)
				}
				if !info.IsDir() {
					return fmt.Errorf("theme %q is not a directory", themeDir)
				}
				opts = append(opts, talkpage.WithTheme(talkpage.NewCachedTheme(os.DirFS(themeDir))))
				logger.Debug("using theme", "dir", themeDir)
			}
			view := talkpage.NewView(opts...)

			ctx := talkpage.LoggingContext(cmd.Context(), logger)
			if outputPath == "" || outputPath == "-" {
				return view.Render(ctx, cmd.OutOrStdout(), v, rc)
			}

			out, err := view.HTML(ctx, v, rc)
			if err != nil {
				return err
			}
			if err := writeFile(outputPath, string(out)); err != nil {
				return err
			}
			logger.Info("rendered talk page", "path", outputPath, "variant", v, "redisplay", rc.Redisplay)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "-", "Render context document to read (- for stdin)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "-", "File to write the talk page to (- for stdout)")
	cmd.Flags().StringVar(&variant, "variant", cfg.Variant, "Talk page variant (default, titled)")
	cmd.Flags().StringVar(&themeDir, "theme", cfg.ThemeDir, "Directory of template overrides")
	cmd.Flags().StringVar(&title, "title-default", cfg.DefaultTitle, "Title used when the document doesn't have one")
	cmd.Flags().IntVar(&minRepeat, "redisplay-min-comments", cfg.RedisplayMinComments, "Repeat the comment link for threads with at least this many comments, when the document doesn't say (0 disables)")

	return cmd
}

func writeFile(path, contents string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	_, err = io.WriteString(f, contents)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("write talk page to %q: %w", path, err)
	}
	return nil
}
