package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docfill/internal/generator"
	"github.com/dgallion1/docfill/internal/preview"
	"github.com/spf13/cobra"
)

// PreviewOptions holds flags for the preview command.
type PreviewOptions struct {
	*RootOptions
	Template string
	Data     string
	Output   string
}

// NewPreviewCommand creates the preview command.
func NewPreviewCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PreviewOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Fill a template and write its text as HTML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Template, "template", "t", "", "template .docx path")
	cmd.Flags().StringVarP(&opts.Data, "data", "d", "", "data file (.json, .yaml, .yml, .csv)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output path (default stdout)")
	cmd.MarkFlagRequired("template")
	cmd.MarkFlagRequired("data")

	return cmd
}

func runPreview(opts *PreviewOptions, cmd *cobra.Command) error {
	resolver, err := loadData(opts.Data)
	if err != nil {
		return err
	}

	f, err := os.Open(opts.Template)
	if err != nil {
		return WrapExitError(ExitCommandError, "open template", err)
	}
	defer f.Close()

	gen := generator.New(generator.WithLogger(opts.logger(cmd.ErrOrStderr())))
	out, err := gen.Generate(f, resolver)
	if err != nil {
		return WrapExitError(ExitFailure, "preview", err)
	}

	title := strings.TrimSuffix(filepath.Base(opts.Template), filepath.Ext(opts.Template))
	page, err := preview.RenderPackage(out, title)
	if err != nil {
		return WrapExitError(ExitFailure, "preview", err)
	}

	if opts.Output == "" {
		_, err = cmd.OutOrStdout().Write(page)
		return err
	}
	if err := os.WriteFile(opts.Output, page, 0o644); err != nil {
		return WrapExitError(ExitCommandError, "write output", err)
	}
	return nil
}
