package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docfill/internal/datasource"
	"github.com/dgallion1/docfill/internal/generator"
	"github.com/dgallion1/docfill/internal/resolve"
	"github.com/spf13/cobra"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Template string
	Data     string
	Output   string
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Fill a template with data and write the result",
		Long: `Fill every ##path tag in a .docx template with the value found at that
path in the data file. Missing values become empty text.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Template, "template", "t", "", "template .docx path")
	cmd.Flags().StringVarP(&opts.Data, "data", "d", "", "data file (.json, .yaml, .yml, .csv)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output path (default <template>-filled.docx)")
	cmd.MarkFlagRequired("template")
	cmd.MarkFlagRequired("data")

	return cmd
}

func runGenerate(opts *GenerateOptions, cmd *cobra.Command) error {
	resolver, err := loadData(opts.Data)
	if err != nil {
		return err
	}

	tpl, err := os.Open(opts.Template)
	if err != nil {
		return WrapExitError(ExitCommandError, "open template", err)
	}
	defer tpl.Close()

	gen := generator.New(generator.WithLogger(opts.logger(cmd.ErrOrStderr())))
	out, err := gen.Generate(tpl, resolver)
	if err != nil {
		return WrapExitError(ExitFailure, "generate", err)
	}

	output := opts.Output
	if output == "" {
		output = defaultOutput(opts.Template)
	}
	f, err := os.Create(output)
	if err != nil {
		return WrapExitError(ExitCommandError, "create output", err)
	}
	if _, err := io.Copy(f, out); err != nil {
		f.Close()
		return WrapExitError(ExitFailure, "write output", err)
	}
	if err := f.Close(); err != nil {
		return WrapExitError(ExitFailure, "write output", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return formatter.Result(map[string]any{"output": output}, "wrote "+output)
}

// loadData opens a data file and builds a resolver for it.
func loadData(path string) (*resolve.JSON, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "open data", err)
	}
	defer f.Close()

	r, err := datasource.Resolver(f, path)
	if err != nil {
		return nil, WrapExitError(ExitFailure, "load data", err)
	}
	return r, nil
}

func defaultOutput(template string) string {
	return strings.TrimSuffix(template, filepath.Ext(template)) + "-filled.docx"
}
