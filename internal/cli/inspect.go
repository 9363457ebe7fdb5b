package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/dgallion1/docfill/internal/generator"
	"github.com/dgallion1/docfill/internal/resolve"
	"github.com/spf13/cobra"
)

// InspectOptions holds flags for the inspect command.
type InspectOptions struct {
	*RootOptions
	Data string
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InspectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "inspect <template>",
		Short: "List the tags a template contains",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Data, "data", "d", "", "data file to resolve tags against")

	return cmd
}

func runInspect(opts *InspectOptions, template string, cmd *cobra.Command) error {
	var resolver resolve.Resolver
	if opts.Data != "" {
		r, err := loadData(opts.Data)
		if err != nil {
			return err
		}
		resolver = r
	}

	f, err := os.Open(template)
	if err != nil {
		return WrapExitError(ExitCommandError, "open template", err)
	}
	defer f.Close()

	pkg, err := generator.Open(f)
	if err != nil {
		return WrapExitError(ExitFailure, "inspect", err)
	}

	gen := generator.New(generator.WithLogger(opts.logger(cmd.ErrOrStderr())))
	reports := gen.Inspect(pkg.Document, resolver)
	if reports == nil {
		reports = []generator.TagReport{}
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return formatter.Result(map[string]any{"template": template, "tags": reports}, tagTable(reports, resolver != nil))
}

func tagTable(reports []generator.TagReport, withData bool) string {
	if len(reports) == 0 {
		return "no tags found"
	}
	var sb strings.Builder
	for i, r := range reports {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%-24s x%d", r.Tag, r.Count)
		if withData {
			if r.Resolved {
				fmt.Fprintf(&sb, "  = %q", r.Value)
			} else {
				sb.WriteString("  (unresolved)")
			}
		}
	}
	return sb.String()
}
