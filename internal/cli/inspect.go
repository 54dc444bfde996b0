package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/owlnet/pkg/convert"
)

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	termsOpts
	json bool // print JSON instead of a table
}

// inspectCommand creates the inspect command, which prints one intermediate
// structure of a conversion.
func (c *CLI) inspectCommand() *cobra.Command {
	var opts inspectOpts

	names := make([]string, 0, len(convert.Views()))
	for _, v := range convert.Views() {
		names = append(names, string(v))
	}

	cmd := &cobra.Command{
		Use:   "inspect <view> <ontology.owl>",
		Short: "Show an intermediate structure of a conversion",
		Long: fmt.Sprintf(`Show an intermediate structure of a conversion, for finding out why a
class ended up where it did or why a conversion was rejected.

Views: %s

Examples:
  owlnet inspect linking-tree nausea.owl
  owlnet inspect nodes nausea.owl --json`, strings.Join(names, ", ")),
		Args:      cobra.ExactArgs(2),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := convert.ParseView(args[0])
			if err != nil {
				return err
			}
			return c.runInspect(cmd.Context(), view, args[1], &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&opts.json, "json", false, "print JSON instead of a table")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, view convert.View, input string, opts *inspectOpts) error {
	popts, err := opts.pipelineOptions(input)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return err
	}
	defer runner.Close()

	result, err := runner.Inspect(ctx, popts, view)
	if err != nil {
		return err
	}
	if opts.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return printView(os.Stdout, view, result)
}

// printView renders a view result as a table.
func printView(w io.Writer, view convert.View, result any) error {
	var (
		headers []string
		rows    [][]string
	)

	switch v := result.(type) {
	case convert.Labels:
		headers = []string{"IRI", "Label"}
		for _, k := range slices.Sorted(maps.Keys(v)) {
			rows = append(rows, []string{k, v[k]})
		}
	case map[string][]string:
		headers = []string{"Child", "Forbidden parents"}
		for _, k := range slices.Sorted(maps.Keys(v)) {
			rows = append(rows, []string{k, strings.Join(v[k], ", ")})
		}
	case []convert.Entry:
		headers = []string{"Child", "Parent", "Relation"}
		for _, e := range v {
			for i, edge := range e.Parents {
				child := e.Child
				if i > 0 {
					child = ""
				}
				rows = append(rows, []string{child, edge.Parent, edge.Relation.String()})
			}
		}
	case [][]string:
		headers = []string{"#", "Disjoint classes"}
		for i, group := range v {
			rows = append(rows, []string{fmt.Sprint(i + 1), strings.Join(group, ", ")})
		}
	case []convert.NodeView:
		headers = []string{"#", "Node", "Parents"}
		for i, n := range v {
			rows = append(rows, []string{fmt.Sprint(i + 1), n.ID, strings.Join(n.Parents, ", ")})
		}
	default:
		return fmt.Errorf("no table layout for view %q", view)
	}

	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, StyleDim.Render(fmt.Sprintf("%s: empty", view)))
		return err
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	_, err := fmt.Fprintln(w, StyleTitle.Render(string(view)))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, t.Render())
	return err
}
