// Package chat handles the one-shot chat command
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"fjacquet/statement-analyzer/cmd/common"
	"fjacquet/statement-analyzer/cmd/root"
	"fjacquet/statement-analyzer/internal/container"
	"fjacquet/statement-analyzer/internal/session"

	"github.com/spf13/cobra"
)

// Options holds the chat flags.
type Options struct {
	JSON bool
}

var flags Options

// Cmd represents the chat command
var Cmd = &cobra.Command{
	Use:   "chat <input-csv|json> <question...>",
	Short: "Ask how much was spent on a keyword",
	Long: `Load a statement and answer one question about it.

The keyword is taken from the first quoted phrase of the question. Without
quotes it is extracted by Gemini when ai.enabled is set, and otherwise the
last word of the question is used.`,
	Example: `  statement-analyzer chat statement.json "How much did I spend on 'rent'?"
  statement-analyzer chat statement.csv how much went to swiggy`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), root.GetContainer(), args, flags)
	},
}

func init() {
	Cmd.Flags().BoolVar(&flags.JSON, "json", false, "Print the structured reply as JSON")
}

// Run loads args[0] into the session and answers the question formed by the
// remaining arguments.
func Run(ctx context.Context, out, errOut io.Writer, c *container.Container, args []string, opts Options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	input := args[0]
	question := strings.Join(args[1:], " ")

	if err := common.CheckInput(input); err != nil {
		return common.Fail(out, err)
	}
	sess := c.GetSession()
	ds, err := sess.Load(input)
	if err != nil {
		return common.Fail(out, err)
	}
	_, _ = fmt.Fprintln(errOut, session.StatusMessage(ds))

	reply := c.GetAgent().Ask(ctx, sess, question)
	if !opts.JSON {
		_, _ = fmt.Fprintln(out, reply.Text)
		return nil
	}

	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(reply); err != nil {
		return common.Fail(out, err)
	}
	return nil
}
