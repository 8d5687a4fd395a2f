// Package profiles handles the header profile commands
package profiles

import (
	"fmt"
	"io"

	"fjacquet/statement-analyzer/cmd/common"
	"fjacquet/statement-analyzer/cmd/root"
	internalcommon "fjacquet/statement-analyzer/internal/common"
	"fjacquet/statement-analyzer/internal/container"
	"fjacquet/statement-analyzer/internal/store"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var addFlags store.Profile

// Cmd represents the profiles command
var Cmd = &cobra.Command{
	Use:   "profiles",
	Short: "List, show and add CSV header profiles",
	Long: `Header profiles name the columns of a bank's statement export. The built-in
"default" profile matches Tran Date, CHQNO, PARTICULARS, DR, CR, BAL and SOL.
Additional profiles are read from profiles.file and selected with --profile.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return List(cmd.OutOrStdout(), root.GetContainer())
	},
}

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print one profile as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Show(cmd.OutOrStdout(), root.GetContainer(), args[0])
	},
}

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add or replace a profile in the profiles file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := addFlags
		p.Name = args[0]
		return Add(cmd.OutOrStdout(), root.GetContainer(), p)
	},
}

func init() {
	f := addCmd.Flags()
	f.StringVar(&addFlags.Description, "description", "", "Free-form description")
	f.StringVar(&addFlags.Delimiter, "delimiter", "", "CSV delimiter of the export")
	f.StringVar(&addFlags.Encoding, "encoding", "", "Character encoding (utf-8, windows-1252, iso-8859-1)")
	f.StringVar(&addFlags.Columns.Date, "date-column", "", "Transaction date column")
	f.StringVar(&addFlags.Columns.Cheque, "cheque-column", "", "Cheque number column")
	f.StringVar(&addFlags.Columns.Description, "description-column", "", "Description column")
	f.StringVar(&addFlags.Columns.Debit, "debit-column", "", "Debit amount column")
	f.StringVar(&addFlags.Columns.Credit, "credit-column", "", "Credit amount column")
	f.StringVar(&addFlags.Columns.Balance, "balance-column", "", "Balance column")
	f.StringVar(&addFlags.Columns.Branch, "branch-column", "", "Branch column")

	Cmd.AddCommand(showCmd, addCmd)
}

// List prints every known profile, marking the active one.
func List(out io.Writer, c *container.Container) error {
	profiles, err := c.GetProfileStore().LoadProfiles()
	if err != nil {
		return common.Fail(out, err)
	}
	active := c.GetProfile().Name
	for _, p := range profiles {
		marker := " "
		if p.Name == active {
			marker = "*"
		}
		_, _ = fmt.Fprintf(out, "%s %-16s %s\n", marker, p.Name, p.Description)
	}
	return nil
}

// Show prints the named profile as YAML.
func Show(out io.Writer, c *container.Container, name string) error {
	p, err := c.GetProfileStore().Get(name)
	if err != nil {
		return common.Fail(out, err)
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return common.Fail(out, err)
	}
	return enc.Close()
}

// Add saves p, filling unset columns with the default names.
func Add(out io.Writer, c *container.Container, p store.Profile) error {
	p.Columns = p.Columns.WithDefaults()
	if p.Encoding != "" {
		if err := internalcommon.ValidateEncoding(p.Encoding); err != nil {
			return common.Fail(out, err)
		}
	}
	if err := c.GetProfileStore().SaveProfile(p); err != nil {
		return common.Fail(out, err)
	}
	_, _ = fmt.Fprintf(out, "✅ Profile saved: %s\n", p.Name)
	return nil
}
