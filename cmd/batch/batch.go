// Package batch handles batch processing of statement directories
package batch

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"

	"fjacquet/statement-analyzer/cmd/common"
	"fjacquet/statement-analyzer/cmd/root"
	"fjacquet/statement-analyzer/internal/batch"
	internalcommon "fjacquet/statement-analyzer/internal/common"
	"fjacquet/statement-analyzer/internal/container"
	"fjacquet/statement-analyzer/internal/fileutils"
	"fjacquet/statement-analyzer/internal/logging"

	"github.com/spf13/cobra"
)

// Options holds the batch flags.
type Options struct {
	Merge  bool
	Prefix string
}

var flags = Options{Prefix: "statements"}

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch <input-dir> [output-dir]",
	Short: "Convert every statement CSV in a directory",
	Long: `Convert every CSV statement in a directory to JSON.

Each file is converted independently into the output directory, which
defaults to the input directory. With --merge the statements are combined
into one chronological file named after their date range; overlapping rows
are reported but kept.`,
	Example: `  statement-analyzer batch exports/ converted/
  statement-analyzer batch exports/ --merge --prefix savings`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.OutOrStdout(), root.GetContainer(), args, flags)
	},
}

func init() {
	Cmd.Flags().BoolVarP(&flags.Merge, "merge", "m", false, "Merge all statements into a single JSON file")
	Cmd.Flags().StringVar(&flags.Prefix, "prefix", "statements", "File name prefix of the merged output")
}

// Run converts or merges the statements in args[0].
func Run(out io.Writer, c *container.Container, args []string, opts Options) error {
	inputDir := args[0]
	outputDir := inputDir
	if len(args) > 1 {
		outputDir = args[1]
	}

	if !fileutils.DirectoryExists(inputDir) {
		return common.Fail(out, fmt.Errorf("input directory not found -> %s", inputDir))
	}
	if err := fileutils.EnsureDirectoryExists(outputDir); err != nil {
		return common.Fail(out, err)
	}

	files, err := batch.FindStatements(inputDir)
	if err != nil {
		return common.Fail(out, err)
	}
	if len(files) == 0 {
		_, _ = fmt.Fprintf(out, "⚠️ No CSV statements found in %s\n", inputDir)
		return nil
	}

	if opts.Merge {
		return merge(out, c, files, outputDir, opts.Prefix)
	}
	return convertEach(out, c, files, outputDir)
}

func convertEach(out io.Writer, c *container.Container, files []string, outputDir string) error {
	logger := c.GetLogger()
	converted := 0
	for _, file := range files {
		output := filepath.Join(outputDir, fileutils.DeriveOutputPath(filepath.Base(file), ".json"))
		if _, err := common.ConvertFile(c.GetNormalizer(), file, output, c.GetConfig().JSONOptions(), logger); err != nil {
			_, _ = fmt.Fprintln(out, common.FailureMessage(err))
			continue
		}
		converted++
	}

	logger.Info("Batch conversion finished",
		logging.F(logging.FieldCount, converted),
		logging.F("failed", len(files)-converted))
	_, _ = fmt.Fprintf(out, "✅ Converted %d of %d statements into %s\n", converted, len(files), outputDir)
	if converted < len(files) {
		return common.ErrCommandFailed
	}
	return nil
}

func merge(out io.Writer, c *container.Container, files []string, outputDir, prefix string) error {
	res, err := batch.NewAggregator(c.GetNormalizer(), c.GetLogger()).Aggregate(files)
	if err != nil {
		return common.Fail(out, err)
	}
	for _, skipped := range res.Skipped {
		_, _ = fmt.Fprintf(out, "⚠️ Skipped %s\n", skipped)
	}

	var buf bytes.Buffer
	if err := internalcommon.WriteRecordsJSON(&buf, res.Records, c.GetConfig().JSONOptions()); err != nil {
		return common.Fail(out, err)
	}
	output := filepath.Join(outputDir, batch.OutputFilename(prefix, res.DateRange))
	if err := fileutils.WriteFile(output, buf.Bytes(), 0o600); err != nil {
		return common.Fail(out, err)
	}

	if res.Duplicates > 0 {
		_, _ = fmt.Fprintf(out, "⚠️ %d potential duplicate transactions kept\n", res.Duplicates)
	}
	_, _ = fmt.Fprintf(out, "✅ Merged %d transactions from %d statements: %s\n", len(res.Records), len(res.Files), output)
	return nil
}
