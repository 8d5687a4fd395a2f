package main

import (
	"errors"
	"fmt"
	"os"

	"fjacquet/statement-analyzer/cmd/analyze"
	"fjacquet/statement-analyzer/cmd/batch"
	"fjacquet/statement-analyzer/cmd/chat"
	"fjacquet/statement-analyzer/cmd/common"
	"fjacquet/statement-analyzer/cmd/convert"
	"fjacquet/statement-analyzer/cmd/export"
	"fjacquet/statement-analyzer/cmd/profiles"
	"fjacquet/statement-analyzer/cmd/root"
	"fjacquet/statement-analyzer/cmd/serve"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(convert.Cmd)
	root.Cmd.AddCommand(analyze.Cmd)
	root.Cmd.AddCommand(chat.Cmd)
	root.Cmd.AddCommand(export.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
	root.Cmd.AddCommand(profiles.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		if !errors.Is(err, common.ErrCommandFailed) {
			fmt.Println("❌ Error:", err)
		}
		os.Exit(1)
	}
}
