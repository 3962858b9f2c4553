package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"petdoc-id/internal/domain/intake"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a registration message into a pet draft",
	Long:  "Runs the intake parser over a \"Label: value\" message (file or stdin) and prints the draft and its warnings as JSON.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := cmd.InOrStdin()
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		text, err := io.ReadAll(io.LimitReader(in, 1<<20))
		if err != nil {
			return fmt.Errorf("reading message: %w", err)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(intake.Parse(string(text)))
	},
}
