package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"petdoc-id/internal/adapters/auth/jwtauth"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password [password]",
	Short: "Print the bcrypt hash for auth.admin_pass_hash",
	Long:  "Prints the bcrypt hash of the given password. Without an argument the password is read from the first line of stdin.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var pass string
		if len(args) == 1 {
			pass = args[0]
		} else {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("reading password: %w", err)
			}
			pass = strings.TrimRight(line, "\r\n")
		}
		if pass == "" {
			return errors.New("password is empty")
		}

		hash, err := jwtauth.HashPassword(pass)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
		return err
	},
}
