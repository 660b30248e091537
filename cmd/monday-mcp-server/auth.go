package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/krsjen/monday-mcp-server/internal/credential"
	"github.com/spf13/cobra"
)

var (
	authCmd = &cobra.Command{
		Use:   "auth",
		Short: "Manage the Monday.com API key stored in the system keyring",
	}

	setKeyCmd = &cobra.Command{
		Use:   "set-key [api-key]",
		Short: "Store the Monday.com API key in the system keyring",
		Long: `Store the Monday.com API key in the system keyring. The key is read from
standard input when it is not given as an argument. MONDAY_API_KEY still takes
precedence over the stored key.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := credential.Open()
			if err != nil {
				return err
			}
			return setKey(store, cmd.InOrStdin(), cmd.OutOrStdout(), args)
		},
	}

	clearKeyCmd = &cobra.Command{
		Use:   "clear-key",
		Short: "Remove the Monday.com API key from the system keyring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := credential.Open()
			if err != nil {
				return err
			}
			if err := store.Delete(credential.APIKey); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Monday.com API key removed.")
			return nil
		},
	}
)

func init() {
	authCmd.AddCommand(setKeyCmd)
	authCmd.AddCommand(clearKeyCmd)
}

func setKey(store *credential.Store, in io.Reader, out io.Writer, args []string) error {
	var key string
	if len(args) == 1 {
		key = args[0]
	} else {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("reading API key: %w", err)
		}
		key = line
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("API key must not be empty")
	}
	if err := store.Set(credential.APIKey, key); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(out, "Monday.com API key stored.")
	return nil
}
