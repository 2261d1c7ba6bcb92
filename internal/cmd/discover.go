package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/btrkeks/bookminer/internal/errors"
)

var decksCmd = &cobra.Command{
	Use:   "decks",
	Short: "List the decks Anki knows about",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listNames(cmd, "Deck", func(ctx context.Context, env *environment) ([]string, error) {
			return env.ankiClient().DeckNames(ctx)
		})
	},
}

var noteTypesCmd = &cobra.Command{
	Use:   "note-types",
	Short: "List the note types Anki knows about",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listNames(cmd, "Note type", func(ctx context.Context, env *environment) ([]string, error) {
			return env.ankiClient().ModelNames(ctx)
		})
	},
}

var fieldsCmd = &cobra.Command{
	Use:   "fields <note type>",
	Short: "List the fields of a note type in order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return listNames(cmd, "Field", func(ctx context.Context, env *environment) ([]string, error) {
			return env.ankiClient().ModelFieldNames(ctx, args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(decksCmd)
	rootCmd.AddCommand(noteTypesCmd)
	rootCmd.AddCommand(fieldsCmd)
}

func listNames(cmd *cobra.Command, header string, fetch func(context.Context, *environment) ([]string, error)) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer env.close()

	names, err := fetch(cmd.Context(), env)
	if err != nil {
		if errors.IsRetryable(err) {
			return fmt.Errorf("%w (is Anki running with AnkiConnect installed?)", err)
		}
		return err
	}

	rows := make([][]string, len(names))
	for i, name := range names {
		rows[i] = []string{strconv.Itoa(i + 1), name}
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"#", header}, rows, []columnAlignment{alignRight, alignLeft}))
	return nil
}
