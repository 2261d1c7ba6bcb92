package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/btrkeks/bookminer/internal/journal"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent submission attempts",
	Long: `Show recent submission attempts, newest first.

Every attempt to send a card is recorded, including attempts that found
Anki unreachable or that Anki rejected.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of attempts to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer env.close()

	j, err := journal.Open(cmd.Context(), env.layout.Journal())
	if err != nil {
		return err
	}
	defer j.Close()

	entries, err := j.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No submissions recorded yet.")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, historyRow(e))
	}
	fmt.Fprintln(out, renderTable(
		[]string{"When", "Attempt", "Outcome", "Note", "Deck", "Note type", "Tags", "Message"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft, alignRight},
	))
	return nil
}

func historyRow(e journal.Entry) []string {
	noteID := "-"
	if e.NoteID != 0 {
		noteID = strconv.FormatInt(e.NoteID, 10)
	}
	when := "-"
	if !e.CreatedAt.IsZero() {
		when = e.CreatedAt.Local().Format("2006-01-02 15:04")
	}
	return []string{
		when,
		strconv.Itoa(e.Attempt),
		string(e.Outcome),
		noteID,
		e.DeckName,
		e.NoteType,
		strings.Join(e.Tags, " "),
		e.Message,
	}
}
