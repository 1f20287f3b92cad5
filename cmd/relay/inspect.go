package main

import (
	"fmt"
	"io"
	"log/slog"
	"persona-relay/domain"
	"persona-relay/infrastructure/storage"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/spf13/cobra"
)

func newInspectCommand() *cobra.Command {
	var dbPath, user string
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print stored default selectors and relayed message provenance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openReadOnly(dbPath)
			if err != nil {
				return fmt.Errorf("error while opening Badger: %w", err)
			}
			defer db.Close()
			store := storage.NewBadgerStore(db, 0, logs.GetLoggerFromLevel(slog.LevelError))
			return inspect(cmd.OutOrStdout(), store, user)
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "data/badger", "path to the Badger directory")
	cmd.Flags().StringVar(&user, "user", "", "restrict provenance to one author")
	return cmd
}

func inspect(w io.Writer, store *storage.BadgerStore, user string) error {
	prefs, err := store.Preferences()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, color.Cyan.Sprint("Default selectors"))
	renderPreferences(w, prefs)

	records, err := store.Provenance(user)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, color.Cyan.Sprint("Relayed messages"))
	renderProvenance(w, records)
	if len(prefs) == 0 && len(records) == 0 {
		fmt.Fprintln(w, color.Yellow.Sprint("store is empty"))
	}
	return nil
}

func renderPreferences(w io.Writer, prefs []domain.UserPreference) {
	table := newTable(w, []string{"User", "Selector", "Updated"})
	for _, p := range prefs {
		table.Append([]string{p.UserID, p.Selector, p.UpdatedAt.Format(time.DateTime)})
	}
	table.Render()
}

func renderProvenance(w io.Writer, records []domain.MessageProvenance) {
	table := newTable(w, []string{"Author", "Message", "Relayed"})
	for _, r := range records {
		table.Append([]string{r.AuthorID, r.MessageID, r.CreatedAt.Format(time.DateTime)})
	}
	table.Render()
}

func openReadOnly(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true)
	return badger.Open(opts)
}
