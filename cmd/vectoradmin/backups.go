package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	backuphistrepo "github.com/vantaworks/vectoradmin/internal/repository/backuphist"
	backupjobrepo "github.com/vantaworks/vectoradmin/internal/repository/backupjob"
	backupuc "github.com/vantaworks/vectoradmin/internal/usecase/backupsvc"
)

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "Show the backup history, newest first",
	RunE:  runBackups,
}

var backupsLimit int

func init() {
	backupsCmd.Flags().IntVar(&backupsLimit, "limit", 20, "maximum records to show")
}

func runBackups(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	svc := backupuc.New(
		backuphistrepo.New(a.store, a.cfg.Backup.HistoryCollection),
		backupjobrepo.New(a.store),
		a.cfg.Backup.ScanLimit,
	)

	records, err := svc.History(cmd.Context(), backupsLimit)
	if err != nil {
		return fmt.Errorf("load backup history: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "BACKUP ID\tPROVIDER\tSTATUS\tCOLLECTIONS\tCREATED\tCOMPLETED")
	for _, rec := range records {
		completed := "-"
		if !rec.CompletionTime().IsZero() {
			completed = rec.CompletionTime().Format(time.RFC3339)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			rec.BackupID(), rec.Provider(), rec.Status(),
			backupuc.FormatCollections(rec),
			rec.CreatedDate().Format(time.RFC3339), completed)
	}
	return w.Flush()
}
