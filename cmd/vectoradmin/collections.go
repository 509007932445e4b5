package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	collectionrepo "github.com/vantaworks/vectoradmin/internal/repository/collection"
	collectionuc "github.com/vantaworks/vectoradmin/internal/usecase/collection"
)

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "List collections in the target cluster",
	RunE:  runCollections,
}

func runCollections(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	svc := collectionuc.New(collectionrepo.New(a.store), providerKeys(a.cfg.Keys), nil)

	cols, err := svc.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("list collections: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVECTORIZER\tPROPERTIES\tOBJECTS")
	for _, col := range cols {
		count, err := svc.Info(cmd.Context(), col.Name())
		objects := "?"
		if err == nil {
			objects = fmt.Sprintf("%d", count.ObjectCount)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", col.Name(), col.Vectorizer(), len(col.Properties()), objects)
	}
	return w.Flush()
}
