package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	clusteruc "github.com/vantaworks/vectoradmin/internal/usecase/cluster"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show cluster version, nodes and consensus state",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	svc := clusteruc.New(a.store, 0)
	ctx := cmd.Context()

	meta, err := svc.Meta(ctx)
	if err != nil {
		return fmt.Errorf("cluster meta: %w", err)
	}
	fmt.Printf("cluster %s (version %s)\n", meta.Hostname, meta.Version)

	sync, err := svc.Synchronized(ctx)
	if err != nil {
		return fmt.Errorf("cluster statistics: %w", err)
	}
	fmt.Printf("synchronized: %v\n\n", sync)

	nodes, err := svc.Nodes(ctx, true)
	if err != nil {
		return fmt.Errorf("cluster nodes: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NODE\tSTATUS\tVERSION\tSHARDS\tOBJECTS")
	for _, n := range nodes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n", n.Name, n.Status, n.Version, n.ShardCount, n.ObjectCount)
	}
	return w.Flush()
}
