package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the catalog documents from the data directory into empty collections",
		Args:  cobra.NoArgs,
		RunE:  runSeed,
	}
}

func runSeed(cmd *cobra.Command, args []string) error {
	st, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	if err := st.SeedIfEmpty(ctx, cfg.Data.Dir); err != nil {
		return err
	}

	oils, recipes, err := st.Counts(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Catalog ready: %d oils, %d recipes\n", oils, recipes)
	return nil
}
