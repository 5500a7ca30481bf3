package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"aromateca/internal/catalog"
	"aromateca/internal/importer"
)

var importReplace bool

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import {oils|recipes} <file.json>",
		Short: "Import a catalog document",
		Args:  cobra.ExactArgs(2),
		RunE:  runImport,
	}
	cmd.Flags().BoolVar(&importReplace, "replace", false, "Replace the collection instead of merging by id")
	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	kind, path := args[0], args[1]
	if kind != "oils" && kind != "recipes" {
		return fmt.Errorf("unknown collection %q (expected oils or recipes)", kind)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	st, _, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	switch kind {
	case "oils":
		incoming, entryErrs, err := importer.Oils(raw)
		if err != nil {
			return err
		}
		printEntryErrors(entryErrs)
		if importReplace {
			if err := st.ReplaceOils(ctx, incoming); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Replaced oils: %d records\n", len(incoming))
			return nil
		}
		base, err := st.Oils(ctx)
		if err != nil {
			return err
		}
		merged := catalog.MergeOils(base, incoming)
		if err := st.ReplaceOils(ctx, merged.Merged); err != nil {
			return err
		}
		printMergeCounts(merged.Added, merged.Updated, merged.Kept)
	case "recipes":
		incoming, entryErrs, err := importer.Recipes(raw)
		if err != nil {
			return err
		}
		printEntryErrors(entryErrs)
		if importReplace {
			if err := st.ReplaceRecipes(ctx, incoming); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Replaced recipes: %d records\n", len(incoming))
			return nil
		}
		base, err := st.Recipes(ctx)
		if err != nil {
			return err
		}
		merged := catalog.MergeRecipes(base, incoming)
		if err := st.ReplaceRecipes(ctx, merged.Merged); err != nil {
			return err
		}
		printMergeCounts(merged.Added, merged.Updated, merged.Kept)
	}
	return nil
}

func printEntryErrors(entryErrs []importer.EntryError) {
	for _, entryErr := range entryErrs {
		fmt.Fprintf(os.Stderr, "skipped %v\n", entryErr)
	}
}

func printMergeCounts(added, updated, kept int) {
	fmt.Fprintln(os.Stdout, "Import complete.")
	fmt.Fprintf(os.Stdout, "  Added:   %d\n", added)
	fmt.Fprintf(os.Stdout, "  Updated: %d\n", updated)
	fmt.Fprintf(os.Stdout, "  Kept:    %d\n", kept)
}
