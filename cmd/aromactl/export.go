package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/spf13/cobra"

	"aromateca/internal/catalog"
	"aromateca/internal/export"
)

var (
	exportFormat string
	exportOut    string
	exportQuery  string
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export {oils|recipes}",
		Short: "Export a catalog collection",
		Long: "Export a catalog collection as JSON, CSV or plain text. " +
			"The --query flag accepts the same query string the API uses, " +
			"e.g. 'intents=sono&sort=name'.",
		Args: cobra.ExactArgs(1),
		RunE: runExport,
	}
	cmd.Flags().StringVar(&exportFormat, "format", "json", "Output format: json, csv or txt")
	cmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&exportQuery, "query", "", "Filter query string")
	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	kind := args[0]
	if kind != "oils" && kind != "recipes" {
		return fmt.Errorf("unknown collection %q (expected oils or recipes)", kind)
	}
	if exportFormat != "json" && exportFormat != "csv" && exportFormat != "txt" {
		return fmt.Errorf("unknown format %q (expected json, csv or txt)", exportFormat)
	}

	values, err := url.ParseQuery(exportQuery)
	if err != nil {
		return fmt.Errorf("parse query: %w", err)
	}

	st, _, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	var out io.Writer = os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	ctx := context.Background()
	switch kind {
	case "oils":
		oils, err := st.Oils(ctx)
		if err != nil {
			return err
		}
		filters := catalog.OilFiltersFromValues(values)
		rows := catalog.ApplyOilFilters(oils, filters).Rows
		switch exportFormat {
		case "json":
			return writeJSONIndent(out, rows)
		case "csv":
			return export.OilsCSV(out, rows, filters.Summary())
		case "txt":
			return export.OilsTXT(out, rows, filters.Summary())
		}
	case "recipes":
		recipes, err := st.Recipes(ctx)
		if err != nil {
			return err
		}
		filters := catalog.RecipeFiltersFromValues(values)
		rows := catalog.ApplyRecipeFilters(recipes, filters).Rows
		switch exportFormat {
		case "json":
			return writeJSONIndent(out, rows)
		case "csv":
			return export.RecipesCSV(out, rows, filters.Summary())
		case "txt":
			return export.RecipesTXT(out, rows, filters.Summary())
		}
	}
	return nil
}

func writeJSONIndent(w io.Writer, payload any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(payload)
}
