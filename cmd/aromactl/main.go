// aromactl is the operator CLI: it imports, exports and seeds the catalog
// against the same database the server uses.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "aromactl",
		Short:         "Manage the aromatherapy catalog",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(importCmd())
	root.AddCommand(exportCmd())
	root.AddCommand(seedCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
