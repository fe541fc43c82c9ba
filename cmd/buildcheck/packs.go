package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/WSG23/optimal-build-sub004/pkg/cli"
	"github.com/WSG23/optimal-build-sub004/pkg/rules/catalog"
)

var packsFlags struct {
	dir    string
	db     string
	format string
}

var packsCmd = &cobra.Command{
	Use:   "packs",
	Short: "Manage the rule pack catalogue",
}

var packsImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import pack files into the catalogue",
	Long: `Parse and validate every pack file in a directory and store the
valid ones in the catalogue database. Invalid packs are skipped with a
warning.

Example:
  buildcheck packs import --dir packs/ --db packs.db`,
	RunE: importPacks,
}

var packsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalogued packs",
	RunE:  listPacks,
}

var packsDeleteCmd = &cobra.Command{
	Use:   "delete <slug>",
	Short: "Remove a pack from the catalogue",
	Args:  cobra.ExactArgs(1),
	RunE:  deletePack,
}

func init() {
	rootCmd.AddCommand(packsCmd)
	packsCmd.AddCommand(packsImportCmd, packsListCmd, packsDeleteCmd)

	packsCmd.PersistentFlags().StringVar(&packsFlags.db, "db", "packs.db", "catalogue database path")
	packsImportCmd.Flags().StringVarP(&packsFlags.dir, "dir", "d", "", "directory of pack files (required)")
	packsListCmd.Flags().StringVar(&packsFlags.format, "format", "text", "output format: text, json")
	_ = packsImportCmd.MarkFlagRequired("dir")
}

func importPacks(cmd *cobra.Command, args []string) error {
	store, err := catalog.NewSQLiteStore(packsFlags.db)
	if err != nil {
		return fmt.Errorf("failed to open catalogue: %w", err)
	}
	defer store.Close()

	source := catalog.NewDirSource(packsFlags.dir, commandLogger())
	result, err := source.Sync(context.Background(), store)
	if err != nil {
		return cli.NewCommandError("packs import", err)
	}

	fmt.Printf("Imported %d pack(s), skipped %d\n", result.Loaded, result.Skipped)
	if result.Skipped > 0 {
		return cli.NewCommandError("packs import", fmt.Errorf("%d pack(s) failed validation", result.Skipped))
	}
	return nil
}

func listPacks(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(packsFlags.format)
	if err != nil {
		return err
	}

	store, err := catalog.NewSQLiteStore(packsFlags.db)
	if err != nil {
		return fmt.Errorf("failed to open catalogue: %w", err)
	}
	defer store.Close()

	infos, err := store.List(context.Background())
	if err != nil {
		return cli.NewCommandError("packs list", err)
	}

	if format == cli.FormatJSON {
		return cli.WriteJSON(os.Stdout, infos)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SLUG\tNAME\tVERSION\tRULES\tUPDATED")
	for _, info := range infos {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			info.Slug, info.Name, info.Version, info.Rules,
			info.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func deletePack(cmd *cobra.Command, args []string) error {
	store, err := catalog.NewSQLiteStore(packsFlags.db)
	if err != nil {
		return fmt.Errorf("failed to open catalogue: %w", err)
	}
	defer store.Close()

	if err := store.Delete(context.Background(), args[0]); err != nil {
		return cli.NewCommandError("packs delete", err)
	}
	fmt.Printf("Deleted pack %q\n", args[0])
	return nil
}
