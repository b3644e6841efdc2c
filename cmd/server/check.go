package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"innovata/internal/cache"
	"innovata/internal/catalog"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Fetch every configured dataset once and report its status",
	Long:  "Check fetches and normalizes each configured sheet, prints one line per dataset and exits non-zero if any dataset failed.",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	failed := 0
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATASET\tSTATE\tITEMS\tERROR")
	for _, name := range catalog.Names {
		var st catalog.Status
		if a.catalog.Configured(name) {
			st, err = a.catalog.Reload(ctx, name)
			if err != nil {
				return err
			}
		} else {
			st, _ = a.catalog.Status(name)
		}
		if st.State == cache.StatusError {
			failed++
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", st.Dataset, st.State, st.Items, st.Error)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d dataset(s) failed to load", failed)
	}
	return nil
}
