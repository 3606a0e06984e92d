package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/bitfsorg/extrinsic-go/journal"
)

func newHistoryCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List submissions recorded in the local journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.flags.NoJournal {
				return errors.New("history needs the journal; drop --no-journal")
			}
			j, err := a.journal()
			if err != nil {
				return err
			}
			recs, err := j.List(limit)
			if err != nil {
				return err
			}
			if recs == nil {
				recs = []*journal.Record{}
			}
			return a.print(historyInfo(recs))
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Maximum number of records (0 for all)")
	return cmd
}
