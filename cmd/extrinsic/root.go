package main

import (
	"github.com/spf13/cobra"

	"github.com/bitfsorg/extrinsic-go/config"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "extrinsic",
		Short:         "Build, sign and submit extrinsics to a ledger node",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	def := config.DefaultConfig()
	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.RPCURL, "rpc-url", "", "Node websocket endpoint (overrides network preset and config)")
	pf.StringVarP(&a.flags.Network, "network", "n", def.Network, "Network preset (dev, local) or a custom name with --rpc-url")
	pf.StringVar(&a.flags.DataDir, "datadir", "", "Data directory (default "+def.DataDir+")")
	pf.StringVar(&a.flags.LogLevel, "log-level", def.LogLevel, "Log level (debug, info, warn, error)")
	pf.StringVar(&a.flags.LogFormat, "log-format", def.LogFormat, "Log format (console, json)")
	pf.BoolVar(&a.flags.NoJournal, "no-journal", false, "Do not record submissions in the local journal")
	pf.BoolVarP(&a.flags.JSON, "json", "j", false, "Print results as JSON")

	root.AddCommand(
		newKeysCmd(a),
		newMintCmd(a),
		newTransferCmd(a),
		newUpgradeCmd(a),
		newSetFeeCmd(a),
		newSetRewardCmd(a),
		newStorageCmd(a),
		newHistoryCmd(a),
	)
	return root
}
