package main

import (
	"encoding/hex"

	"github.com/spf13/cobra"

	"github.com/bitfsorg/extrinsic-go/storage"
)

func newStorageCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Query node storage",
	}

	var raw bool
	get := &cobra.Command{
		Use:   "get <hex-key>",
		Short: "Read the value stored under a key (decoded as a 128-bit amount unless --raw)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := storage.ParseKey(args[0])
			if err != nil {
				return err
			}
			c, err := a.client(false)
			if err != nil {
				return err
			}
			out := valueInfo{Key: storage.EncodeKey(key)}
			if raw {
				b, err := c.QueryValue(cmd.Context(), key)
				if err != nil {
					return err
				}
				out.Raw = "0x" + hex.EncodeToString(b)
			} else {
				v, err := c.QueryU128(cmd.Context(), key)
				if err != nil {
					return err
				}
				out.Amount = &v
			}
			return a.print(out)
		},
	}
	get.Flags().BoolVar(&raw, "raw", false, "Print the stored bytes as hex instead of decoding")

	cmd.AddCommand(get)
	return cmd
}
