package main

import (
	"github.com/spf13/cobra"

	"github.com/bitfsorg/extrinsic-go/wallet"
)

func newKeysCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Generate and inspect sr25519 keys",
	}

	var words int
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new recovery phrase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bits := 128
			if words == 24 {
				bits = 256
			} else if words != 12 {
				return errWords
			}
			phrase, err := wallet.GenerateMnemonic(bits)
			if err != nil {
				return err
			}
			kp, err := wallet.KeypairFromPhrase(phrase, "")
			if err != nil {
				return err
			}
			return a.print(keyInfo{Phrase: phrase, PublicKey: kp.PublicKeyHex()})
		},
	}
	generate.Flags().IntVar(&words, "words", 12, "Number of words (12 or 24)")

	var phrase, password string
	inspect := &cobra.Command{
		Use:   "inspect",
		Short: "Print the public key derived from a recovery phrase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kp, err := a.keypair(phrase, password)
			if err != nil {
				return err
			}
			return a.print(keyInfo{PublicKey: kp.PublicKeyHex()})
		},
	}
	inspect.Flags().StringVar(&phrase, "phrase", "", "Recovery phrase (default $"+EnvPhrase+")")
	inspect.Flags().StringVar(&password, "password", "", "Optional derivation password")

	cmd.AddCommand(generate, inspect)
	return cmd
}
