package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bitfsorg/extrinsic-go/client"
	"github.com/bitfsorg/extrinsic-go/codec"
	"github.com/bitfsorg/extrinsic-go/extrinsic"
	"github.com/bitfsorg/extrinsic-go/wallet"
)

// signingFlags are shared by every command that submits an extrinsic.
type signingFlags struct {
	phrase   string
	password string
}

func (f *signingFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.phrase, "phrase", "", "Recovery phrase of the signing key (default $"+EnvPhrase+")")
	cmd.Flags().StringVar(&f.password, "password", "", "Optional derivation password")
}

// submitFunc performs one client operation with the derived keypair.
type submitFunc func(ctx context.Context, c *client.Client, kp *wallet.Keypair) (*client.Receipt, error)

// runSubmit derives the keypair, connects and submits, then prints the receipt.
func (a *app) runSubmit(ctx context.Context, f *signingFlags, tag extrinsic.Tag, submit submitFunc) error {
	kp, err := a.keypair(f.phrase, f.password)
	if err != nil {
		return err
	}
	c, err := a.client(true)
	if err != nil {
		return err
	}
	rcpt, err := submit(ctx, c, kp)
	if err != nil {
		return err
	}
	return a.print(newReceiptInfo(tag, rcpt))
}

// client connects a Client to the configured node. Submissions are
// journaled unless disabled; queries pass record=false.
func (a *app) client(record bool) (*client.Client, error) {
	node, err := a.node()
	if err != nil {
		return nil, err
	}
	opts := []client.Option{client.WithLogger(a.logger)}
	if record {
		j, err := a.journal()
		if err != nil {
			return nil, err
		}
		if j != nil {
			opts = append(opts, client.WithJournal(j))
		}
	}
	return client.New(node, opts...)
}

func parseAmountFlag(s string) (codec.Amount, error) {
	if s == "" {
		return codec.Amount{}, fmt.Errorf("%w: --amount is required", codec.ErrEncodingInput)
	}
	return codec.ParseAmount(s)
}

func newMintCmd(a *app) *cobra.Command {
	var sf signingFlags
	var to, amount string
	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Mint tokens to an account (the signer's own by default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			amt, err := parseAmountFlag(amount)
			if err != nil {
				return err
			}
			return a.runSubmit(cmd.Context(), &sf, extrinsic.TagMint, func(ctx context.Context, c *client.Client, kp *wallet.Keypair) (*client.Receipt, error) {
				dest := extrinsic.PublicKey(kp.PublicKey())
				if to != "" {
					if dest, err = extrinsic.ParsePublicKey(to); err != nil {
						return nil, err
					}
				}
				return c.Mint(ctx, kp, dest, amt)
			})
		},
	}
	sf.register(cmd)
	cmd.Flags().StringVar(&to, "to", "", "Destination public key in hex (default: signer)")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount in base units")
	return cmd
}

func newTransferCmd(a *app) *cobra.Command {
	var sf signingFlags
	var to, amount string
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer tokens from the signer to another account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dest, err := extrinsic.ParsePublicKey(to)
			if err != nil {
				return err
			}
			amt, err := parseAmountFlag(amount)
			if err != nil {
				return err
			}
			return a.runSubmit(cmd.Context(), &sf, extrinsic.TagTransfer, func(ctx context.Context, c *client.Client, kp *wallet.Keypair) (*client.Receipt, error) {
				return c.Transfer(ctx, kp, dest, amt)
			})
		},
	}
	sf.register(cmd)
	cmd.Flags().StringVar(&to, "to", "", "Destination public key in hex")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount in base units")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newUpgradeCmd(a *app) *cobra.Command {
	var sf signingFlags
	var codePath string
	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Replace the runtime code with the contents of a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			code, err := os.ReadFile(codePath)
			if err != nil {
				return fmt.Errorf("read code: %w", err)
			}
			return a.runSubmit(cmd.Context(), &sf, extrinsic.TagUpgrade, func(ctx context.Context, c *client.Client, kp *wallet.Keypair) (*client.Receipt, error) {
				return c.Upgrade(ctx, kp, code)
			})
		},
	}
	sf.register(cmd)
	cmd.Flags().StringVar(&codePath, "code", "", "Path to the runtime code blob")
	_ = cmd.MarkFlagRequired("code")
	return cmd
}

func newSetFeeCmd(a *app) *cobra.Command {
	var sf signingFlags
	var amount string
	cmd := &cobra.Command{
		Use:   "set-fee",
		Short: "Set the transaction fee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			amt, err := parseAmountFlag(amount)
			if err != nil {
				return err
			}
			return a.runSubmit(cmd.Context(), &sf, extrinsic.TagSetFee, func(ctx context.Context, c *client.Client, kp *wallet.Keypair) (*client.Receipt, error) {
				return c.SetFee(ctx, kp, amt)
			})
		},
	}
	sf.register(cmd)
	cmd.Flags().StringVar(&amount, "amount", "", "Fee in base units")
	return cmd
}

func newSetRewardCmd(a *app) *cobra.Command {
	var sf signingFlags
	var amount string
	cmd := &cobra.Command{
		Use:   "set-reward",
		Short: "Set the block reward",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			amt, err := parseAmountFlag(amount)
			if err != nil {
				return err
			}
			return a.runSubmit(cmd.Context(), &sf, extrinsic.TagSetReward, func(ctx context.Context, c *client.Client, kp *wallet.Keypair) (*client.Receipt, error) {
				return c.SetReward(ctx, kp, amt)
			})
		},
	}
	sf.register(cmd)
	cmd.Flags().StringVar(&amount, "amount", "", "Reward in base units")
	return cmd
}
