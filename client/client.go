// Package client ties the pieces together: it builds and signs operations,
// submits them through a NodeService and reads values back from storage.
package client

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/bitfsorg/extrinsic-go/codec"
	"github.com/bitfsorg/extrinsic-go/extrinsic"
	"github.com/bitfsorg/extrinsic-go/journal"
	"github.com/bitfsorg/extrinsic-go/network"
	"github.com/bitfsorg/extrinsic-go/storage"
)

// Receipt describes an accepted submission.
type Receipt struct {
	// ID is the identifier the node returned, usually the extrinsic hash.
	// It is empty when the node closed the connection without replying.
	ID string
	// Hash is the local blake2b-256 digest of the encoded extrinsic.
	Hash [32]byte
	// Payload is the 0x-prefixed hex that was submitted.
	Payload string
	// Seq is the journal sequence number, zero when no journal is attached.
	Seq uint64
}

// Option configures a Client.
type Option func(*Client)

// WithJournal records every submission attempt in j.
func WithJournal(j *journal.Journal) Option {
	return func(c *Client) { c.journal = j }
}

// WithLogger routes client diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// Client submits signed operations to a node and queries its storage.
type Client struct {
	node    network.NodeService
	journal *journal.Journal
	logger  *slog.Logger
}

// New creates a Client on top of node.
func New(node network.NodeService, opts ...Option) (*Client, error) {
	if node == nil {
		return nil, fmt.Errorf("%w: node service", ErrNilParam)
	}
	c := &Client{
		node:   node,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Submit signs op with s, encodes the extrinsic and submits it via
// author_submitExtrinsic. The attempt is journaled whether or not the node
// accepts it.
func (c *Client) Submit(ctx context.Context, s extrinsic.Signer, op extrinsic.Operation) (*Receipt, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: signer", ErrNilParam)
	}
	ext, err := extrinsic.Build(op, s)
	if err != nil {
		return nil, err
	}
	return c.submit(ctx, ext)
}

// SubmitExtrinsic submits an already built extrinsic.
func (c *Client) SubmitExtrinsic(ctx context.Context, ext *extrinsic.Extrinsic) (*Receipt, error) {
	if ext == nil {
		return nil, fmt.Errorf("%w: extrinsic", ErrNilParam)
	}
	return c.submit(ctx, ext)
}

func (c *Client) submit(ctx context.Context, ext *extrinsic.Extrinsic) (*Receipt, error) {
	raw, err := ext.Encode()
	if err != nil {
		return nil, err
	}
	rcpt := &Receipt{
		Hash:    extrinsic.HashBytes(raw),
		Payload: extrinsic.HexPrefix + hex.EncodeToString(raw),
	}

	opName := ext.Operation.Tag().String()
	log := c.logger.With("operation", opName, "hash", hashHex(rcpt.Hash))
	log.Debug("Submitting extrinsic", "size", len(raw))

	id, submitErr := c.node.SubmitExtrinsic(ctx, rcpt.Payload)
	rcpt.ID = id

	rcpt.Seq = c.record(ext, opName, rcpt, submitErr)

	if submitErr != nil {
		log.Warn("Submission failed", "error", submitErr)
		return nil, fmt.Errorf("client: submit %s: %w", opName, submitErr)
	}
	log.Info("Submitted extrinsic", "id", id)
	return rcpt, nil
}

// record journals a submission attempt and returns its sequence number.
// Journal failures are logged and never fail the submission.
func (c *Client) record(ext *extrinsic.Extrinsic, opName string, rcpt *Receipt, submitErr error) uint64 {
	if c.journal == nil {
		return 0
	}
	rec := &journal.Record{
		Method:    network.MethodSubmitExtrinsic,
		Operation: opName,
		Hash:      hashHex(rcpt.Hash),
		Payload:   rcpt.Payload,
		Result:    rcpt.ID,
	}
	if ext.Verification != nil {
		rec.Signer = ext.Verification.PublicKey.String()
	}
	if submitErr != nil {
		rec.Error = submitErr.Error()
	}
	if err := c.journal.Append(rec); err != nil {
		c.logger.Warn("Failed to journal submission", "error", err)
		return 0
	}
	return rec.Seq
}

// Mint credits amount to to.
func (c *Client) Mint(ctx context.Context, s extrinsic.Signer, to extrinsic.PublicKey, amount codec.Amount) (*Receipt, error) {
	return c.Submit(ctx, s, extrinsic.Mint{To: to, Amount: amount})
}

// Transfer moves amount from the signer's account to to.
func (c *Client) Transfer(ctx context.Context, s extrinsic.Signer, to extrinsic.PublicKey, amount codec.Amount) (*Receipt, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: signer", ErrNilParam)
	}
	return c.Submit(ctx, s, extrinsic.Transfer{From: s.PublicKey(), To: to, Amount: amount})
}

// Upgrade replaces the runtime code.
func (c *Client) Upgrade(ctx context.Context, s extrinsic.Signer, code []byte) (*Receipt, error) {
	return c.Submit(ctx, s, extrinsic.Upgrade{Code: code})
}

// SetFee sets the transaction fee.
func (c *Client) SetFee(ctx context.Context, s extrinsic.Signer, amount codec.Amount) (*Receipt, error) {
	return c.Submit(ctx, s, extrinsic.SetFee{Amount: amount})
}

// SetReward sets the block reward.
func (c *Client) SetReward(ctx context.Context, s extrinsic.Signer, amount codec.Amount) (*Receipt, error) {
	return c.Submit(ctx, s, extrinsic.SetReward{Amount: amount})
}

// QueryValue returns the raw bytes stored under key.
func (c *Client) QueryValue(ctx context.Context, key []byte) ([]byte, error) {
	raw, err := c.node.GetStorage(ctx, storage.EncodeKey(key))
	if err != nil {
		return nil, fmt.Errorf("client: get storage: %w", err)
	}
	return storage.DecodeValue(raw)
}

// QueryU128 returns the 128-bit amount stored under key.
func (c *Client) QueryU128(ctx context.Context, key []byte) (codec.Amount, error) {
	raw, err := c.node.GetStorage(ctx, storage.EncodeKey(key))
	if err != nil {
		return codec.Amount{}, fmt.Errorf("client: get storage: %w", err)
	}
	return storage.DecodeU128(raw)
}

func hashHex(h [32]byte) string {
	return extrinsic.HexPrefix + hex.EncodeToString(h[:])
}
