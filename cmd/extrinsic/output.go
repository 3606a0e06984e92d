package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/bitfsorg/extrinsic-go/client"
	"github.com/bitfsorg/extrinsic-go/codec"
	"github.com/bitfsorg/extrinsic-go/extrinsic"
	"github.com/bitfsorg/extrinsic-go/journal"
	"github.com/bitfsorg/extrinsic-go/network"
	"github.com/bitfsorg/extrinsic-go/storage"
	"github.com/bitfsorg/extrinsic-go/wallet"
)

var errWords = errors.New("--words must be 12 or 24")

type printable interface {
	text() string
}

// print writes v as indented JSON with --json, as text otherwise.
func (a *app) print(v printable) error {
	if a.flags.JSON {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprintln(a.stdout, v.text())
	return err
}

type keyInfo struct {
	Phrase    string `json:"phrase,omitempty"`
	PublicKey string `json:"publicKey"`
}

func (k keyInfo) text() string {
	if k.Phrase == "" {
		return "Public key: " + k.PublicKey
	}
	return "Phrase:     " + k.Phrase + "\nPublic key: " + k.PublicKey
}

type receiptInfo struct {
	Operation string `json:"operation"`
	ID        string `json:"id"`
	Hash      string `json:"hash"`
	Payload   string `json:"payload"`
	Journal   uint64 `json:"journal,omitempty"`
}

func newReceiptInfo(op extrinsic.Tag, r *client.Receipt) receiptInfo {
	return receiptInfo{
		Operation: op.String(),
		ID:        r.ID,
		Hash:      extrinsic.HexPrefix + fmt.Sprintf("%x", r.Hash[:]),
		Payload:   r.Payload,
		Journal:   r.Seq,
	}
}

func (r receiptInfo) text() string {
	id := r.ID
	if id == "" {
		id = "(none, node closed the connection)"
	}
	return fmt.Sprintf("Submitted %s\n  id:   %s\n  hash: %s", r.Operation, id, r.Hash)
}

type valueInfo struct {
	Key    string       `json:"key"`
	Amount *codec.Amount `json:"amount,omitempty"`
	Raw    string       `json:"raw,omitempty"`
}

func (v valueInfo) text() string {
	if v.Amount != nil {
		return v.Amount.String()
	}
	return v.Raw
}

type historyInfo []*journal.Record

func (h historyInfo) text() string {
	if len(h) == 0 {
		return "No submissions recorded"
	}
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SEQ\tTIME\tOPERATION\tSTATUS\tID")
	for _, r := range h {
		status := "ok"
		if r.Failed() {
			status = "failed"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", r.Seq, r.Time.Local().Format(time.DateTime), r.Operation, status, r.Result)
	}
	_ = w.Flush()
	return strings.TrimRight(b.String(), "\n")
}

var errorLabel = color.New(color.FgRed, color.Bold)

// errorKind names the category an error belongs to.
func errorKind(err error) string {
	switch {
	case errors.Is(err, codec.ErrDecode):
		return "decode error"
	case errors.Is(err, codec.ErrEncodingInput):
		return "invalid input"
	case errors.Is(err, wallet.ErrInvalidPhrase):
		return "key derivation error"
	case errors.Is(err, network.ErrConnectionFailed), errors.Is(err, network.ErrConnectionClosed):
		return "connection error"
	case errors.Is(err, network.ErrInvalidResponse):
		return "protocol error"
	case errors.Is(err, network.ErrRemote):
		return "node rejected request"
	case errors.Is(err, storage.ErrValueNotFound):
		return "not found"
	}
	return "error"
}

// printError writes err to w behind a coloured label naming its kind.
func printError(w io.Writer, err error) {
	errorLabel.Fprint(w, strings.ToUpper(errorKind(err)[:1])+errorKind(err)[1:]+":")
	fmt.Fprintln(w, " "+err.Error())
}
