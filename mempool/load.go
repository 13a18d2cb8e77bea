// Package mempool is the harness around the consensus-critical core (spec
// table row 9: "excluded from core"): it reads a directory of per-transaction
// JSON fixtures into tx.Transaction values and writes an assembled block back
// out as a line-delimited hex file. Nothing here participates in validation.
package mempool

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/2tbmz9y2xt-lang/blockassembler/codec"
	"github.com/2tbmz9y2xt-lang/blockassembler/tx"
)

// jsonPrevout mirrors the embedded prevout object on a vin element (spec §6).
type jsonPrevout struct {
	ScriptPubKey        string `json:"scriptpubkey"`
	ScriptPubKeyAsm     string `json:"scriptpubkey_asm"`
	ScriptPubKeyType    string `json:"scriptpubkey_type"`
	ScriptPubKeyAddress string `json:"scriptpubkey_address,omitempty"`
	Value               uint64 `json:"value"`
}

// jsonInput mirrors one vin[] element.
type jsonInput struct {
	Txid                 string      `json:"txid"`
	Vout                 uint32      `json:"vout"`
	Prevout              jsonPrevout `json:"prevout"`
	ScriptSig            string      `json:"scriptsig"`
	ScriptSigAsm         string      `json:"scriptsig_asm,omitempty"`
	Witness              []string    `json:"witness,omitempty"`
	IsCoinbase           bool        `json:"is_coinbase"`
	Sequence             uint32      `json:"sequence"`
	InnerRedeemscriptAsm string      `json:"inner_redeemscript_asm,omitempty"`
}

// jsonOutput mirrors one vout[] element.
type jsonOutput struct {
	ScriptPubKey     string `json:"scriptpubkey"`
	ScriptPubKeyType string `json:"scriptpubkey_type"`
	Value            uint64 `json:"value"`
}

// jsonTx is the on-disk transaction fixture shape (spec §6).
type jsonTx struct {
	Version  uint32       `json:"version"`
	Locktime uint32       `json:"locktime"`
	Vin      []jsonInput  `json:"vin"`
	Vout     []jsonOutput `json:"vout"`
}

// LoadError records one file's ingest failure without aborting the whole
// directory load (spec §7: "MalformedJson/MalformedHex — reject the single
// transaction; continue").
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// LoadDir reads every file in dir as a JSON transaction fixture, returning
// the transactions that parsed successfully in deterministic (filename-sorted)
// order plus one LoadError per file that didn't. A malformed file never
// aborts the rest of the load.
func LoadDir(dir string) ([]*tx.Transaction, []error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, []error{fmt.Errorf("mempool: read dir %s: %w", dir, err)}
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var txs []*tx.Transaction
	var errs []error
	for _, name := range names {
		path := filepath.Join(dir, name)
		t, err := loadFile(path, strings.TrimSuffix(name, filepath.Ext(name)))
		if err != nil {
			errs = append(errs, &LoadError{Path: path, Err: err})
			slog.Warn("mempool: rejected transaction file", "path", path, "error", err)
			continue
		}
		txs = append(txs, t)
	}
	return txs, errs
}

func loadFile(path, stem string) (*tx.Transaction, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var jt jsonTx
	if err := json.Unmarshal(raw, &jt); err != nil {
		return nil, &tx.Error{Code: tx.ErrMalformedJson, Msg: err.Error()}
	}

	inputs := make([]tx.Input, 0, len(jt.Vin))
	for i, vin := range jt.Vin {
		in, err := convertInput(vin)
		if err != nil {
			return nil, fmt.Errorf("vin[%d]: %w", i, err)
		}
		inputs = append(inputs, in)
	}

	outputs := make([]tx.Output, 0, len(jt.Vout))
	for i, vout := range jt.Vout {
		out, err := convertOutput(vout)
		if err != nil {
			return nil, fmt.Errorf("vout[%d]: %w", i, err)
		}
		outputs = append(outputs, out)
	}

	t, err := tx.New(jt.Version, jt.Locktime, inputs, outputs)
	if err != nil {
		return nil, err
	}

	if stem != "" {
		if err := verifySanityHash(t, stem); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func convertInput(vin jsonInput) (tx.Input, error) {
	var in tx.Input
	if !vin.IsCoinbase {
		txidBytes, err := codec.DecodeHex(vin.Txid)
		if err != nil || len(txidBytes) != 32 {
			return in, &tx.Error{Code: tx.ErrMalformedHex, Msg: "vin txid"}
		}
		var reversed [32]byte
		copy(reversed[:], txidBytes)
		in.PrevTxID = codec.Reverse(reversed)
	}
	in.PrevVout = vin.Vout
	in.Sequence = vin.Sequence
	in.IsCoinbase = vin.IsCoinbase

	scriptSig, err := codec.DecodeHex(vin.ScriptSig)
	if err != nil {
		return in, &tx.Error{Code: tx.ErrMalformedHex, Msg: "scriptsig"}
	}
	in.ScriptSig = scriptSig

	if len(vin.Witness) > 0 {
		witness := make([][]byte, 0, len(vin.Witness))
		for _, item := range vin.Witness {
			b, err := codec.DecodeHex(item)
			if err != nil {
				return in, &tx.Error{Code: tx.ErrMalformedHex, Msg: "witness item"}
			}
			witness = append(witness, b)
		}
		in.Witness = witness
	}

	spk, err := codec.DecodeHex(vin.Prevout.ScriptPubKey)
	if err != nil {
		return in, &tx.Error{Code: tx.ErrMalformedHex, Msg: "prevout scriptpubkey"}
	}
	in.Prevout = tx.Prevout{
		Value:        vin.Prevout.Value,
		ScriptPubKey: spk,
		ScriptType:   tx.ScriptType(vin.Prevout.ScriptPubKeyType),
	}
	return in, nil
}

func convertOutput(vout jsonOutput) (tx.Output, error) {
	spk, err := codec.DecodeHex(vout.ScriptPubKey)
	if err != nil {
		return tx.Output{}, &tx.Error{Code: tx.ErrMalformedHex, Msg: "vout scriptpubkey"}
	}
	return tx.Output{
		Value:        vout.Value,
		ScriptPubKey: spk,
		ScriptType:   tx.ScriptType(vout.ScriptPubKeyType),
	}, nil
}

// verifySanityHash checks that the file stem equals sha256(reverse(txid))
// hex-rendered (spec §6), a single-pass cross-check distinct from the
// double-SHA-256 txid derivation itself.
func verifySanityHash(t *tx.Transaction, stem string) error {
	txid := t.Txid()
	reversed := codec.Reverse(txid)
	sum := sha256.Sum256(reversed[:])
	want := codec.EncodeHex(sum[:])
	if !strings.EqualFold(stem, want) {
		return &tx.Error{Code: tx.ErrMalformedHex, Msg: "sanity hash mismatch for " + stem}
	}
	return nil
}
