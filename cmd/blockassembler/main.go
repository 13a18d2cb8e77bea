package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/2tbmz9y2xt-lang/blockassembler/assembler"
	"github.com/2tbmz9y2xt-lang/blockassembler/codec"
	"github.com/2tbmz9y2xt-lang/blockassembler/mempool"
)

var nowUnix = func() int64 { return time.Now().Unix() }

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("blockassembler", flag.ContinueOnError)
	fs.SetOutput(stderr)

	mempoolDir := fs.String("mempool", "", "directory of JSON transaction fixtures (required)")
	outPath := fs.String("out", "", "output file for the assembled block (required)")
	prevHash := fs.String("prev-hash", "", "32-byte hex previous block hash (default: all-zero)")
	height := fs.Uint("height", 1, "block height, used for the BIP-34 coinbase height push")
	payoutHex := fs.String("payout-script", "", "hex scriptPubKey to receive the coinbase payout (required)")
	logLevel := fs.String("log-level", "info", "log level: debug|info|warn|error")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	level, err := parseLogLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "invalid log level: %v\n", err)
		return 2
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if *mempoolDir == "" || *outPath == "" || *payoutHex == "" {
		fmt.Fprintln(stderr, "-mempool, -out, and -payout-script are all required")
		fs.Usage()
		return 2
	}

	payoutScript, err := codec.DecodeHex(*payoutHex)
	if err != nil {
		fmt.Fprintf(stderr, "invalid -payout-script: %v\n", err)
		return 2
	}

	var prevBlockHash [32]byte
	if *prevHash != "" {
		decoded, err := codec.HexReverse(*prevHash)
		if err != nil {
			fmt.Fprintf(stderr, "invalid -prev-hash: %v\n", err)
			return 2
		}
		prevBlockHash = decoded
	}

	txs, loadErrs := mempool.LoadDir(*mempoolDir)
	for _, e := range loadErrs {
		logger.Warn("dropped transaction during load", "error", e)
	}
	logger.Info("mempool loaded", "accepted", len(txs), "rejected", len(loadErrs))

	params := assembler.Params{
		PrevBlockHash: prevBlockHash,
		Height:        uint32(*height),
		PayoutScript:  payoutScript,
		Timestamp:     time.Unix(nowUnix(), 0),
	}

	result, err := assembler.Assemble(context.Background(), txs, params)
	if err != nil {
		fmt.Fprintf(stderr, "assembly failed: %v\n", err)
		return 1
	}

	var rejected int
	for _, c := range result.Candidates {
		if c.RejectReason != nil {
			rejected++
		}
	}
	logger.Info("block assembled",
		"included_transactions", len(result.Transactions)-1,
		"rejected_candidates", rejected,
		"nonce", result.Header.Nonce,
	)

	out, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(stderr, "output create failed: %v\n", err)
		return 1
	}
	defer out.Close()

	if err := mempool.WriteBlock(out, result); err != nil {
		fmt.Fprintf(stderr, "output write failed: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "wrote block with %d transactions to %s\n", len(result.Transactions), *outPath)
	return 0
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, err
	}
	return level, nil
}
