package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunRequiresMempoolOutAndPayout(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{}, &out, &errOut)
	if code != 2 {
		t.Fatalf("expected exit code 2, got %d", code)
	}
	if errOut.Len() == 0 {
		t.Fatal("expected a usage error on stderr")
	}
}

func TestRunRejectsBadPayoutScriptHex(t *testing.T) {
	dir := t.TempDir()
	outFile := filepath.Join(dir, "block.txt")
	var out, errOut bytes.Buffer
	code := run([]string{
		"-mempool", dir,
		"-out", outFile,
		"-payout-script", "not-hex",
	}, &out, &errOut)
	if code != 2 {
		t.Fatalf("expected exit code 2, got %d", code)
	}
}

func TestRunAssemblesEmptyMempool(t *testing.T) {
	mempoolDir := t.TempDir()
	outFile := filepath.Join(t.TempDir(), "block.txt")

	var out, errOut bytes.Buffer
	code := run([]string{
		"-mempool", mempoolDir,
		"-out", outFile,
		"-payout-script", "76a914" + strings.Repeat("00", 20) + "88ac",
	}, &out, &errOut)
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d (stderr: %s)", code, errOut.String())
	}

	contents, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(contents), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + coinbase raw + coinbase txid lines for an empty mempool, got %d: %v", len(lines), lines)
	}
}
