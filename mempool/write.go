package mempool

import (
	"fmt"
	"io"

	"github.com/2tbmz9y2xt-lang/blockassembler/assembler"
	"github.com/2tbmz9y2xt-lang/blockassembler/codec"
)

// WriteBlock writes an assembled Result in the line-delimited hex format
// (spec §6): the header, then the coinbase's witness serialization, then
// one txid per line in the order the block emits them, coinbase first.
func WriteBlock(w io.Writer, result *assembler.Result) error {
	header := result.Header.Bytes()
	if _, err := fmt.Fprintln(w, codec.EncodeHex(header)); err != nil {
		return err
	}

	coinbaseRaw := result.Coinbase.SerializeSegwit()
	if _, err := fmt.Fprintln(w, codec.EncodeHex(coinbaseRaw)); err != nil {
		return err
	}

	for _, t := range result.Transactions {
		txid := t.Txid()
		if _, err := fmt.Fprintln(w, codec.EncodeHex(txid[:])); err != nil {
			return err
		}
	}
	return nil
}
