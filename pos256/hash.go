// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pos256

import (
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// HashToBig converts a chainhash.Hash into a big.Int treating the hash as a
// little-endian unsigned 256-bit integer, which is the chain's convention
// for interpreting a digest as a number for target comparisons.
func HashToBig(hash *chainhash.Hash) *big.Int {
	buf := *hash
	blen := len(buf)
	for i := 0; i < blen/2; i++ {
		buf[i], buf[blen-1-i] = buf[blen-1-i], buf[i]
	}
	return new(big.Int).SetBytes(buf[:])
}

// BigToHash converts a big.Int back into a chainhash.Hash, the inverse of
// HashToBig. It is used after shifting a selection hash so the result can be
// compared and logged as a hash value again.
func BigToHash(value *big.Int) (*chainhash.Hash, error) {
	buf := value.Bytes()

	blen := len(buf)
	for i := 0; i < blen/2; i++ {
		buf[i], buf[blen-1-i] = buf[blen-1-i], buf[i]
	}

	pbuf := buf
	if chainhash.HashSize-blen > 0 {
		pbuf = make([]byte, chainhash.HashSize)
		copy(pbuf, buf)
	}

	return chainhash.NewHash(pbuf)
}

// DoubleHash returns the chain's canonical double-SHA256 digest of data.
func DoubleHash(data []byte) chainhash.Hash {
	return chainhash.DoubleHashH(data)
}
