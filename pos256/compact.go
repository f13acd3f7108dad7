// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pos256

import "math/big"

// compactBytes is the number of bytes in the compact ("nBits") form.
const compactBytes = 3

// CompactToBig converts a compact representation of a whole number N to an
// unsigned 256-bit number. The representation is similar to IEEE754 floating
// point numbers: the high byte is an 8-bit exponent, and the remaining 24
// bits are the mantissa.
//
//	N = (-1^sign) * mantissa * 256^(exponent-3)
//
// This is the target decompression used throughout Bitcoin-derived chains
// for the "nBits" difficulty field. The mantissa's sign bit is honored for
// completeness, even though PoS targets are never negative in practice.
func CompactToBig(compact uint32) *big.Int {
	mantissa := compact & 0x007fffff
	isNegative := compact&0x00800000 != 0
	exponent := uint(compact >> 24)

	var bn *big.Int
	if exponent <= compactBytes {
		mantissa >>= 8 * (compactBytes - exponent)
		bn = big.NewInt(int64(mantissa))
	} else {
		bn = big.NewInt(int64(mantissa))
		bn.Lsh(bn, 8*(exponent-compactBytes))
	}

	if isNegative {
		bn = bn.Neg(bn)
	}

	return bn
}

// BigToCompact converts a whole number N to a compact representation using
// an unsigned 32-bit number. This is the inverse of CompactToBig.
func BigToCompact(n *big.Int) uint32 {
	if n.Sign() == 0 {
		return 0
	}

	isNegative := n.Sign() < 0
	abs := n
	if isNegative {
		abs = new(big.Int).Neg(n)
	}

	var mantissa uint32
	exponent := uint(len(abs.Bytes()))

	if exponent <= compactBytes {
		mantissa = uint32(abs.Bits()[0])
		mantissa <<= 8 * (compactBytes - exponent)
	} else {
		tn := new(big.Int).Set(abs)
		mantissa = uint32(tn.Rsh(tn, 8*(exponent-compactBytes)).Bits()[0])
	}

	if mantissa&0x00800000 != 0 {
		mantissa >>= 8
		exponent++
	}

	compact := uint32(exponent<<24) | mantissa
	if isNegative {
		compact |= 0x00800000
	}
	return compact
}
