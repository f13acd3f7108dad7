// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pos256

import (
	"math/big"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

// TestCompactRoundTrip checks that a round trip through CompactToBig and
// BigToCompact yields the canonical encoding: canonical inputs come back
// unchanged, and encodings whose mantissa is shifted out entirely come back
// as 0.
func TestCompactRoundTrip(t *testing.T) {
	tests := []struct {
		compact uint32
		want    uint32
	}{
		{0x1c00ffff, 0x1c00ffff},
		{0x1d00ffff, 0x1d00ffff},
		{0x01003456, 0x00000000},
		{0x02000056, 0x00000000},
		{0x03000000, 0x00000000},
	}

	for _, test := range tests {
		n := CompactToBig(test.compact)
		got := BigToCompact(n)
		if got != test.want {
			t.Errorf("BigToCompact(CompactToBig(%#08x)) = %#08x, want %#08x\nbig.Int = %s",
				test.compact, got, test.want, spew.Sdump(n))
		}
	}
}

func TestCompactToBig(t *testing.T) {
	tests := []struct {
		compact uint32
		want    string
	}{
		{0x01003456, "0"},
		{0x01123456, "18"},
		{0x02008000, "128"},
		{0x05009234, "2452881408"},
	}

	for _, test := range tests {
		got := CompactToBig(test.compact)
		want, ok := new(big.Int).SetString(test.want, 10)
		if !ok {
			t.Fatalf("bad test fixture %q", test.want)
		}
		if got.Cmp(want) != 0 {
			t.Errorf("CompactToBig(%#08x) = %s, want %s", test.compact, got, want)
		}
	}
}
