// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kernel

import (
	"testing"

	"github.com/WikiMin3R/ClamsE/consensus"
)

func TestGetWeightClampsAtMaxAge(t *testing.T) {
	params := consensus.UnitTest()
	got := GetWeight(0, params.StakeMaxAge*10, params)
	want := params.StakeMaxAge
	if got != want {
		t.Errorf("GetWeight = %d, want %d", got, want)
	}
}

func TestGetWeightIsNotClampedBelowZero(t *testing.T) {
	params := consensus.UnitTest()
	got := GetWeight(0, params.StakeMinAge/2, params)
	if got >= 0 {
		t.Errorf("GetWeight = %d, want a negative value for an immature coin", got)
	}
}

func TestGetWeightZeroAtMinAge(t *testing.T) {
	params := consensus.UnitTest()
	got := GetWeight(0, params.StakeMinAge, params)
	if got != 0 {
		t.Errorf("GetWeight at exactly StakeMinAge = %d, want 0", got)
	}
}
