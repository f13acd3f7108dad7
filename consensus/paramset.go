// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package consensus

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// paramSetFile is the on-disk shape of a parameter-set document: a map of
// preset name to its tunables, so an operator can add a new chain's
// constants without a rebuild. It mirrors the teacher's habit of keying
// chain behavior off a *chaincfg.Params value, but data-driven instead of
// hardcoded pointer identity.
type paramSetFile struct {
	Presets map[string]yamlParams `yaml:"presets"`
}

type yamlParams struct {
	StakeMinAge        int64            `yaml:"stake_min_age"`
	StakeMaxAge        int64            `yaml:"stake_max_age"`
	ModifierInterval   int64            `yaml:"modifier_interval"`
	TargetSpacing      int64            `yaml:"target_spacing"`
	ProtocolV2Height   int32            `yaml:"protocol_v2_height"`
	CoinbaseMaturity   int32            `yaml:"coinbase_maturity"`
	StakeTimestampMask uint32           `yaml:"stake_timestamp_mask"`
	StakeModifierCheckpoints map[int32]uint32 `yaml:"stake_modifier_checkpoints"`
}

// LoadParamSets parses a YAML document of named parameter sets, as produced
// by an operator describing a chain's consensus constants outside of a Go
// rebuild. The top-level key is "presets"; each entry becomes a *Params
// reachable by name from the returned map.
func LoadParamSets(r io.Reader) (map[string]*Params, error) {
	var doc paramSetFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("consensus: decode parameter sets: %w", err)
	}

	out := make(map[string]*Params, len(doc.Presets))
	for name, p := range doc.Presets {
		out[name] = &Params{
			Name:                     name,
			StakeMinAge:              p.StakeMinAge,
			StakeMaxAge:              p.StakeMaxAge,
			ModifierInterval:         p.ModifierInterval,
			TargetSpacing:            p.TargetSpacing,
			ProtocolV2Height:         p.ProtocolV2Height,
			CoinbaseMaturity:         p.CoinbaseMaturity,
			StakeTimestampMask:       p.StakeTimestampMask,
			StakeModifierCheckpoints: p.StakeModifierCheckpoints,
		}
	}
	return out, nil
}
