// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	flags "github.com/jessevdk/go-flags"
)

type config struct {
	VectorPath string `long:"vector" description:"path to a JSON test-vector file" required:"true"`
	Verbose    bool   `long:"verbose" description:"treat a stalled V1 forward walk as a fatal error rather than a soft retry"`
}

type result struct {
	OK        bool   `json:"ok"`
	HashProof string `json:"hash_proof,omitempty"`
	Target    string `json:"target,omitempty"`
	Error     string `json:"error,omitempty"`
}

func main() {
	var cfg config
	if _, err := flags.Parse(&cfg); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	res, err := run(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "kernelcheck:", err)
		os.Exit(2)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		fmt.Fprintln(os.Stderr, "kernelcheck:", err)
		os.Exit(2)
	}
	if !res.OK {
		os.Exit(1)
	}
}

func run(cfg config) (result, error) {
	f, err := os.Open(cfg.VectorPath)
	if err != nil {
		return result{}, fmt.Errorf("open vector: %w", err)
	}
	defer f.Close()

	facade, params, tip, coinstake, bits, err := loadVector(f)
	if err != nil {
		return result{}, err
	}
	facade.Verbose = cfg.Verbose

	hashProof, target, verr := facade.CheckProofOfStake(tip, coinstake, bits, params)
	if verr != nil {
		return result{OK: false, Error: verr.Error()}, nil
	}

	targetStr := ""
	if target != nil {
		targetStr = target.String()
	}
	return result{OK: true, HashProof: hashProof.String(), Target: targetStr}, nil
}
