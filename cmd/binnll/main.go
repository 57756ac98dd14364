// SPDX-License-Identifier: MIT

// Command binnll evaluates binned negative log-likelihoods described by a
// YAML fit file.
//
//	binnll eval   -f fit.yaml
//	binnll scan   -f fit.yaml --param mean --from 0.4 --to 0.6 --steps 21
//	binnll select -f fit.yaml
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
