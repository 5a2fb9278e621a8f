// gen-deal-ids: generates bytes32 deal identifiers for the broker test
// suite and prints them as Solidity constant declarations, ready to paste
// into a test contract.
//
// Run from the module root:
//
//	go run ./scripts/gen-deal-ids            # 4 random IDs (A..D)
//	go run ./scripts/gen-deal-ids -n 8       # 8 random IDs (A..H)
//	go run ./scripts/gen-deal-ids -seed dev  # deterministic IDs from a seed
package main

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/ethereum/go-ethereum/crypto"
)

// ── flags ────────────────────────────────────────────────────────────────────

var (
	count = flag.Int("n", 4, "number of deal IDs to generate (max 26)")
	seed  = flag.String("seed", "", "derive IDs deterministically from this seed instead of random bytes")
)

// ── main ─────────────────────────────────────────────────────────────────────

func main() {
	flag.Parse()

	if *count < 1 || *count > 26 {
		fmt.Fprintln(os.Stderr, "gen-deal-ids: -n must be between 1 and 26")
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for i := 0; i < *count; i++ {
		suffix := string(rune('A' + i))

		var id [32]byte
		if *seed != "" {
			copy(id[:], crypto.Keccak256([]byte(*seed+"/"+suffix)))
		} else {
			if _, err := rand.Read(id[:]); err != nil {
				fmt.Fprintln(os.Stderr, "gen-deal-ids: "+err.Error())
				os.Exit(1)
			}
		}

		fmt.Fprintf(w, "bytes32 constant DEAL_ID_%s =\t0x%s;\n", suffix, hex.EncodeToString(id[:]))
	}
	w.Flush()
}
