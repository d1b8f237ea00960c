// Command urlgen generates url rewrites for catalog entities read from a
// JSONL export and upserts them into the url_rewrite table. It is intended
// to be invoked by an external cron job or after a catalog import.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
