// Command clverify verifies credential presentation proofs against a directory of
// issuer public keys.
package main

import "os"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
