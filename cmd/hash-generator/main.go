// Command hash-generator produces the bcrypt hash for an operator secret,
// suitable for the auth.operator_secret_hash config value.
//
// Usage: hash-generator <secret>
package main

import (
	"fmt"
	"os"

	"github.com/gatewaylabs/gateway-api/internal/service/auth"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: hash-generator <secret>")
		os.Exit(2)
	}

	hash, err := auth.HashSecret(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error generating hash: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(hash)
}
