// Command hashsecret prints the bcrypt hash of a secret read from stdin,
// for use as admin.password_hash.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"impactecho-backend/internal/security"
)

func main() {
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(os.Stderr, "usage: echo <secret> | hashsecret")
		os.Exit(2)
	}
	hash, err := security.HashSecret(strings.TrimRight(line, "\r\n"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash secret: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
