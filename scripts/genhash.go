package main

import (
	"fmt"
	"os"

	"job-board-backend/pkg/security"
)

// Prints the stored form of each password given on the command line, for
// seeding accounts by hand.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: go run scripts/genhash.go <password> [password...]")
		os.Exit(1)
	}

	for _, pass := range os.Args[1:] {
		hash, err := security.HashPassword(pass)
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}
		fmt.Printf("Password: %s\nHash: %s\n\n", pass, hash)
	}
}
