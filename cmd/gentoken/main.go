// Command gentoken prints a fresh API access token for the shared
// bearer secret.
package main

import (
	"fmt"
	"log"

	"github.com/sellerinteractive/attio-sync/internal/pkg/urlgen"
)

func main() {
	token, err := urlgen.SecureToken(32)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("\n=== API Access Token Generator ===")
	fmt.Println("\nGenerated token:")
	fmt.Println(token)
	fmt.Println("\nAdd this to your .env file as:")
	fmt.Printf("API_ACCESS_TOKEN=%s\n", token)
	fmt.Println("\nKeep this token secure and do not share it.")
}
