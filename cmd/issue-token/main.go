// issue-token prints a signed bearer token for calling the API with AUTH_REQUIRED=true.
//
// Usage:
//
//	API_SECRET=... go run ./cmd/issue-token --subject ops --role admin
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mmdatafocus/storefront_backend/utils"
)

func main() {
	subject := flag.String("subject", "", "Required: token subject")
	role := flag.String("role", "user", "Role claim")
	flag.Parse()

	if strings.TrimSpace(*subject) == "" {
		fmt.Fprintln(os.Stderr, "--subject is required")
		os.Exit(1)
	}

	token, err := utils.JwtGenerate(strings.TrimSpace(*subject), strings.TrimSpace(*role))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to sign token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
