package main

import (
	"flag"
	"fmt"
	"log"

	"eventhub/internal/auth"
	"eventhub/pkg/utils"
)

// Mints an admin bearer token from the configured signing secret,
// for use against the protected trigger and scheduler endpoints.
func main() {
	subject := flag.String("subject", "admin", "token subject")
	flag.Parse()

	cfg := utils.LoadAuthConfig()
	tokens := auth.TokenService{
		Secret:   []byte(cfg.JWTSecret),
		Issuer:   cfg.JWTIssuer,
		Duration: cfg.JWTDuration,
	}

	token, exp, err := tokens.Sign(*subject)
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}

	fmt.Println(token)
	log.Printf("expires at %s", exp.Format("2006-01-02 15:04:05 MST"))
}
