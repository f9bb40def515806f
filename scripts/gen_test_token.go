package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/Starling-Strategy/stonesoup/internal/auth"
)

// generates a JWT for local API testing:
//
//	go run scripts/gen_test_token.go <user-id> <email> <cauldron-id>
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	if len(os.Args) != 4 {
		log.Fatalf("usage: %s <user-id> <email> <cauldron-id>", os.Args[0])
	}

	token, err := auth.GenerateJWT(os.Args[1], os.Args[2], os.Args[3])
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}

	fmt.Println(token)
}
