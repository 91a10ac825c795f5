package main

import (
	"fmt"
	"log"
	"os"

	"atiempo.app/atiempo/security"
)

// Mints a device token for a badge terminal. The secret comes from the
// same env var the web service validates with.
func main() {
	secret := os.Getenv("ATIEMPO_SIGNING_SECRET")
	if secret == "" {
		log.Fatal("ATIEMPO_SIGNING_SECRET not set")
	}

	name := "badge-terminal"
	if len(os.Args) > 1 {
		name = os.Args[1]
	}

	token, err := security.CreateIdentityToken(&security.AtiempoIdentity{
		Id:       0,
		UserName: name,
		Provider: "device",
	}, secret, 365*24*3600)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(token)
}
