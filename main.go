package main

import (
	"log"

	"chat-app/session-service/internal"
)

func main() {
	if err := internal.Run(); err != nil {
		log.Fatal(err)
	}
}
