package main

import (
	"flag"
	"log"
	"os"

	"chat-app/session-service/internal/deploy"
)

func main() {
	dir := flag.String("dir", ".", "directory holding the .env file")
	strict := flag.Bool("strict", false, "exit with status 2 when the production checklist has warnings")
	flag.Parse()

	warnings, err := deploy.Prepare(*dir, os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
	if *strict && len(warnings) > 0 {
		os.Exit(2)
	}
}
