package main

import (
	"context"
	"log"
	"os"

	"github.com/urbanfix/urbanfix/client"
)

func main() {
	cfg, err := client.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	app := client.NewApp(cfg)
	app.Run(context.Background())
}
