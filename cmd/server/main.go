package main

import (
	"log"

	"github.com/shashiranjanraj/dressshop/internal/server"
)

func main() {
	if err := server.Start(); err != nil {
		log.Fatal(err)
	}
}
