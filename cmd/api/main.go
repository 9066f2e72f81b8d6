package main

import (
	"context"
	"log"

	"github.com/avalder/go-bookstore-api/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("bookstore API failed: %v", err)
	}
}
