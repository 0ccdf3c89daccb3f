package main

import (
	"fmt"
	"log"
	"net/http"

	"barnabus-backend/internal/config"
	"barnabus-backend/internal/server"
)

func main() {
	cfg := config.Load()
	s, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}
	addr := ":" + cfg.Port
	fmt.Printf("BARNABUS server listening on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, s.Router()))
}
