package main

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
)

// keepAlive answers uptime pingers so free-tier hosts don't idle the process
// out. Failure to bind is logged but never fatal.
func keepAlive(addr string) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "alive")
	})

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error().Err(err).Str("addr", addr).Msg("keep-alive listener stopped")
	}
}
