package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
)

// Serves a JSON file of raw event records at GET /events, matching the
// contract the feed adapters expect. Handy as a local stand-in for a
// real upstream during development.
func main() {
	var (
		addr     = flag.String("addr", ":9001", "listen address")
		dataPath = flag.String("data", "data/raw_events.json", "raw events JSON file")
	)
	flag.Parse()

	http.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
		b, err := os.ReadFile(*dataPath)
		if err != nil {
			http.Error(w, "cannot read "+*dataPath+": "+err.Error(), http.StatusInternalServerError)
			return
		}
		// validate JSON so a bad file doesn't silently break
		var tmp []any
		if err := json.Unmarshal(b, &tmp); err != nil {
			http.Error(w, *dataPath+" invalid JSON: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(b)
	})

	log.Printf("feed-server listening on %s", *addr)
	log.Fatal(http.ListenAndServe(*addr, nil))
}
