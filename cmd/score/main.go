// Command score runs the scoring engine offline: given the survey document
// and a JSON object of raw answers keyed by question id, it prints the
// summary aggregate to stdout. Useful for scoring exported answer sets and
// for exercising the engine without a server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"healthprofile/internal/model"
	"healthprofile/internal/schema"
	"healthprofile/internal/scoring"
	"healthprofile/internal/store"
)

func main() {
	schemaSource := flag.String("schema", "pytania.json", "survey schema file or URL")
	answersPath := flag.String("answers", "", "JSON file mapping question id to raw answer value")
	flag.Parse()

	if *answersPath == "" {
		log.Fatal("missing required -answers file")
	}

	loader := schema.NewLoader()
	survey, err := loader.Load(context.Background(), *schemaSource)
	if err != nil {
		log.Fatalf("failed to load survey schema: %v", err)
	}

	data, err := os.ReadFile(*answersPath)
	if err != nil {
		log.Fatalf("failed to read answers: %v", err)
	}
	var answers map[string]model.Value
	if err := json.Unmarshal(data, &answers); err != nil {
		log.Fatalf("malformed answers file: %v", err)
	}

	st := store.New()
	for id, v := range answers {
		st.Set(id, v)
	}

	summarizer := scoring.NewSummarizer(survey, schema.NewIndex(survey))
	summary := summarizer.Summarize(st)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		log.Fatalf("failed to encode summary: %v", err)
	}
}
