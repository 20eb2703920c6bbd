// Export script for dumping the compiled-in archive as JSON.
// Run with: go run ./scripts/export.go [output.json]
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/driftline/infinite-library/internal/corpus"
	"github.com/driftline/infinite-library/internal/domain"
)

// exportedDocument carries the display fields the API resolves on the
// fly, so the dump is readable without the service running.
type exportedDocument struct {
	domain.Document
	CanonStatus domain.CanonStatus `json:"canon_status"`
	AuthorName  string             `json:"author_name"`
}

type export struct {
	ExportedAt time.Time          `json:"exported_at"`
	Factions   []string           `json:"factions"`
	Documents  []exportedDocument `json:"documents"`
	Agents     []domain.Agent     `json:"agents"`
}

func main() {
	outPath := "archive_export.json"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	lib := corpus.Default()
	fmt.Printf("Loaded archive: %d fragments, %d chroniclers\n", len(lib.Documents()), len(lib.Agents()))

	dump := export{
		ExportedAt: time.Now().UTC(),
		Factions:   lib.Factions(),
		Agents:     lib.Agents(),
	}

	for _, d := range lib.Documents() {
		dump.Documents = append(dump.Documents, exportedDocument{
			Document:    d,
			CanonStatus: domain.ClassifyCanon(d.CanonWeight),
			AuthorName:  lib.AuthorName(d.AuthorID),
		})
		fmt.Printf("Exported fragment [%s]: %s\n", domain.ClassifyCanon(d.CanonWeight), truncate(d.Title, 50))
	}

	data, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode archive: %v", err)
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", outPath, err)
	}

	fmt.Println("\n=== Export Complete ===")
	fmt.Printf("\nWrote %s (%d bytes)\n", outPath, len(data))
	fmt.Println("\nTo browse the live archive instead, use:")
	fmt.Println("curl http://localhost:8080/v1/documents")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
