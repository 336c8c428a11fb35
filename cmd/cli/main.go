package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gabpaderog/maxicoffee-admin/internal/mirror"
)

// Operator tool for the offline mirror: dump a collection snapshot as JSON
// or drop it entirely.

func main() {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	exportKey := exportCmd.String("key", "", "Mirror key to export, e.g. products-store")

	clearCmd := flag.NewFlagSet("clear", flag.ExitOnError)
	clearKey := clearCmd.String("key", "", "Mirror key to clear, e.g. orders-store")

	if len(os.Args) < 2 {
		fmt.Println("expected 'export' or 'clear' subcommand")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		if *exportKey == "" {
			fmt.Println("key is required")
			exportCmd.PrintDefaults()
			os.Exit(1)
		}
		exportSnapshot(*exportKey)
	case "clear":
		clearCmd.Parse(os.Args[2:])
		if *clearKey == "" {
			fmt.Println("key is required")
			clearCmd.PrintDefaults()
			os.Exit(1)
		}
		clearSnapshot(*clearKey)
	default:
		fmt.Println("expected 'export' or 'clear' subcommand")
		os.Exit(1)
	}
}

func openStore() *mirror.SQLiteStore {
	path := os.Getenv("MIRROR_PATH")
	if path == "" {
		path = "./maxicoffee-mirror.db"
	}

	store, err := mirror.NewSQLiteStore(path)
	if err != nil {
		log.Fatalf("Failed to open mirror: %v", err)
	}
	return store
}

func exportSnapshot(key string) {
	store := openStore()
	defer store.Close()

	data, ok, err := store.Get(context.Background(), key)
	if err != nil {
		log.Fatalf("Failed to read snapshot: %v", err)
	}
	if !ok {
		// Absent key is an empty collection, not an error.
		fmt.Println("[]")
		return
	}

	var pretty json.RawMessage = data
	out, err := json.MarshalIndent(pretty, "", "  ")
	if err != nil {
		log.Fatalf("Snapshot for %q is not valid JSON: %v", key, err)
	}
	fmt.Println(string(out))
}

func clearSnapshot(key string) {
	store := openStore()
	defer store.Close()

	if err := store.Delete(context.Background(), key); err != nil {
		log.Fatalf("Failed to clear snapshot: %v", err)
	}
	fmt.Printf("Snapshot %q cleared.\n", key)
}
