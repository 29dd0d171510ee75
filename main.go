package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/FringeNet/OpenHands/internal/utils"
)

func main() {
	if err := utils.LoadEnv(); err != nil {
		log.Printf("no .env loaded: %v", err)
	}

	app := NewApp()
	ctx := context.Background()
	if err := app.startup(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error starting up:", err)
		os.Exit(1)
	}
	defer app.shutdown(ctx)

	settings := app.GetSettings()
	blob, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error encoding settings:", err)
		os.Exit(1)
	}

	fmt.Printf("cache schema version: %d (up to date: %v)\n", app.GetCurrentVersion(), app.IsUpToDate())
	fmt.Println(string(blob))
}
