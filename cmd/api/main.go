package main

import (
	"log/slog"
	"os"

	"github.com/showseat/booking-api/internal/app"
)

func main() {
	err := app.Run()
	if err != nil {
		slog.Error("application terminated", "error", err)
		os.Exit(1)
	}
}
