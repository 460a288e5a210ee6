package main

import (
	"os"

	"horse.fit/manna/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
