package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pageza/recipemanager/backend/internal/cmd"
)

func main() {
	if err := cmd.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
