package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/podkeeper/cmd/podkeeper"
	"github.com/arthur-debert/podkeeper/pkg/ui/styles"
)

func main() {
	rootCmd := podkeeper.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errorStyle := styles.GetStyle(styles.Error)
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
