package main

import (
	"fmt"

	"github.com/pngtools/pngr/cmd/cmd"
	"github.com/pngtools/pngr/internal/env"
)

func main() {
	PrintLogo()

	_ = cmd.Execute()
}

func PrintLogo() {
	fmt.Println(" _ __  _ __   __ _ _ __ ")
	fmt.Println("| '_ \\| '_ \\ / _` | '__|")
	fmt.Println("| |_) | | | | (_| | |   ")
	fmt.Println("| .__/|_| |_|\\__, |_|   ")
	fmt.Println("|_|          |___/      ")
	fmt.Println()
	fmt.Println("PNG decoding and inspection tool")
	fmt.Println()
	fmt.Printf("Version:   %s\n", env.Version)
	fmt.Printf("Commit:    %s\n", env.CommitHash)
	fmt.Printf("Build Time: %s\n", env.BuildTime)
	fmt.Println(" ")
}
