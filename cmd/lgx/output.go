package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

func fmtErr(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

func printSuccess(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
}

func printInfo(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
}

// confirm asks a yes/no question on stdin. An empty answer takes the
// default; anything not starting with 'y' or 'n' repeats the prompt.
func confirm(prompt string, defaultYes bool) bool {
	suffix := "[Y/n]"
	if !defaultYes {
		suffix = "[y/N]"
	}
	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Printf("%s %s ", prompt, suffix)
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			return defaultYes
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
	}
}
