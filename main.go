package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"pbcat/cmd"
	"pbcat/pkg/logging"
)

func main() {
	err := cmd.Execute()
	syncLogger()

	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorLabel(), err)
		os.Exit(1)
	}
}

// syncLogger flushes the logger. Sync on a pipe or character device reports
// "invalid argument" on some platforms, so only terminals and regular files
// are synced.
func syncLogger() {
	if !term.IsTerminal(int(os.Stderr.Fd())) && !isRegularFile(os.Stderr) {
		return
	}
	if syncErr := logging.Logger.Sync(); syncErr != nil {
		lowerErr := strings.ToLower(syncErr.Error())
		if !strings.Contains(lowerErr, "invalid argument") && !strings.Contains(lowerErr, "inappropriate ioctl") {
			log.Printf("Logger sync failed: %v", syncErr)
		}
	}
}

// errorLabel returns "Error:", in bold red when stderr is a terminal and
// NO_COLOR is unset.
func errorLabel() string {
	label := color.New(color.FgRed, color.Bold)
	if term.IsTerminal(int(os.Stderr.Fd())) && os.Getenv("NO_COLOR") == "" {
		label.EnableColor()
	} else {
		label.DisableColor()
	}
	return label.Sprint("Error:")
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}
