package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/parleychat/parley/internal/logger"
	"github.com/spf13/cobra"
)

var skipConfirm bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove all log files",
	Long: `Removes the log files under ~/.parley/logs. Conversations and messages
have session lifetime and leave nothing on disk; logs are the only
state that accumulates between runs.

It will prompt for confirmation before proceeding unless the --yes flag is used.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	return runCleanWithReader(os.Stdin)
}

// runCleanWithReader allows injecting a reader for testing
func runCleanWithReader(input io.Reader) error {
	fmt.Println("This will remove all log files in ~/.parley/logs")

	if !skipConfirm {
		if !confirm(input, "Continue?") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	logsCleared, err := logger.ClearLogs()
	if err != nil {
		return fmt.Errorf("error clearing logs: %w", err)
	}

	if logsCleared == 0 {
		fmt.Println("Nothing to clean.")
		return nil
	}
	fmt.Printf("Removed %d log file(s).\n", logsCleared)
	return nil
}

// confirm prompts the user for y/n confirmation
func confirm(input io.Reader, prompt string) bool {
	reader := bufio.NewReader(input)
	fmt.Printf("%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
