package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zhubert/erwindb/internal/config"
	"github.com/zhubert/erwindb/internal/logger"
)

var (
	skipConfirm bool
	cleanAll    bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the debug log and, with --all, saved settings",
	Long: `Removes the debug log file. With --all the config file is removed as well,
which resets the theme and every other saved setting. The archive itself is
never touched.

It will prompt for confirmation before proceeding unless the --yes flag is used.`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	cleanCmd.Flags().BoolVar(&cleanAll, "all", false, "Also remove the config file")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return fmt.Errorf("error locating config: %w", err)
		}
		path = p
	}
	return runCleanWithReader(cmd.OutOrStdout(), os.Stdin, logger.DefaultLogPath, path)
}

// runCleanWithReader allows injecting a reader and paths for testing
func runCleanWithReader(out io.Writer, input io.Reader, logPath, cfgPath string) error {
	targets := []string{}
	if fileExists(logPath) {
		targets = append(targets, logPath)
	}
	if cleanAll && fileExists(cfgPath) {
		targets = append(targets, cfgPath)
	}

	if len(targets) == 0 {
		fmt.Fprintln(out, "Nothing to clean.")
		return nil
	}

	fmt.Fprintln(out, "This will remove:")
	for _, t := range targets {
		fmt.Fprintf(out, "  - %s\n", t)
	}

	// Confirm unless --yes flag is set
	if !skipConfirm {
		if !confirm(out, input, "Continue?") {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	removed := 0
	for _, t := range targets {
		if err := os.Remove(t); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: error removing %s: %v\n", t, err)
			continue
		}
		removed++
	}
	fmt.Fprintf(out, "Removed %d file(s).\n", removed)
	return nil
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// confirm prompts the user for y/n confirmation
func confirm(out io.Writer, input io.Reader, prompt string) bool {
	reader := bufio.NewReader(input)
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
