package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"
)

var (
	checkTimeout time.Duration
	checkJSON    bool
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <claim>",
	Short: "Verify a single claim from the command line",
	Long: `Check runs one claim through the verification pipeline and prints the
verdict without starting the HTTP server.

Example:
  veritas check "The Earth is flat"
  veritas check "Paris is the capital of France" --json
  veritas check "2 + 2 = 4" --timeout 10s`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 2*time.Minute, "overall check timeout")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "print the full record as JSON")
}

func runCheck(cmd *cobra.Command, args []string) error {
	claim := strings.TrimSpace(strings.Join(args, " "))
	length := utf8.RuneCountInString(claim)
	if length < 5 {
		return fmt.Errorf("claim must be at least 5 characters")
	}
	if length > 1000 {
		return fmt.Errorf("claim must be at most 1000 characters")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	checker, st, err := buildChecker(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	rec, err := checker.Check(ctx, claim, "")
	if err != nil && rec == nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if checkJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}

	fmt.Printf("Claim:      %s\n", rec.Claim)
	fmt.Printf("Verdict:    %s\n", rec.Verdict)
	fmt.Printf("Confidence: %.1f%%\n", rec.ConfidenceScore)
	fmt.Printf("Time:       %dms\n", rec.ProcessingTimeMS)
	fmt.Printf("\n%s\n", rec.Explanation)
	return nil
}
