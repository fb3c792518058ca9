package main

import (
	"os"
	"strconv"
	"strings"

	"gestao-cli/internal/cli"
)

var entities = map[string]bool{
	"operacoes": true,
	"produtos":  true,
	"tags":      true,
	"usuarios":  true,
}

func isRecordID(s string) bool {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return err == nil && id > 0
}

// rewriteDirectLookupArgs turns `gestao produtos 3` into
// `gestao produtos show 3`. Cobra would otherwise read "3" as an unknown
// subcommand, so argv is rewritten before parsing.
func rewriteDirectLookupArgs(argv []string) []string {
	if len(argv) < 3 {
		return argv
	}

	// Persistent flags may come first; skip them (and the value of the ones
	// that take one).
	valueFlags := map[string]bool{
		"--api":       true,
		"--format":    true,
		"--log-level": true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}

		// First positional token.
		if !entities[a] || i+1 >= len(argv) || !isRecordID(argv[i+1]) {
			return argv
		}
		out := make([]string, 0, len(argv)+1)
		out = append(out, argv[:i+1]...)
		out = append(out, "show")
		out = append(out, argv[i+1:]...)
		return out
	}

	return argv
}

func main() {
	os.Args = rewriteDirectLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
