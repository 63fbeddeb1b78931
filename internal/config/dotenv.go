package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/multierr"
)

// loadDotEnv loads KEY=VALUE pairs from a dotenv file into the process
// environment and returns how many variables it set. A missing file is not an
// error. Malformed lines are skipped and reported together.
//
// Rules:
// - Empty lines and lines starting with # are ignored.
// - "export KEY=VALUE" is supported.
// - Quoted values keep their content verbatim; unquoted values drop a trailing " # comment".
// - Existing environment variables are not overwritten.
func loadDotEnv(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}
	defer f.Close()

	var (
		set    int
		errs   error
		lineNo int
	)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))

		k, v, ok := strings.Cut(line, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" || strings.ContainsAny(k, " \t") {
			errs = multierr.Append(errs, fmt.Errorf("%s:%d: expected KEY=VALUE", path, lineNo))
			continue
		}

		v = parseValue(strings.TrimSpace(v))
		if os.Getenv(k) != "" {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s:%d: set %s: %w", path, lineNo, k, err))
			continue
		}
		set++
	}
	if err := sc.Err(); err != nil {
		errs = multierr.Append(errs, err)
	}
	return set, errs
}

func parseValue(v string) string {
	if len(v) >= 2 {
		if q := v[0]; (q == '"' || q == '\'') && v[len(v)-1] == q {
			return v[1 : len(v)-1]
		}
	}
	if i := strings.Index(v, " #"); i >= 0 {
		v = strings.TrimSpace(v[:i])
	}
	return v
}
