package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/stylex-lang/stylex/core/exprfmt"
	"github.com/stylex-lang/stylex/core/schema"
	"github.com/stylex-lang/stylex/core/types"
	"github.com/stylex-lang/stylex/runtime/expr"
	"github.com/stylex-lang/stylex/runtime/expr/builtins"
)

func main() {
	var expect string

	rootCmd := &cobra.Command{
		Use:   "stylex",
		Short: "Validate and type-check style expression documents",
	}

	checkCmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Schema-validate, parse and type-check a style property document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := checkFile(args[0], expect)
			return err
		},
	}
	checkCmd.Flags().StringVar(&expect, "expect", "", "treat FILE as a bare expression with this expected type kind")

	watchCmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Re-check the document whenever the file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchFile(args[0], expect)
		},
	}
	watchCmd.Flags().StringVar(&expect, "expect", "", "treat FILE as a bare expression with this expected type kind")

	fingerprintCmd := &cobra.Command{
		Use:   "fingerprint FILE",
		Short: "Print the canonical sha256 of a valid document's expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := checkFile(args[0], expect)
			if err != nil {
				return err
			}
			sum, err := exprfmt.Fingerprint(parsed)
			if err != nil {
				return err
			}
			fmt.Println(sum)
			return nil
		},
	}
	fingerprintCmd.Flags().StringVar(&expect, "expect", "", "treat FILE as a bare expression with this expected type kind")

	rootCmd.AddCommand(checkCmd, watchCmd, fingerprintCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// checkFile validates and parses one file. With a non-empty expect the file
// holds a bare expression; otherwise it holds a full property document.
func checkFile(path, expect string) (expr.Expression, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw any
	var expected *types.Type
	if expect != "" {
		t, ok := types.KindFromName(expect)
		if !ok {
			return nil, fmt.Errorf("unknown expected type %q", expect)
		}
		expected = &t
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("invalid expression JSON: %w", err)
		}
	} else {
		doc, err := schema.ValidateDocument(data)
		if err != nil {
			return nil, err
		}
		t := doc.ExpectedType()
		expected = &t
		raw, err = doc.RawExpression()
		if err != nil {
			return nil, err
		}
	}

	opts := []expr.ParseOpt{expr.Expected(*expected)}
	parsed, errs := expr.ParseExpression(builtins.Default(), raw, opts...)
	if parsed == nil {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "%s\n", e.Error())
		}
		return nil, fmt.Errorf("%d parse error(s)", len(errs))
	}
	fmt.Printf("%s: ok (%s)\n", path, parsed.Type())
	return parsed, nil
}

// watchFile re-runs checkFile on every write to path until interrupted.
func watchFile(path, expect string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return err
	}

	if _, err := checkFile(path, expect); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				if _, err := checkFile(path, expect); err != nil {
					fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		case <-sigs:
			return nil
		}
	}
}
