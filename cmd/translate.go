/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	inputFile  string
	outputFile string
)

var translateCmd = &cobra.Command{
	Use:   "translate [text...]",
	Short: "Translate Japanese text to Korean",
	Long: `Translate Japanese text to Korean with a single engine session.

The text is taken from the arguments, joined by spaces, or read whole from
--input ("-" for stdin). The result is written to --output or stdout.

With --cache the translation memory is consulted first and updated after
each successful translation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if inputFile != "" && len(args) > 0 {
			return fmt.Errorf("give either text arguments or --input, not both")
		}
		if inputFile != "" && inputFile != "-" && inputFile == outputFile {
			return fmt.Errorf("input file and output file cannot be the same")
		}

		text, err := readInput(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}

		eng, err := startEngine(cfg)
		if err != nil {
			return err
		}
		defer eng.Close()

		tr, closeMemory, err := buildTranslator(cfg, eng)
		if err != nil {
			return err
		}
		defer closeMemory()

		result, err := tr.Translate(context.Background(), text)
		if err != nil {
			return fmt.Errorf("translation failed: %w", err)
		}
		logger.Debug("translated", zap.String("mode", tr.Name()), zap.Int("in", len(text)), zap.Int("out", len(result)))

		return writeOutput(cmd.OutOrStdout(), result)
	},
}

func readInput(stdin io.Reader, args []string) (string, error) {
	switch inputFile {
	case "":
		if len(args) == 0 {
			return "", fmt.Errorf("nothing to translate")
		}
		return strings.Join(args, " "), nil
	case "-":
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(b), nil
	default:
		b, err := os.ReadFile(inputFile)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(b), nil
	}
}

func writeOutput(stdout io.Writer, result string) error {
	if outputFile == "" || outputFile == "-" {
		_, err := fmt.Fprintln(stdout, result)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outputFile, []byte(result), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input file path (\"-\" for stdin)")
	translateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path (default stdout)")
	addSessionFlags(translateCmd)
}

// addSessionFlags registers the flags shared by commands that translate.
func addSessionFlags(c *cobra.Command) {
	c.Flags().Bool("escape", true, "Escape Hangul and engine-unsafe symbols around each call")
	c.Flags().Bool("cache", false, "Use the translation memory")
	c.Flags().String("db", "./data/eztrans.db", "Database path for translation memory")
	c.Flags().Int("max-runes", 0, "Split input longer than this many characters (0 = never)")
}
