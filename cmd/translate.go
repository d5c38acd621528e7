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
	"strings"

	"github.com/spf13/cobra"

	"github.com/valpere/gemtext/internal/prompt"
	"github.com/valpere/gemtext/internal/shell"
)

var (
	inputFile   string
	targetLang  string
	style       string
	temperature float64
	maxTokens   int
)

var translateCmd = &cobra.Command{
	Use:   "translate [text]",
	Short: "Translate text into another language",
	Long: `Translate text into Spanish, French, English or Arabic.

The text is taken from the arguments, from --input, or from stdin.`,
	Example: `  gemtext translate --to Spanish "hello world"
  gemtext translate --to Arabic -i letter.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTask(cmd, prompt.Translation, targetLang, args)
	},
}

var enhanceCmd = &cobra.Command{
	Use:   "enhance [text]",
	Short: "Rewrite text in another style",
	Long: `Rewrite text to be more formal, friendly, concise or detailed.

The text is taken from the arguments, from --input, or from stdin.`,
	Example: `  gemtext enhance --style Concise -i notes.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTask(cmd, prompt.Enhancement, style, args)
	},
}

func runTask(cmd *cobra.Command, mode prompt.Mode, option string, args []string) error {
	text, err := readInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	params := a.cfg.Defaults
	if cmd.Flags().Changed("temperature") {
		params.Temperature = temperature
	}
	if cmd.Flags().Changed("max-tokens") {
		params.MaxTokens = maxTokens
	}

	fmt.Fprintln(cmd.ErrOrStderr(), shell.BusyText(mode))

	res, err := a.shell.Handle(ctx, shell.Form{
		Mode:   mode,
		Text:   text,
		Option: option,
		Params: params,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.ErrOrStderr(), res.Heading)
	fmt.Fprintln(cmd.OutOrStdout(), res.Text)
	return nil
}

func readInput(stdin io.Reader, args []string) (string, error) {
	if inputFile != "" {
		b, err := os.ReadFile(inputFile)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(b), nil
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if f, ok := stdin.(*os.File); ok {
		if info, err := f.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
			// interactive terminal with nothing piped in
			return "", nil
		}
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimRight(string(b), "\n"), nil
}

func init() {
	rootCmd.AddCommand(translateCmd)
	rootCmd.AddCommand(enhanceCmd)

	for _, c := range []*cobra.Command{translateCmd, enhanceCmd} {
		c.Flags().StringVarP(&inputFile, "input", "i", "", "Read the text from a file")
		c.Flags().Float64Var(&temperature, "temperature", prompt.DefaultTemperature, "Sampling temperature (0.0-1.0)")
		c.Flags().IntVar(&maxTokens, "max-tokens", prompt.DefaultMaxTokens, "Maximum output tokens (50-1024)")
	}

	translateCmd.Flags().StringVarP(&targetLang, "to", "t", string(prompt.Spanish), "Target language: Spanish, French, English, Arabic")
	enhanceCmd.Flags().StringVarP(&style, "style", "s", string(prompt.Formal), "Style: Formal, Friendly, Concise, Detailed")
}
