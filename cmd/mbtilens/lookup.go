package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tinytelemetry/mbtilens/internal/model"
	"github.com/tinytelemetry/mbtilens/internal/route"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup [code]",
	Short: "Print the description for an MBTI code",
	Long: `Print the description and color for an MBTI code.

Without an argument the code is asked for interactively. Unknown codes
print the DEFAULT description.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var raw string
		if len(args) == 1 {
			raw = args[0]
		} else {
			value, err := promptCode(cfg.Strings)
			if err != nil {
				return err
			}
			raw = value
		}

		r, err := route.FromInput(raw)
		if err != nil {
			return errors.New(cfg.Strings.EmptyInputError)
		}

		c, err := buildCatalog(cfg)
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		printResolution(cmd.OutOrStdout(), c.Resolve(r.Code), cfg.Strings, cfg.Mode)
		return nil
	},
}

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the codes in the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := buildCatalog(cfg)
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		for _, code := range c.Codes() {
			fmt.Fprintln(cmd.OutOrStdout(), code)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(typesCmd)
}

func promptCode(s model.Strings) (string, error) {
	prompt := promptui.Prompt{
		Label:    s.HomeHeading,
		Validate: validateCode(s.EmptyInputError),
	}
	value, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("code: %w", err)
	}
	return value, nil
}

func validateCode(emptyMsg string) promptui.ValidateFunc {
	return func(input string) error {
		if strings.TrimSpace(input) == "" {
			return errors.New(emptyMsg)
		}
		return nil
	}
}

// printResolution writes res the way the result page lays it out:
// heading, description, then the colour.
func printResolution(w io.Writer, res model.Resolution, s model.Strings, mode model.DisplayMode) {
	fmt.Fprintln(w, s.Heading(mode, res))
	fmt.Fprintln(w)
	fmt.Fprintln(w, res.Record.Description)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "color: %s\n", res.Record.Color)
	if !res.Known && res.Code != model.DefaultCode {
		fmt.Fprintf(w, "(%s is not a known type; showing %s)\n", res.Code, model.DefaultCode)
	}
}
