package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/pkg/frozen"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var freezeCmd = &cobra.Command{
	Use:   "freeze [file]",
	Short: "Freeze a YAML or JSON document and print its structural hash",
	Long: `Reads one YAML (or JSON) document from the given file or stdin, freezes it
and prints its kind, its 64-bit structural hash and its frozen form.

Sequences become tuples, mappings become frozen maps and YAML !!set nodes
become frozen sets.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		in, closeIn, err := openInput(cmd, args)
		if err != nil {
			return err
		}
		defer closeIn()

		out := cmd.OutOrStdout()
		return runFreeze(in, out, format, tui.NewStyler(out))
	},
}

func init() {
	rootCmd.AddCommand(freezeCmd)
	freezeCmd.Flags().StringP("format", "f", "text", "Output format (text, json, yaml)")
}

type freezeOutput struct {
	Kind  string `json:"kind" yaml:"kind"`
	Hash  string `json:"hash" yaml:"hash"`
	Value any    `json:"value" yaml:"value"`
}

func runFreeze(in io.Reader, out io.Writer, format string, st *tui.Styler) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("failed to parse input: %w", err)
	}
	doc, err := decodeNode(&root)
	if err != nil {
		return err
	}

	value, err := frozen.TryFreeze(doc)
	if err != nil {
		return err
	}
	h, err := frozen.Hash(value)
	if err != nil {
		return err
	}

	res := freezeOutput{
		Kind:  frozen.Classify(doc).String(),
		Hash:  fmt.Sprintf("%016x", h),
		Value: value,
	}

	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		_, err := fmt.Fprintf(out, "%s %s\n%v\n", st.Muted(res.Kind), st.Hash(res.Hash), value)
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// openInput returns the file named by args[0], or stdin when no file is given.
func openInput(cmd *cobra.Command, args []string) (io.Reader, func(), error) {
	if len(args) == 0 || args[0] == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, func() { f.Close() }, nil
}
