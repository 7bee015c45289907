package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/pkg/frozen"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/rename"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const defaultSession = "default"

var renameCmd = &cobra.Command{
	Use:   "rename [file]",
	Short: "Rename state identifiers to dense integers",
	Long: `Reads state identifiers from a YAML file or stdin and prints the integer
assigned to each one.

The input is either a sequence (one session) or a mapping from session name
to sequence. Identifiers may be any YAML value; composite ones are frozen
first. Sessions draw from one shared counter unless --isolate is set.

Example input:

  left:  [q0, q1, q0]
  right: [q0, [q1, q2]]`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("start") {
			cfg.Counter.Start, _ = cmd.Flags().GetInt("start")
		}
		isolate, _ := cmd.Flags().GetBool("isolate")

		in, closeIn, err := openInput(cmd, args)
		if err != nil {
			return err
		}
		defer closeIn()

		out := cmd.OutOrStdout()
		return runRename(in, out, renameOptions{
			newSource: sourceFactory(cfg.Counter),
			isolate:   isolate,
			styler:    tui.NewStyler(out),
			opts:      []rename.Option{rename.WithLogger(logger)},
		})
	},
}

func init() {
	rootCmd.AddCommand(renameCmd)
	renameCmd.Flags().Int("start", 0, "First integer handed out by the counter")
	renameCmd.Flags().Bool("isolate", false, "Give every session its own counter")
}

type renameOptions struct {
	newSource func(name string) (ports.IDSource, error)
	isolate   bool
	styler    *tui.Styler
	opts      []rename.Option
}

type sessionInput struct {
	name string
	ids  []*yaml.Node
}

func runRename(in io.Reader, out io.Writer, o renameOptions) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	inputs, err := parseSessions(data)
	if err != nil {
		return err
	}

	var shared ports.IDSource
	if !o.isolate {
		if shared, err = o.newSource(""); err != nil {
			return err
		}
		defer closeSource(shared)
	}

	st := o.styler
	if st == nil {
		st = tui.Plain()
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\n", st.Muted("SESSION"), st.Muted("STATE"), st.Muted("ID"))

	for _, input := range inputs {
		source := shared
		if o.isolate {
			if source, err = o.newSource(input.name); err != nil {
				return err
			}
			defer closeSource(source)
		}

		sess := rename.New(source, o.opts...)
		for _, node := range input.ids {
			raw, err := decodeNode(node)
			if err != nil {
				return err
			}
			key, err := frozen.TryFreeze(raw)
			if err != nil {
				return fmt.Errorf("session %s, line %d: %w", input.name, node.Line, err)
			}
			id, err := sess.Rename(key)
			if err != nil {
				return fmt.Errorf("session %s, line %d: %w", input.name, node.Line, err)
			}
			fmt.Fprintf(tw, "%s\t%v\t%s\n", input.name, key, st.ID(id))
		}
	}
	return tw.Flush()
}

// parseSessions keeps the document order of both sessions and identifiers.
func parseSessions(data []byte) ([]sessionInput, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse input: %w", err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, nil
	}

	doc := root.Content[0]
	switch doc.Kind {
	case yaml.SequenceNode:
		return []sessionInput{{name: defaultSession, ids: doc.Content}}, nil
	case yaml.MappingNode:
		inputs := make([]sessionInput, 0, len(doc.Content)/2)
		for i := 0; i+1 < len(doc.Content); i += 2 {
			name, list := doc.Content[i], doc.Content[i+1]
			if name.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: session name must be a scalar", name.Line)
			}
			if list.Kind != yaml.SequenceNode {
				return nil, fmt.Errorf("line %d: session %s must be a sequence", list.Line, name.Value)
			}
			inputs = append(inputs, sessionInput{name: name.Value, ids: list.Content})
		}
		return inputs, nil
	default:
		return nil, fmt.Errorf("line %d: expected a sequence or a mapping of sequences", doc.Line)
	}
}

func closeSource(s ports.IDSource) {
	if c, ok := s.(io.Closer); ok {
		c.Close()
	}
}
