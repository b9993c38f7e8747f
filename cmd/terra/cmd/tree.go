package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
)

func init() {
	RegisterCommand(&Command{
		Name:  "tree",
		Short: "Print the demo app's widget and layer trees",
		Long: `Build, lay out and paint the demo counter app once, then print the
widget tree with sizes and offsets followed by the layer tree.`,
		Usage: "terra tree",
		Run:   runTree,
	})
}

func runTree(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s := newSession(cfg)
	if err := s.run(context.Background(), nil); err != nil {
		return err
	}
	return printTrees(os.Stdout, s)
}

func printTrees(w io.Writer, s *session) error {
	tree := s.app.Tree()
	fmt.Fprintln(w, "Widgets:")
	if err := tree.DumpWidgets(w); err != nil {
		return err
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Layers:")
	return tree.LayerTree().Dump(w)
}
