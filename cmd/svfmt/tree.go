package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"svfmt/internal/cst"
	"svfmt/internal/diagfmt"
	"svfmt/internal/driver"
	"svfmt/internal/format"
	"svfmt/internal/source"
)

var treeCmd = &cobra.Command{
	Use:   "tree [flags] <file>",
	Short: "Print the concrete syntax tree of a source file",
	Long: `Tree parses one file and prints its concrete syntax tree. With
--comments it also lists where every comment is attached.`,
	Args: cobra.ExactArgs(1),
	RunE: runTree,
}

func init() {
	treeCmd.Flags().String("format", "dump", "output format (dump|sexp)")
	treeCmd.Flags().Bool("comments", false, "list comment attachments after the tree")
}

func runTree(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	path := args[0]

	outFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	showComments, err := cmd.Flags().GetBool("comments")
	if err != nil {
		return fmt.Errorf("failed to get comments flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	lang, ok := driver.LanguageFor(path)
	if !ok {
		return fmt.Errorf("tree: %s: unsupported file type", path)
	}
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return fmt.Errorf("tree: %w", err)
	}
	file := fs.Get(id)

	root, bag, err := lang.Parse(cmd.Context(), id, file.Content, maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tree: %w", err)
	}
	if bag != nil && bag.Len() > 0 {
		bag.Sort()
		diagfmt.Pretty(os.Stderr, bag.Items(), fs, diagfmt.PrettyOpts{Color: isTerminal(os.Stderr), Context: 1, ShowNotes: true})
	}

	out := cmd.OutOrStdout()
	switch outFormat {
	case "dump":
		if err := cst.Dump(out, root, file.Content); err != nil {
			return err
		}
	case "sexp":
		fmt.Fprintln(out, cst.Sexp(root))
	default:
		return fmt.Errorf("tree: unsupported format %q", outFormat)
	}

	if showComments {
		att := format.Attach(root, file.Content, lang.Table)
		for _, a := range att.All() {
			pos := file.Position(a.Comment.Start)
			anchor := "<eof>"
			if a.Anchor != nil {
				anchor = string(a.Anchor.Kind)
			}
			fmt.Fprintf(out, "%d:%d %s %s %s\n", pos.Line, pos.Col, a.Side, anchor, a.Comment.Text(file.Content))
		}
	}
	return nil
}
