package main

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/NickTomlin/boa/ast"
	"github.com/NickTomlin/boa/interner"
	"github.com/NickTomlin/boa/parser"
	"github.com/NickTomlin/boa/scope"
)

func newAstCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ast [file]",
		Short: "Parse a program and print its resolved syntax tree",
		Long: "Parse a program, run scope analysis, and print the syntax tree.\n" +
			"Use -o json for machine readable output.",
		Args: cobra.MaximumNArgs(1),
		RunE: runAst,
	}
	addSourceFlags(cmd)
	cmd.Flags().Bool("scopes", false, "also print the scope tree with capture flags")
	return cmd
}

func runAst(cmd *cobra.Command, args []string) error {
	src, filename, err := readSource(cmd, args)
	if err != nil {
		return err
	}

	in := interner.New()
	start := time.Now()
	program, err := parser.Parse(cmd.Context(), src, parserOptions(cmd, filename, in)...)
	if err != nil {
		fmt.Fprint(os.Stderr, renderDiagnostic(err, src, filename, colorFor(cmd, os.Stderr)))
		return errReported
	}
	parseElapsed := time.Since(start)

	start = time.Now()
	tree, err := scope.Analyze(program, scopeOptions(cmd, in)...)
	if err != nil {
		fmt.Fprint(os.Stderr, renderDiagnostic(err, src, filename, colorFor(cmd, os.Stderr)))
		return errReported
	}
	log.Debug().
		Dur("parse", parseElapsed).
		Dur("analyze", time.Since(start)).
		Int("statements", len(program.Stmts)).
		Int("scopes", tree.Len()).
		Bool("strict", program.Strict).
		Msg("front end complete")

	showScopes, _ := cmd.Flags().GetBool("scopes")
	format, _ := cmd.Flags().GetString("output")
	switch strings.ToLower(format) {
	case "json":
		return printAstJSON(cmd, program, tree, showScopes)
	case "text", "":
		printAstText(os.Stdout, program, 0)
		if showScopes {
			fmt.Println()
			printScopesText(os.Stdout, tree)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// astNode is the JSON shape of one syntax tree node.
type astNode struct {
	Type     string     `json:"type"`
	Value    any        `json:"value,omitempty"`
	Children []*astNode `json:"children,omitempty"`
}

type astDocument struct {
	Strict bool         `json:"strict"`
	AST    *astNode     `json:"ast"`
	Scopes []*scopeNode `json:"scopes,omitempty"`
}

type scopeNode struct {
	Index    int            `json:"index"`
	Kind     string         `json:"kind"`
	Parent   int            `json:"parent"`
	FuncBody bool           `json:"funcBody,omitempty"`
	Bindings []*bindingNode `json:"bindings,omitempty"`
}

type bindingNode struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Captured bool   `json:"captured,omitempty"`
}

func printAstJSON(cmd *cobra.Command, program *ast.Program, tree *scope.Tree, showScopes bool) error {
	doc := &astDocument{Strict: program.Strict, AST: nodeToJSON(program)}
	if showScopes {
		doc.Scopes = scopesToJSON(tree)
	}
	data, err := renderJSON(doc, colorFor(cmd, os.Stdout))
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func nodeToJSON(node ast.Node) *astNode {
	if node == nil {
		return nil
	}
	result := &astNode{Type: reflect.TypeOf(node).Elem().Name()}
	result.Value = nodeValue(node)
	for _, child := range childNodes(node) {
		result.Children = append(result.Children, nodeToJSON(child))
	}
	return result
}

// nodeValue extracts the scalar payload a node carries, if any. Children
// cover the rest of the structure.
func nodeValue(node ast.Node) any {
	switch n := node.(type) {
	case *ast.Ident:
		return n.Name
	case *ast.Int:
		return n.Value
	case *ast.Float:
		return n.Value
	case *ast.BigInt:
		return n.Literal
	case *ast.Bool:
		return n.Value
	case *ast.String:
		return n.Value
	case *ast.Template:
		return n.Raw
	case *ast.Prefix:
		return n.Op
	case *ast.Postfix:
		return n.Op
	case *ast.Infix:
		return n.Op
	case *ast.Assign:
		return n.Op
	case *ast.Var:
		return string(n.Kind)
	case *ast.Func:
		if n.Name != nil {
			return n.Name.Name
		}
	case *ast.Class:
		if n.Name != nil {
			return n.Name.Name
		}
	case *ast.Break:
		if n.Label != nil {
			return n.Label.Name
		}
	case *ast.Continue:
		if n.Label != nil {
			return n.Label.Name
		}
	}
	return nil
}

// childLister collects the direct children of one node during a Walk.
type childLister struct {
	root ast.Node
	out  *[]ast.Node
}

func (c childLister) Visit(n ast.Node) ast.Visitor {
	if n == c.root {
		return c
	}
	if n != nil {
		*c.out = append(*c.out, n)
	}
	return nil
}

func childNodes(n ast.Node) []ast.Node {
	var out []ast.Node
	ast.Walk(childLister{root: n, out: &out}, n)
	return out
}

func printAstText(w io.Writer, node ast.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	name := reflect.TypeOf(node).Elem().Name()
	if v := nodeValue(node); v != nil {
		fmt.Fprintf(w, "%s%s %v\n", indent, name, v)
	} else {
		fmt.Fprintf(w, "%s%s\n", indent, name)
	}
	for _, child := range childNodes(node) {
		printAstText(w, child, depth+1)
	}
}

func scopesToJSON(tree *scope.Tree) []*scopeNode {
	out := make([]*scopeNode, 0, tree.Len())
	for i := 0; i < tree.Len(); i++ {
		s := tree.Scope(i)
		node := &scopeNode{
			Index:    i,
			Kind:     s.Kind.String(),
			Parent:   s.Parent,
			FuncBody: s.FuncBody,
		}
		for _, b := range s.SortedBindings() {
			node.Bindings = append(node.Bindings, &bindingNode{
				Name:     b.Name,
				Kind:     b.Kind.String(),
				Captured: b.Captured,
			})
		}
		out = append(out, node)
	}
	return out
}

func printScopesText(w io.Writer, tree *scope.Tree) {
	for i := 0; i < tree.Len(); i++ {
		s := tree.Scope(i)
		label := s.Kind.String()
		if s.FuncBody {
			label += " body"
		}
		if s.Parent >= 0 {
			fmt.Fprintf(w, "scope %d: %s (parent %d)\n", i, label, s.Parent)
		} else {
			fmt.Fprintf(w, "scope %d: %s\n", i, label)
		}
		for _, b := range s.SortedBindings() {
			if b.Captured {
				fmt.Fprintf(w, "  %s %s [captured]\n", b.Kind, b.Name)
			} else {
				fmt.Fprintf(w, "  %s %s\n", b.Kind, b.Name)
			}
		}
	}
}
