// Command xmldom is a small CLI over the dom/dom/parser/dom/serializer
// packages: format (pretty-print), canon (canonical-form serialization) and
// validate (DTD-driven validation), replacing the teacher's hand-rolled
// xml/cli.go dispatcher with a github.com/spf13/cobra command tree. This is
// the only package in the module that calls klog.InitFlags, per spec §11's
// "cmd/xmldom is the only place that calls klog.InitFlags."
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/arturoeanton/xmldom/dom"
	"github.com/arturoeanton/xmldom/dom/parser"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "xmldom",
		Short:         "A DOM Level 3 Core / Load-Save XML processor",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Exposes klog's global flags (-v, -logtostderr, ...) on the cobra
	// command tree, the same way gardener-docforge's cobra root wires a
	// standard library flag.FlagSet in alongside its own pflag definitions.
	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	root.PersistentFlags().AddGoFlagSet(klogFlags)

	root.AddCommand(newFormatCmd(), newCanonCmd(), newValidateCmd())
	return root
}

// getInputReader opens args[0] as a file, or falls back to stdin when no
// path argument was given -- grounded on the teacher's xml/cli.go helper of
// the same name and purpose, rebuilt for cobra's args slice instead of raw
// os.Args.
func getInputReader(args []string) (*os.File, error) {
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	stat, _ := os.Stdin.Stat()
	if (stat.Mode() & os.ModeCharDevice) == 0 {
		return os.Stdin, nil
	}
	return nil, fmt.Errorf("no input provided (pipe or file path)")
}

func parseDocument(args []string, charsetOverride string) (*dom.Document, error) {
	r, err := getInputReader(args)
	if err != nil {
		return nil, err
	}
	if r != os.Stdin {
		defer r.Close()
	}

	var failures []*dom.DOMError
	handler := dom.ErrorHandler(func(de *dom.DOMError) bool {
		failures = append(failures, de)
		klog.V(2).Infof("xmldom: %s: %s", de.Type, de.Message)
		return de.Severity != dom.SeverityFatal
	})

	p := parser.New(parser.Options{
		CharsetOverride: charsetOverride,
		ErrorHandler:    handler,
	})
	doc, err := p.Parse(r)
	if err != nil {
		return doc, err
	}
	for _, de := range failures {
		if de.Severity == dom.SeverityFatal {
			return doc, de
		}
	}
	return doc, nil
}
