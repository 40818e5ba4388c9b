package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arturoeanton/xmldom/dom/serializer"
)

// newFormatCmd builds the "format" subcommand: parse, then pretty-print.
// Grounded on the teacher's CliFormat (xml/cli.go), which reads into an
// OrderedMap and re-encodes with WithPrettyPrint; this reads into a
// dom.Document instead and re-serializes with serializer.Options.PrettyPrint.
func newFormatCmd() *cobra.Command {
	var encoding string
	var charset string

	cmd := &cobra.Command{
		Use:   "format [file]",
		Short: "Pretty-print an XML document (reads stdin if no file given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := parseDocument(args, charset)
			if err != nil {
				return err
			}

			s := serializer.New(serializer.Options{
				XMLDeclaration:        true,
				PrettyPrint:           true,
				DiscardDefaultContent: true,
				Encoding:              encoding,
			})
			if err := s.WriteTo(os.Stdout, doc); err != nil {
				return fmt.Errorf("xmldom format: %w", err)
			}
			fmt.Fprintln(os.Stdout)
			return nil
		},
	}
	cmd.Flags().StringVar(&encoding, "encoding", "", "output encoding override (default: document's own)")
	cmd.Flags().StringVar(&charset, "charset", "", "force an input charset, bypassing BOM/declaration sniffing")
	return cmd
}
