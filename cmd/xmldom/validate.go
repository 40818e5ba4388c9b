package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/arturoeanton/xmldom/dom"
)

// newValidateCmd builds the "validate" subcommand: parse and run dom.Validate
// against the document's own DTD, printing every *dom.ValidationIssue found.
// Grounded on the teacher's validate.go rule-list walk, generalized here from
// ad hoc path rules to the DTD ATTLIST declarations dom.Validate checks
// against.
func newValidateCmd() *cobra.Command {
	var charset string

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate an XML document against its own DTD (reads stdin if no file given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := parseDocument(args, charset)
			if err != nil {
				return err
			}

			if err := dom.Validate(doc); err != nil {
				merr, ok := err.(*multierror.Error)
				if !ok {
					return err
				}
				for _, wrapped := range merr.Errors {
					fmt.Fprintln(os.Stderr, wrapped)
				}
				return fmt.Errorf("xmldom validate: %d issue(s) found", len(merr.Errors))
			}

			fmt.Fprintln(os.Stdout, "valid")
			return nil
		},
	}
	cmd.Flags().StringVar(&charset, "charset", "", "force an input charset, bypassing BOM/declaration sniffing")
	return cmd
}
