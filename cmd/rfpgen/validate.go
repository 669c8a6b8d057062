package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/observability"
	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check an RFP document against its JSON Schema",
	Long:  "Validates a JSON or YAML document against the embedded RFP document schema, or against --schema when given (JSON documents only).",
	RunE:  runValidate,
}

var (
	validateInputFile  string
	validateSchemaFile string
)

func init() {
	validateCmd.Flags().StringVarP(&validateInputFile, "in", "i", "", "Path to the RFP document (required)")
	validateCmd.Flags().StringVar(&validateSchemaFile, "schema", "", "Validate against this schema file instead of the embedded one")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	if err := requireFlag("in", validateInputFile); err != nil {
		return err
	}

	var err error
	if validateSchemaFile != "" {
		if isYAML(validateInputFile) {
			return fmt.Errorf("--schema only supports JSON documents")
		}
		err = schemas.ValidateJSON(validateSchemaFile, validateInputFile)
	} else {
		var data []byte
		if data, err = readDocumentJSON(validateInputFile); err != nil {
			return err
		}
		err = schemas.ValidateDocument(data)
	}

	printer := observability.NewPrinter(os.Stdout)
	var verr *schemas.ValidationError
	if errors.As(err, &verr) {
		printer.PrintValidationErrors(verr)
		return fmt.Errorf("%s is not a valid RFP document (%d problem(s))", validateInputFile, len(verr.Errors))
	}
	if err != nil {
		return err
	}

	if verbose {
		doc, err := loadDocument(validateInputFile)
		if err != nil {
			return err
		}
		printer.PrintDocumentSummary(&doc)
	}
	fmt.Fprintf(os.Stdout, "%s is valid\n", validateInputFile)
	return nil
}
