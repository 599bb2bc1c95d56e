package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docucheck/internal/mrz"
)

var mrzCmd = &cobra.Command{
	Use:   "mrz [file]",
	Short: "Parse a machine-readable zone from text",
	Long: `Mrz decodes an ICAO 9303 machine-readable zone (TD3 passport or TD1
ID card layout) from a text file, or from stdin when no file is given.
Check digits are verified; a failed check keeps the decoded value and
flags the field.

The input is raw text, typically OCR output. Use analyze to run OCR on
images directly.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMrz,
}

func runMrz(cmd *cobra.Command, args []string) error {
	var data []byte
	var err error
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading MRZ input: %w", err)
		}
	} else {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
	}

	record, ok := mrz.Parse(string(data))
	if !ok {
		return fmt.Errorf("no machine-readable zone found in input")
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(record)
	}
	printRecord(record)
	return nil
}

func printRecord(r *mrz.Record) {
	fmt.Printf("format:          %s\n", r.Format)
	fmt.Printf("document type:   %s\n", r.DocumentType)
	fmt.Printf("issuing country: %s\n", r.IssuingCountry)
	fmt.Printf("surname:         %s\n", r.Surname)
	fmt.Printf("given names:     %s\n", r.GivenNames)
	printField("document number", r.DocumentNumber)
	fmt.Printf("nationality:     %s\n", r.Nationality)
	printField("birth date", r.BirthDate)
	fmt.Printf("sex:             %s\n", r.Sex)
	printField("expiry date", r.ExpiryDate)
	if r.PersonalNumber.Value != "" {
		printField("personal number", r.PersonalNumber)
	}
	fmt.Printf("composite check: %s\n", validityMark(r.CompositeValid))
}

func printField(label string, f mrz.Field) {
	fmt.Printf("%-16s %s %s\n", label+":", f.Value, validityMark(f.Valid))
}

func validityMark(valid bool) string {
	if valid {
		return "(check ok)"
	}
	return "(check FAILED)"
}

func init() {
	mrzCmd.Flags().Bool("json", false, "output the decoded record as JSON")

	rootCmd.AddCommand(mrzCmd)
}
