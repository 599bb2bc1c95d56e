// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docucheck/internal/policy"
)

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Inspect and validate eligibility policies",
}

var policyValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate an eligibility policy file",
	Long: `Validate parses a policy YAML file and checks it for structural
problems: unknown criteria, out-of-range thresholds, inverted age
bounds. A valid policy prints its rule inventory.`,
	Args: cobra.ExactArgs(1),
	RunE: runPolicyValidate,
}

func runPolicyValidate(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading policy file: %w", err)
	}

	pol, err := policy.Load(data)
	if err != nil {
		return fmt.Errorf("invalid policy %s: %w", args[0], err)
	}

	visaTypes := make([]string, 0, len(pol.VisaTypes))
	for name := range pol.VisaTypes {
		visaTypes = append(visaTypes, name)
	}
	sort.Strings(visaTypes)

	fmt.Printf("%s: valid\n", args[0])
	fmt.Printf("visa types: %v (plus default rule)\n", visaTypes)
	fmt.Printf("thresholds: eligible >= %d, conditional >= %d\n",
		pol.Thresholds.Eligible, pol.Thresholds.Conditional)
	return nil
}

func init() {
	policyCmd.AddCommand(policyValidateCmd)
	rootCmd.AddCommand(policyCmd)
}
