// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docucheck/internal/audit"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the verification audit trail",
}

var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List past verification runs, newest first",
	RunE:  runAuditList,
}

func runAuditList(cmd *cobra.Command, args []string) error {
	store, err := audit.NewStore(pipelineConfig().Audit.Dir)
	if err != nil {
		return err
	}
	defer store.Close()

	summaries, err := store.List(context.Background())
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Printf("%-26s  %-20s  %-24s  %-10s  %-10s  %s\n",
		"Run", "Generated", "Applicant", "Visa", "Status", "Confidence")
	for _, s := range summaries {
		fmt.Printf("%-26s  %-20s  %-24s  %-10s  %-10s  %d\n",
			s.RunID, s.GeneratedAt.Format("2006-01-02 15:04:05"),
			s.Applicant, s.VisaType, s.Status, s.Confidence)
	}
	fmt.Printf("\n%d run(s)\n", len(summaries))
	return nil
}

var auditShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Print the stored report for one run",
	Args:  cobra.ExactArgs(1),
	RunE:  runAuditShow,
}

func runAuditShow(cmd *cobra.Command, args []string) error {
	store, err := audit.NewStore(pipelineConfig().Audit.Dir)
	if err != nil {
		return err
	}
	defer store.Close()

	rep, err := store.Get(context.Background(), args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

func init() {
	auditCmd.AddCommand(auditListCmd)
	auditCmd.AddCommand(auditShowCmd)
	rootCmd.AddCommand(auditCmd)
}
