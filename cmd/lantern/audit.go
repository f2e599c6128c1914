package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"helios-hq/lantern/pkg/audit"
	"helios-hq/lantern/pkg/audit/retention"
	"helios-hq/lantern/pkg/audit/storage"
)

var auditFlags struct {
	db            string
	level         string
	domain        string
	correlationID string
	since         string
	until         string
	limit         int
	format        string

	retentionDays int
	maxRecords    int64
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the audit trail database",
	Long: `Query and maintain the audit trail database.

Subcommands:
  query  - Query audit records with filters
  prune  - Delete records past the retention policy

Examples:
  # Show the last 20 error records
  lantern audit query --db data/audit.db --level error --limit 20

  # Follow a request across services
  lantern audit query --db data/audit.db --correlation-id "c0ffee..."

  # Prune records older than 30 days
  lantern audit prune --db data/audit.db --retention-days 30`,
}

var auditQueryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query audit records",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openAuditStore()
		if err != nil {
			return err
		}
		defer store.Close()

		filter := audit.Filter{
			Level:         auditFlags.level,
			Domain:        auditFlags.domain,
			CorrelationID: auditFlags.correlationID,
			Limit:         auditFlags.limit,
		}
		if auditFlags.since != "" {
			if filter.Since, err = time.Parse(time.RFC3339, auditFlags.since); err != nil {
				return fmt.Errorf("invalid --since: %w", err)
			}
		}
		if auditFlags.until != "" {
			if filter.Until, err = time.Parse(time.RFC3339, auditFlags.until); err != nil {
				return fmt.Errorf("invalid --until: %w", err)
			}
		}

		records, err := store.Query(cmd.Context(), filter)
		if err != nil {
			return fmt.Errorf("query failed: %w", err)
		}

		switch auditFlags.format {
		case "json":
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(records)
		case "table":
			printAuditTable(records)
			return nil
		default:
			return fmt.Errorf("unknown format %q (expected json or table)", auditFlags.format)
		}
	},
}

var auditPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete audit records past the retention policy",
	RunE: func(cmd *cobra.Command, args []string) error {
		if auditFlags.retentionDays <= 0 && auditFlags.maxRecords <= 0 {
			return fmt.Errorf("nothing to prune: set --retention-days and/or --max-records")
		}

		store, err := openAuditStore()
		if err != nil {
			return err
		}
		defer store.Close()

		pruner := retention.NewPruner(store, &retention.Config{
			RetentionDays: auditFlags.retentionDays,
			MaxRecords:    auditFlags.maxRecords,
		}, nil)

		deleted, err := pruner.Prune(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d records\n", deleted)
		return nil
	},
}

func openAuditStore() (*storage.SQLiteStorage, error) {
	if _, err := os.Stat(auditFlags.db); err != nil {
		return nil, fmt.Errorf("audit database %q: %w", auditFlags.db, err)
	}
	return storage.NewSQLiteStorage(&storage.SQLiteConfig{Path: auditFlags.db})
}

func printAuditTable(records []*audit.Record) {
	fmt.Printf("%-25s %-6s %-15s %-12s %s\n", "TIME", "LEVEL", "SERVICE", "DOMAIN", "MESSAGE")
	for _, r := range records {
		fmt.Printf("%-25s %-6s %-15s %-12s %s\n",
			r.Time.Format(time.RFC3339), r.Level, r.Service, r.Domain, r.Message)
	}
	fmt.Printf("\n%d records\n", len(records))
}

func init() {
	auditCmd.PersistentFlags().StringVar(&auditFlags.db, "db", "data/audit.db", "audit database path")

	auditQueryCmd.Flags().StringVar(&auditFlags.level, "level", "", "filter by level")
	auditQueryCmd.Flags().StringVar(&auditFlags.domain, "domain", "", "filter by domain")
	auditQueryCmd.Flags().StringVar(&auditFlags.correlationID, "correlation-id", "", "filter by correlation ID")
	auditQueryCmd.Flags().StringVar(&auditFlags.since, "since", "", "only records at or after this RFC3339 time")
	auditQueryCmd.Flags().StringVar(&auditFlags.until, "until", "", "only records at or before this RFC3339 time")
	auditQueryCmd.Flags().IntVar(&auditFlags.limit, "limit", 50, "maximum records to return")
	auditQueryCmd.Flags().StringVar(&auditFlags.format, "format", "table", "output format (table, json)")

	auditPruneCmd.Flags().IntVar(&auditFlags.retentionDays, "retention-days", 0, "delete records older than this many days")
	auditPruneCmd.Flags().Int64Var(&auditFlags.maxRecords, "max-records", 0, "keep at most this many records")

	auditCmd.AddCommand(auditQueryCmd)
	auditCmd.AddCommand(auditPruneCmd)
	rootCmd.AddCommand(auditCmd)
}
