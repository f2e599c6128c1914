// Lantern is a structured logging toolkit built on zerolog.
//
// The library lives under pkg/logger; this binary provides supporting
// tooling:
//
//	# Pretty-print JSON log lines from a service
//	my-service | lantern pretty
//
//	# Query the audit trail database
//	lantern audit query --db data/audit.db --level error --limit 20
//
//	# Prune old audit records
//	lantern audit prune --db data/audit.db --retention-days 30
//
//	# Show version information
//	lantern version
package main

func main() {
	Execute()
}
