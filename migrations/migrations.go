// Package migrations embeds the versioned SQL schema of each service.
package migrations

import (
	"embed"
	"fmt"
	"path"

	migrate "github.com/rubenv/sql-migrate"

	"github.com/johnquangdev/smart-insights/pkg/config"
)

// Service names accepted by Source
const (
	ServiceInvoice = "invoice"
	ServiceMeeting = "meeting"
)

//go:embed invoice meeting
var files embed.FS

// Source returns the migrations of a service for the given database driver
func Source(service, driver string) (migrate.MigrationSource, error) {
	if service != ServiceInvoice && service != ServiceMeeting {
		return nil, fmt.Errorf("unknown service %q (want %s or %s)", service, ServiceInvoice, ServiceMeeting)
	}

	dir := config.DriverPostgres
	if driver == config.DriverSQLite {
		dir = config.DriverSQLite
	}

	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: files,
		Root:       path.Join(service, dir),
	}, nil
}
