package cmd

import (
	"github.com/alterego-vtt/alterego/pkg/aedb"
	"github.com/alterego-vtt/alterego/pkg/config"
	"github.com/apex/log"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	Run: func(cmd *cobra.Command, args []string) {
		db := aedb.MustConnectToDB(config.GetConfig())
		if err := aedb.Migrate(db); err != nil {
			log.Fatalf("Migration failed: %s", err)
		}
		log.Infof("Database migrated")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
