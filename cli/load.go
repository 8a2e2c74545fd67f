package cli

import (
	"github.com/siherrmann/ranker/config"
	"github.com/spf13/cobra"
)

func newLoadCommand(a *app) *cobra.Command {
	var file, schema string

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load a YAML or JSON graph file into Postgres",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.openGraph(config.GraphSpec{Name: "load", Storage: config.StoragePostgres, Schema: schema})
			if err != nil {
				return err
			}
			defer r.Close()

			n, err := r.LoadGraphFile(file)
			if err != nil {
				return err
			}

			cmd.Printf("loaded %d edges from %s\n", n, file)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "graph file to load")
	cmd.Flags().StringVar(&schema, "schema", "", "database schema, overrides RANKER_DB_SCHEMA")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
