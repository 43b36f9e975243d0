package cli

import (
	"github.com/spf13/cobra"

	"github.com/cptspacemanspiff/batterylog/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Long:  "Print the effective configuration (file values, defaults and --db) as TOML. With --save, write it to the --config path.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if save {
				if err := config.Save(a.configPath, a.cfg); err != nil {
					return err
				}
				a.log.Info("config saved", "path", a.configPath)
				return nil
			}
			data, err := config.Encode(a.cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "write the effective configuration to the config path")

	return cmd
}
