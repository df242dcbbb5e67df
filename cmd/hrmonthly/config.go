package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"hrmonthly/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "配置文件管理",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "生成默认配置文件",
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		path := configPath
		if path == "" {
			path = config.DefaultConfigPath()
		}
		if _, err := os.Stat(path); err == nil && !force {
			return eris.Errorf("配置文件已存在: %s（使用 --force 覆盖）", path)
		}

		if err := config.SaveConfig(config.DefaultConfig(), path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "已生成配置文件: %s\n", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().Bool("force", false, "覆盖已存在的配置文件")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
