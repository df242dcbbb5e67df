package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hrmonthly/internal/config"
	"hrmonthly/internal/logging"
)

// version 由构建参数注入
var version = "dev"

var (
	cfg        *config.AppConfig
	cfgInfo    config.LoadConfigInfo
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "hrmonthly",
	Short: "用工月报：花名册合并与规范化",
	Long:  "合并两份月度员工花名册，统一部门与学历口径，标注一线人员与年龄段，生成用工月报。",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, info, err := config.LoadConfigWithInfo(configPath)
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		if verbose {
			c.Log.Level = "debug"
		}
		cfg, cfgInfo = c, info

		if _, err := logging.Init(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}
		zap.L().Debug("config loaded", zap.String("path", info.Path), zap.Bool("found", info.Found))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "配置文件路径（默认为程序目录下的 config.toml）")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "输出调试日志")
}

func printBanner() {
	fmt.Println("==========================================")
	fmt.Println("  HR Monthly - 用工月报数据处理工具")
	fmt.Println("==========================================")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
