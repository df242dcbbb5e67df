package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hrmonthly/internal/api"
	"hrmonthly/internal/config"
	"hrmonthly/internal/server"
	"hrmonthly/internal/util"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 HTTP 服务",
	RunE: func(cmd *cobra.Command, _ []string) error {
		printBanner()

		port, _ := cmd.Flags().GetInt("port")
		dev, _ := cmd.Flags().GetBool("dev")
		open, _ := cmd.Flags().GetBool("open")

		cfg.Server.Port = resolvePort(port, cfg, cfgInfo, util.FindAvailablePort)
		if dev {
			cfg.Server.DevMode = true
		}

		dataDir, err := config.EnsureDataDir(cfg)
		if err != nil {
			return err
		}
		fmt.Printf("数据目录: %s\n", dataDir)

		a, err := newApp(cfg, true)
		if err != nil {
			return err
		}
		defer a.Close()

		handler := api.NewHandler(api.Options{
			Version:     version,
			Tables:      a.tables,
			Coordinator: a.coord,
			Store:       a.store,
			UploadDir:   config.GetDataPath(cfg, "uploads", ""),
			OutputDir:   config.GetDataPath(cfg, "output", ""),
			Logger:      a.log.Named("api"),
		})
		srv := server.NewServer(cfg, handler, a.log.Named("http"))

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		url := fmt.Sprintf("http://localhost:%d/api/status", cfg.Server.Port)
		fmt.Printf("服务启动中，监听端口 %d ...\n", cfg.Server.Port)
		if open {
			if err := util.OpenBrowser(url); err != nil {
				fmt.Printf("无法自动打开浏览器，请手动访问: %s\n", url)
			}
		}
		fmt.Println("\n按 Ctrl+C 停止服务...")

		if err := srv.Run(ctx); err != nil {
			zap.L().Error("server stopped", zap.Error(err))
			return err
		}
		fmt.Println("\n服务已关闭")
		return nil
	},
}

// resolvePort 端口优先级：--port > 配置文件 port > 从默认端口起探测可用端口
func resolvePort(flagPort int, c *config.AppConfig, info config.LoadConfigInfo, probe func(int) int) int {
	switch {
	case flagPort > 0:
		return flagPort
	case info.PortSpecified:
		return c.Server.Port
	default:
		return probe(c.Server.Port)
	}
}

func init() {
	serveCmd.Flags().Int("port", 0, "服务端口（优先于配置文件）")
	serveCmd.Flags().Bool("dev", false, "开发模式")
	serveCmd.Flags().Bool("open", false, "启动后打开浏览器")
	rootCmd.AddCommand(serveCmd)
}
