package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"hrmonthly/internal/config"
	"hrmonthly/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "查看运行历史",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "列出最近的运行",
	RunE: func(cmd *cobra.Command, _ []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		runs, err := st.ListRuns(limit)
		if err != nil {
			return eris.Wrap(err, "runs list")
		}
		if len(runs) == 0 {
			fmt.Fprintln(os.Stderr, "暂无运行记录")
			return nil
		}
		formatRunsList(os.Stdout, runs)
		return nil
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "查看单次运行详情",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		run, err := st.GetRun(args[0])
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	},
}

func openStore() (*store.Store, error) {
	if _, err := config.EnsureDataDir(cfg); err != nil {
		return nil, err
	}
	return store.New(config.GetDataPath(cfg, "", config.DatabaseFile))
}

func init() {
	runsListCmd.Flags().Int("limit", 20, "最多显示条数")
	runsCmd.AddCommand(runsListCmd, runsShowCmd)
	rootCmd.AddCommand(runsCmd)
}
