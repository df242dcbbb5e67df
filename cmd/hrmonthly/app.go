package main

import (
	"go.uber.org/zap"

	"hrmonthly/internal/config"
	"hrmonthly/internal/importer"
	"hrmonthly/internal/lookup"
	"hrmonthly/internal/merger"
	"hrmonthly/internal/model"
	"hrmonthly/internal/service/excel"
	"hrmonthly/internal/store"
)

// app 单次命令使用的组件
type app struct {
	tables *model.LookupTables
	store  *store.Store
	coord  *importer.Coordinator
	log    *zap.Logger
}

// newApp 加载映射表并装配协调器；withStore 时打开运行历史库，失败仅告警
func newApp(c *config.AppConfig, withStore bool) (*app, error) {
	log := zap.L()

	tables, err := lookup.Load(c.Lookups.Path)
	if err != nil {
		return nil, err
	}

	var st *store.Store
	if withStore {
		if _, err := config.EnsureDataDir(c); err != nil {
			log.Warn("data directory unavailable, run history disabled", zap.Error(err))
		} else if st, err = store.New(config.GetDataPath(c, "", config.DatabaseFile)); err != nil {
			log.Warn("open run history failed", zap.Error(err))
			st = nil
		}
	}

	reader := excel.NewReader(tables.TargetColumns, excel.ReaderOptions{
		SheetName:      c.Files.SheetName,
		HeaderScanRows: c.Files.HeaderScanRows,
		HeaderRow:      c.Files.HeaderRow,
	})
	engine := merger.NewEngine(tables, log.Named("merger"))

	return &app{
		tables: tables,
		store:  st,
		coord:  importer.NewCoordinator(engine, reader, st, log.Named("importer")),
		log:    log,
	}, nil
}

func (a *app) Close() {
	if a.store != nil {
		_ = a.store.Close()
	}
}
