package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/rotisserie/eris"
)

// MonthPlaceholder 文件名模板中的月份占位符
const MonthPlaceholder = "{month}"

// AppConfig 应用配置
type AppConfig struct {
	Server   ServerConfig   `toml:"server"`
	Data     DataConfig     `toml:"data"`
	Files    FilesConfig    `toml:"files"`
	Business BusinessConfig `toml:"business"`
	Lookups  LookupsConfig  `toml:"lookups"`
	Log      LogConfig      `toml:"log"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig 数据配置
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// FilesConfig 月度花名册文件配置
type FilesConfig struct {
	BasePath       string `toml:"base_path"`
	SourceA        string `toml:"source_a"`
	SourceB        string `toml:"source_b"`
	Merged         string `toml:"merged"`
	OutputDir      string `toml:"output_dir"`
	SheetName      string `toml:"sheet_name"`
	HeaderRow      int    `toml:"header_row"`
	HeaderScanRows int    `toml:"header_scan_rows"`
}

// BusinessConfig 业务配置
type BusinessConfig struct {
	DefaultMonth  int  `toml:"default_month"` // 0 表示上一个自然月
	ApplyMappings bool `toml:"apply_mappings"`
}

// LookupsConfig 映射表配置
type LookupsConfig struct {
	Path string `toml:"path"` // 为空时使用内置映射表
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // console | json
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	Path          string
	Found         bool
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20262,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Files: FilesConfig{
			BasePath:       "input",
			SourceA:        "花名册A_{month}月.xlsx",
			SourceB:        "花名册B_{month}月.xlsx",
			Merged:         "合并花名册_{month}月.xlsx",
			OutputDir:      "output",
			HeaderRow:      2,
			HeaderScanRows: 10,
		},
		Business: BusinessConfig{
			DefaultMonth:  0,
			ApplyMappings: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate 检查配置取值
func (c *AppConfig) Validate() error {
	if c.Business.DefaultMonth < 0 || c.Business.DefaultMonth > 12 {
		return eris.Errorf("config: business.default_month out of range: %d", c.Business.DefaultMonth)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return eris.Errorf("config: server.port out of range: %d", c.Server.Port)
	}
	for name, tmpl := range map[string]string{
		"files.source_a": c.Files.SourceA,
		"files.source_b": c.Files.SourceB,
		"files.merged":   c.Files.Merged,
	} {
		if strings.TrimSpace(tmpl) == "" {
			return eris.Errorf("config: %s is empty", name)
		}
	}
	return nil
}

// FileName 以月份替换文件名模板中的占位符
func FileName(tmpl string, month int) string {
	return strings.ReplaceAll(tmpl, MonthPlaceholder, strconv.Itoa(month))
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// DefaultConfigPath 可执行文件同目录下的 config.toml
func DefaultConfigPath() string {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, "config.toml")
}

// LoadConfigWithInfo 加载配置并返回元信息；path 为空时使用 DefaultConfigPath。
// 文件不存在时返回默认配置。
func LoadConfigWithInfo(path string) (*AppConfig, LoadConfigInfo, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	info := LoadConfigInfo{Path: path}
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(config)
			return config, info, nil
		}
		return nil, info, eris.Wrapf(err, "config: read %s", path)
	}
	info.Found = true
	info.PortSpecified = isPortSpecifiedInToml(data)

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, info, eris.Wrapf(err, "config: parse %s", path)
	}
	applyEnv(config)

	if err := config.Validate(); err != nil {
		return nil, info, err
	}
	return config, info, nil
}

// 环境变量覆盖
func applyEnv(config *AppConfig) {
	if v := os.Getenv("HRMONTHLY_LOOKUPS_PATH"); v != "" {
		config.Lookups.Path = v
	}
	if v := os.Getenv("HRMONTHLY_BASE_PATH"); v != "" {
		config.Files.BasePath = v
	}
}

// SaveConfig 保存配置到 path
func SaveConfig(config *AppConfig, path string) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return eris.Wrap(err, "config: encode")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return eris.Wrapf(err, "config: write %s", path)
	}
	return nil
}

// resolveDir 相对路径以可执行文件目录为基准
func resolveDir(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	exeDir, err := GetExeDir()
	if err != nil || exeDir == "" {
		exeDir = "."
	}
	return filepath.Join(exeDir, dir)
}

// EnsureDataDir 确保数据目录及其子目录存在
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := resolveDir(config.Data.DataDir)

	for _, dir := range []string{dataDir, filepath.Join(dataDir, "uploads"), filepath.Join(dataDir, "output")} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", eris.Wrapf(err, "config: create %s", dir)
		}
	}
	return dataDir, nil
}

// DatabaseFile 运行历史库文件名
const DatabaseFile = "hrmonthly.db"

// GetDataPath 获取数据文件路径
func GetDataPath(config *AppConfig, subdir, filename string) string {
	return filepath.Join(resolveDir(config.Data.DataDir), subdir, filename)
}
