package config

import (
	"errors"
	"os"
	"path/filepath"
)

const (
	defaultConfigRelPath = "configs/conf.yml"
	// EnvConfigPath 显式指定配置文件路径
	EnvConfigPath = "MACHIKORO_CONFIG"
	// EnvPrefix 环境变量覆盖前缀，如 MACHIKORO_HTTPSERVER_PORT
	EnvPrefix = "MACHIKORO"
)

// ResolvePath 约定：
// 1) 传入 cfgName（相对/绝对路径）则优先使用；
// 2) 其次读取 MACHIKORO_CONFIG；
// 3) 否则从当前目录开始向上查找 `configs/conf.yml`。
func ResolvePath(cfgName string) (string, error) {
	if cfgName == "" {
		cfgName = os.Getenv(EnvConfigPath)
	}

	curDir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if cfgName != "" {
		if !filepath.IsAbs(cfgName) {
			cfgName = filepath.Join(curDir, cfgName)
		}
		if !fileExist(cfgName) {
			return "", errors.New("config file not exist, configPath=" + cfgName)
		}
		return cfgName, nil
	}
	return findConfigUpward(curDir)
}

func findConfigUpward(startDir string) (string, error) {
	dir := startDir
	for {
		candidate := filepath.Join(dir, defaultConfigRelPath)
		if fileExist(candidate) {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("config file not exist, searched configs/conf.yml from: " + startDir)
		}
		dir = parent
	}
}
