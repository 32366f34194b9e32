package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load 读取配置到 T：先加载可选的 .env，再读文件，最后由 MACHIKORO_* 环境变量覆盖。
// onChange 非空时监听文件变更，重新解析成功后回调新值。
func Load[T any](cfgName string, onChange func(T)) (T, error) {
	var out T

	// .env 不存在时忽略
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return out, fmt.Errorf("load .env: %w", err)
	}

	configPath, err := ResolvePath(cfgName)
	if err != nil {
		return out, err
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err = v.ReadInConfig(); err != nil {
		return out, err
	}
	if err = v.Unmarshal(&out); err != nil {
		return out, fmt.Errorf("viper unmarshal config data: %w", err)
	}

	if onChange != nil {
		v.OnConfigChange(func(e fsnotify.Event) {
			if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
				return
			}
			var next T
			if err := v.Unmarshal(&next); err != nil {
				// 解析失败保留旧配置
				log.Printf("配置文件变更解析失败, file=%s, err=%v", e.Name, err)
				return
			}
			log.Printf("配置文件变更, file=%s", e.Name)
			onChange(next)
		})
		v.WatchConfig()
	}
	return out, nil
}

func fileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}
