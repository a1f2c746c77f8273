package redis

import "fmt"

// Config 定義 Redis 連線配置
type Config struct {
	Host     string `yaml:"host"`     // Redis 主機地址
	Port     int    `yaml:"port"`     // Redis 埠號 (預設 6379)
	Password string `yaml:"password"` // 密碼，留空表示不驗證
	DB       int    `yaml:"db"`       // 資料庫編號
}

// Addr 產生連線地址，格式: host:port
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
