package config

import (
	"os"
	"strconv"
)

// Config 应用配置
type Config struct {
	Port             int
	MongoURI         string
	MongoDB          string
	JWTKey           string
	Debug            bool
	ChildConcurrency int // 层级聚合时每层子实体的并发上限
	SnapshotHour     int // 每日快照任务执行的小时（本地时间）
	SnapshotEnabled  bool
}

// LoadConfig 从环境变量加载配置
func LoadConfig() *Config {
	port, _ := strconv.Atoi(getEnv("PORT", "8080"))
	childConcurrency, _ := strconv.Atoi(getEnv("CHILD_CONCURRENCY", "4"))
	snapshotHour, _ := strconv.Atoi(getEnv("SNAPSHOT_HOUR", "2"))

	return &Config{
		Port:             port,
		MongoURI:         getEnv("MONGO_URI", "mongodb://127.0.0.1:27017/strategy?authSource=admin"),
		MongoDB:          getEnv("MONGO_DB", "strategy"),
		JWTKey:           getEnv("JWT_KEY", "your-secret-key"), // 实际环境应替换为安全密钥
		Debug:            getEnv("GIN_MODE", "debug") == "debug",
		ChildConcurrency: childConcurrency,
		SnapshotHour:     snapshotHour,
		SnapshotEnabled:  getEnv("SNAPSHOT_ENABLED", "true") == "true",
	}
}

// getEnv 获取环境变量，如果不存在则返回默认值
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
