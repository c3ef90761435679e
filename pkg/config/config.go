package config

import (
	"os"
	"sync"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"
	"sigs.k8s.io/yaml"
)

type Config struct {
	// Port Settings
	Host       string `json:"host"`       // The domain name of the server.
	ServerAddr string `json:"serverAddr"` // The address the server endpoint binds to.
	ProbeAddr  string `json:"probeAddr"`  // The address the probe endpoint binds to.

	// Allowed origins for browser clients.
	CORSOrigins []string `json:"corsOrigins"`

	Auth struct {
		AccessTokenSecret  string `json:"accessTokenSecret"`
		RefreshTokenSecret string `json:"refreshTokenSecret"`
		AccessTokenTTL     int    `json:"accessTokenTTL"`  // Lifetime of access tokens in minutes.
		RefreshTokenTTL    int    `json:"refreshTokenTTL"` // Lifetime of refresh tokens in hours.
		CookieDomain       string `json:"cookieDomain"`    // Domain attribute of the refresh cookie.
		CookieSecure       bool   `json:"cookieSecure"`
	} `json:"auth"`

	// DB Settings
	Postgres struct {
		Host     string `json:"host"`
		Port     string `json:"port"`
		DBName   string `json:"dbname"`
		User     string `json:"user"`
		Password string `json:"password"`
		SSLMode  string `json:"sslmode"`
		TimeZone string `json:"TimeZone"`
		// Optional read replica, routed through dbresolver when set.
		ReplicaHost string `json:"replicaHost"`
		ReplicaPort string `json:"replicaPort"`
	} `json:"postgres"`

	SMTP struct {
		Host     string `json:"host"`
		Port     string `json:"port"`
		User     string `json:"user"`
		Password string `json:"password"`
		Notify   string `json:"notify"`
	} `json:"smtp"`

	// Webhook receiver for workspace event alerts.
	Webhook struct {
		URL    string `json:"url"`
		Secret string `json:"secret"`
	} `json:"webhook"`

	LDAP struct {
		Enable   bool   `json:"enable"` // If true, login falls back to LDAP bind for unknown passwords.
		UserName string `json:"userName"`
		Password string `json:"password"`
		Address  string `json:"address"`
		SearchDN string `json:"searchDN"`
	} `json:"ldap"`

	Signup struct {
		Open bool `json:"open"` // If false, only admins may create accounts.
	} `json:"signup"`
}

var (
	once   sync.Once
	config *Config
)

func GetConfig() *Config {
	once.Do(func() {
		config = initConfig()
	})
	return config
}

func IsDebugMode() bool {
	return gin.Mode() == gin.DebugMode
}

// InitConfig initializes the configuration by reading the configuration file.
// If the environment is set to debug, it reads the debug-config.yaml file.
// Otherwise, it reads the config.yaml file from ConfigMap.
// It returns a pointer to the Config struct and an error if any occurred.
func initConfig() *Config {
	// 读取配置文件
	config := &Config{}
	var configPath string
	if os.Getenv("REDINK_DEBUG_CONFIG_PATH") != "" {
		configPath = os.Getenv("REDINK_DEBUG_CONFIG_PATH")
	} else if IsDebugMode() {
		configPath = "./etc/debug-config.yaml"
	} else {
		configPath = "/etc/config/config.yaml"
	}
	klog.Info("config path: ", configPath)

	err := readConfig(configPath, config)
	if err != nil {
		klog.Error("init config", err)
		panic(err)
	}
	return config
}

func readConfig(filePath string, config *Config) error {
	// 读取 YAML 配置文件
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	// 解析 YAML 数据到结构体
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return err
	}
	return nil
}
