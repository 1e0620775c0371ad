package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

type SystemConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host      string `yaml:"host" json:"host"`
	Port      int    `yaml:"port" json:"port"`
	JwtSecret string `yaml:"jwt_secret" json:"jwt_secret"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type SmtpConfig struct {
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	From     string `yaml:"from" json:"from"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

type LoggerConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SystemConfig `yaml:"system" json:"system"`
	Web      WebConfig    `yaml:"web" json:"web"`
	Database DBConfig     `yaml:"database" json:"database"`
	Smtp     SmtpConfig   `yaml:"smtp" json:"smtp"`
	Logger   LoggerConfig `yaml:"logger" json:"logger"`
}

// DefaultAppConfig is the baseline configuration; LoadConfig overlays a
// YAML file and REVLINE_* environment variables on top of it.
var DefaultAppConfig = &AppConfig{
	System: SystemConfig{
		Appid:    "revline",
		Location: "Europe/Moscow",
		Workdir:  "/var/revline",
		Debug:    true,
	},
	Web: WebConfig{
		Host:      "0.0.0.0",
		Port:      1880,
		JwtSecret: "9b6de5cc-revline-0f9cdf06",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "revline",
		User:     "postgres",
		Passwd:   "root",
		MaxConn:  100,
		IdleConn: 10,
		Debug:    false,
	},
	Smtp: SmtpConfig{
		Host: "localhost",
		Port: 25,
		From: "noreply@revline.club",
	},
	Logger: LoggerConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/revline/revline.log",
	},
}

func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}
	setEnvValue("REVLINE_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvBoolValue("REVLINE_SYSTEM_DEBUG", &cfg.System.Debug)
	setEnvValue("REVLINE_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("REVLINE_WEB_PORT", &cfg.Web.Port)
	setEnvValue("REVLINE_WEB_JWT_SECRET", &cfg.Web.JwtSecret)
	setEnvValue("REVLINE_DB_HOST", &cfg.Database.Host)
	setEnvIntValue("REVLINE_DB_PORT", &cfg.Database.Port)
	setEnvValue("REVLINE_DB_NAME", &cfg.Database.Name)
	setEnvValue("REVLINE_DB_USER", &cfg.Database.User)
	setEnvValue("REVLINE_DB_PWD", &cfg.Database.Passwd)
	setEnvBoolValue("REVLINE_DB_DEBUG", &cfg.Database.Debug)
	setEnvValue("REVLINE_SMTP_HOST", &cfg.Smtp.Host)
	setEnvIntValue("REVLINE_SMTP_PORT", &cfg.Smtp.Port)
	setEnvValue("REVLINE_SMTP_FROM", &cfg.Smtp.From)
	setEnvValue("REVLINE_SMTP_USERNAME", &cfg.Smtp.Username)
	setEnvValue("REVLINE_SMTP_PASSWORD", &cfg.Smtp.Password)
	setEnvValue("REVLINE_LOGGER_MODE", &cfg.Logger.Mode)
	return cfg
}

func (c *AppConfig) InitDirs() {
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "data"), 0755)
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "logs"), 0755)
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "private"), 0644)
}

func setEnvValue(name string, val *string) {
	if evalue := os.Getenv(name); evalue != "" {
		*val = evalue
	}
}

func setEnvBoolValue(name string, val *bool) {
	if evalue := os.Getenv(name); evalue != "" {
		*val = evalue == "true" || evalue == "1" || evalue == "on"
	}
}

func setEnvIntValue(name string, val *int) {
	if evalue := os.Getenv(name); evalue != "" {
		*val = cast.ToInt(evalue)
	}
}
