package core

import (
	"log"
	"net"
	"net/mail"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	serverConfig struct {
		Host                      string
		Address                   string
		DebugHost                 string
		ShutdownTimeout           time.Duration
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
	}

	databaseConfig struct {
		Engine        string // mongodb | postgres | memory
		URI           string // mongodb connection string
		Host          string
		Port          int
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
	}

	reportConfig struct {
		Concurrency        int
		ImprovementPercent int
		MinAttendance      int
		MinScore           int
	}

	Config struct {
		Env                       string // DEV (local; default), TEST, QA, PROD
		Debug                     bool
		TestMode                  bool
		AppName                   string
		Build                     string
		SecretKey                 string
		FrontendBaseURL           string
		TimeZone                  string
		PasswordResetTimeoutDelta time.Duration
		RollbarToken              string
		EmailProvider             string // console | sendgrid | resend
		SendgridApiKey            string
		ResendApiKey              string
		Server                    serverConfig
		Database                  databaseConfig
		Report                    reportConfig

		defaultFromEmail string
	}
)

func (c *Config) DefaultFromEmail() mail.Address {
	addr, err := mail.ParseAddress(c.defaultFromEmail)
	if err != nil {
		return mail.Address{Name: c.AppName, Address: c.defaultFromEmail}
	}
	if addr.Name == "" {
		addr.Name = c.AppName
	}
	return *addr
}

// Location returns the club's time zone; report periods are computed in it.
func (c *Config) Location() *time.Location {
	if c.TimeZone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		log.Printf("config: unknown time zone %q, falling back to UTC", c.TimeZone)
		return time.UTC
	}
	return loc
}

func (dbc databaseConfig) Address() string {
	if dbc.Port == 0 {
		return dbc.Host
	}
	return net.JoinHostPort(dbc.Host, strconv.Itoa(dbc.Port))
}

// NewConfig reads the configuration from the environment.
// Variables are prefixed by the current env (e.g. DEV_SECRETKEY, PROD_DATABASE_HOST) and
// may be defined in `config/.env.<env>`.
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "Smash Club")
	v.SetDefault("build", "develop")
	v.SetDefault("secretKey", "x8#k2m!v9q@w7e$r5t^y3u&i1o*p0a(s)d_f+g-h=j")
	v.SetDefault("frontendBaseURL", "http://localhost:3000")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("timeZone", "Asia/Jakarta")
	v.SetDefault("passwordResetTimeoutDelta", 3*24*time.Hour)
	v.SetDefault("rollbarToken", "")
	v.SetDefault("emailProvider", "console")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("resendApiKey", "")

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.debugHost", ":4000")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("server.jwtRefreshExpirationDelta", 4*time.Hour)

	v.SetDefault("database.engine", "mongodb")
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "smashclub")
	v.SetDefault("database.user", "smashclub")
	v.SetDefault("database.password", "")
	v.SetDefault("database.adminUser", "postgres")
	v.SetDefault("database.adminPassword", "")
	v.SetDefault("database.disableTLS", true)

	v.SetDefault("report.concurrency", 8)
	v.SetDefault("report.improvementPercent", 10)
	v.SetDefault("report.minAttendance", 60)
	v.SetDefault("report.minScore", 60)

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	case "QA", "PROD":
		v.SetDefault("debug", false)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	if wd, err := os.Getwd(); err == nil {
		dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
		if _, err := os.Stat(dotEnvPath); err == nil {
			if err := godotenv.Load(dotEnvPath); err != nil {
				log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
			}
		} else if !os.IsNotExist(err) {
			log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
		}
	}
	v.AutomaticEnv()

	return &Config{
		Env:                       env,
		Debug:                     v.GetBool("debug"),
		TestMode:                  v.GetBool("testMode"),
		AppName:                   v.GetString("appName"),
		Build:                     v.GetString("build"),
		SecretKey:                 v.GetString("secretKey"),
		FrontendBaseURL:           strings.TrimRight(v.GetString("frontendBaseURL"), "/"),
		TimeZone:                  v.GetString("timeZone"),
		PasswordResetTimeoutDelta: v.GetDuration("passwordResetTimeoutDelta"),
		RollbarToken:              v.GetString("rollbarToken"),
		EmailProvider:             strings.ToLower(v.GetString("emailProvider")),
		SendgridApiKey:            v.GetString("sendgridApiKey"),
		ResendApiKey:              v.GetString("resendApiKey"),
		Server: serverConfig{
			Host:                      v.GetString("server.host"),
			Address:                   v.GetString("server.address"),
			DebugHost:                 v.GetString("server.debugHost"),
			ShutdownTimeout:           v.GetDuration("server.shutdownTimeout"),
			JWTExpirationDelta:        v.GetDuration("server.jwtExpirationDelta"),
			JWTRefreshExpirationDelta: v.GetDuration("server.jwtRefreshExpirationDelta"),
		},
		Database: databaseConfig{
			Engine:        strings.ToLower(v.GetString("database.engine")),
			URI:           v.GetString("database.uri"),
			Host:          v.GetString("database.host"),
			Port:          v.GetInt("database.port"),
			Name:          v.GetString("database.name"),
			User:          v.GetString("database.user"),
			Password:      v.GetString("database.password"),
			AdminUser:     v.GetString("database.adminUser"),
			AdminPassword: v.GetString("database.adminPassword"),
			DisableTLS:    v.GetBool("database.disableTLS"),
		},
		Report: reportConfig{
			Concurrency:        v.GetInt("report.concurrency"),
			ImprovementPercent: v.GetInt("report.improvementPercent"),
			MinAttendance:      v.GetInt("report.minAttendance"),
			MinScore:           v.GetInt("report.minScore"),
		},
		defaultFromEmail: v.GetString("defaultFromEmail"),
	}
}

// NewTestConfig returns the configuration used by tests: in-memory storage, UTC periods.
func NewTestConfig() *Config {
	conf := NewConfig()
	conf.TestMode = true
	conf.Debug = false
	conf.TimeZone = "UTC"
	conf.EmailProvider = "console"
	conf.Database.Engine = "memory"
	return conf
}
