package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App                 App                 `mapstructure:",squash"`
	Server              Server              `mapstructure:",squash"`
	Database            Database            `mapstructure:",squash"`
	RevenueModel        RevenueModel        `mapstructure:",squash"`
	MetricsSnapshotSync MetricsSnapshotSync `mapstructure:",squash"`
	SecretKey           string              `mapstructure:"secret_key"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

// RevenueModel holds the commission scheme agreed with the upstream ISP.
// The arithmetic in reporting.RevenueProjection treats these as frozen
// business constants; they are configurable only so a renegotiated contract
// does not require a rebuild.
type RevenueModel struct {
	BaseTierRate float64 `mapstructure:"revenue_base_tier_rate"`
	Tier100Rate  float64 `mapstructure:"revenue_tier_100_rate"`
	Tier200Rate  float64 `mapstructure:"revenue_tier_200_rate"`
	Tier300Rate  float64 `mapstructure:"revenue_tier_300_rate"`
	Tier400Rate  float64 `mapstructure:"revenue_tier_400_rate"`

	QuarterlyBonus300 float64 `mapstructure:"revenue_quarterly_bonus_300"`
	QuarterlyBonus400 float64 `mapstructure:"revenue_quarterly_bonus_400"`

	Commission15Mbps float64 `mapstructure:"revenue_commission_15mbps"`
	Commission30Mbps float64 `mapstructure:"revenue_commission_30mbps"`
	Share15Mbps      float64 `mapstructure:"revenue_share_15mbps"`
	Share30Mbps      float64 `mapstructure:"revenue_share_30mbps"`

	MRR15Mbps          float64 `mapstructure:"revenue_mrr_15mbps"`
	MRR30Mbps          float64 `mapstructure:"revenue_mrr_30mbps"`
	RetentionRate      float64 `mapstructure:"revenue_retention_rate"`
	ResidualThreshold  float64 `mapstructure:"revenue_residual_threshold"`
	ResidualTierHigh   float64 `mapstructure:"revenue_residual_tier_high"`
	ResidualTierLow    float64 `mapstructure:"revenue_residual_tier_low"`
	ResidualUserFactor float64 `mapstructure:"revenue_residual_user_factor"`

	MonthlyCost float64 `mapstructure:"revenue_monthly_cost"`
}

type MetricsSnapshotSync struct {
	CronSchedule string `mapstructure:"metrics_snapshot_sync_cron"`
	Enabled      bool   `mapstructure:"metrics_snapshot_sync_enabled"`
	TrendDays    int    `mapstructure:"metrics_snapshot_trend_days"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/leadops")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	// Commission tiers by monthly activation count.
	viper.SetDefault("REVENUE_BASE_TIER_RATE", 0.50)
	viper.SetDefault("REVENUE_TIER_100_RATE", 0.55)
	viper.SetDefault("REVENUE_TIER_200_RATE", 0.60)
	viper.SetDefault("REVENUE_TIER_300_RATE", 0.65)
	viper.SetDefault("REVENUE_TIER_400_RATE", 0.70)

	// Quarterly bonuses, prorated to a month by the projection.
	viper.SetDefault("REVENUE_QUARTERLY_BONUS_300", 66000.0)
	viper.SetDefault("REVENUE_QUARTERLY_BONUS_400", 132000.0)

	// One-off sale commission bases and the observed package mix.
	viper.SetDefault("REVENUE_COMMISSION_15MBPS", 1498.0)
	viper.SetDefault("REVENUE_COMMISSION_30MBPS", 2248.0)
	viper.SetDefault("REVENUE_SHARE_15MBPS", 0.95)
	viper.SetDefault("REVENUE_SHARE_30MBPS", 0.05)

	// Residual income model.
	viper.SetDefault("REVENUE_MRR_15MBPS", 2999.0)
	viper.SetDefault("REVENUE_MRR_30MBPS", 3999.0)
	viper.SetDefault("REVENUE_RETENTION_RATE", 0.75)
	viper.SetDefault("REVENUE_RESIDUAL_THRESHOLD", 0.70)
	viper.SetDefault("REVENUE_RESIDUAL_TIER_HIGH", 0.15)
	viper.SetDefault("REVENUE_RESIDUAL_TIER_LOW", 0.10)
	viper.SetDefault("REVENUE_RESIDUAL_USER_FACTOR", 6.0)

	viper.SetDefault("REVENUE_MONTHLY_COST", 8000.0)

	viper.SetDefault("METRICS_SNAPSHOT_SYNC_CRON", "*/10 * * * *")
	viper.SetDefault("METRICS_SNAPSHOT_SYNC_ENABLED", false)
	viper.SetDefault("METRICS_SNAPSHOT_TREND_DAYS", 30)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("using variables loaded by godotenv (viper could not read .env):", err)
	} else {
		logrus.Info(".env file read by viper")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("could not determine working directory:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info(".env file loaded from:", location)
			return
		}
	}

	logrus.Warn("no .env file found in any known location")
}
