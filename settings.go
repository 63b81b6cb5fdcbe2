package i18n

import (
	"io/fs"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by LoadSettings
const EnvPrefix = "WECELEBRATE"

// Settings is the file and environment backed configuration of the library
type Settings struct {
	Locale          string          `yaml:"locale" mapstructure:"locale" default:"en-US"`
	DefaultCurrency string          `yaml:"default_currency" mapstructure:"default_currency" default:"USD"`
	DefaultCountry  string          `yaml:"default_country" mapstructure:"default_country" default:"US"`
	Catalogs        CatalogPaths    `yaml:"catalogs" mapstructure:"catalogs"`
	Log             LogSettings     `yaml:"log" mapstructure:"log"`
	Site            SiteAPISettings `yaml:"site" mapstructure:"site"`
}

// CatalogPaths lists optional override files for the embedded tables
type CatalogPaths struct {
	Currencies    string `yaml:"currencies" mapstructure:"currencies"`
	ExchangeRates string `yaml:"exchange_rates" mapstructure:"exchange_rates"`
	Countries     string `yaml:"countries" mapstructure:"countries"`
}

type LogSettings struct {
	Level       string `yaml:"level" mapstructure:"level" default:"info"`
	Development bool   `yaml:"development" mapstructure:"development"`
	OutputPath  string `yaml:"output_path" mapstructure:"output_path" default:"stderr"`
}

// SiteAPISettings configures how site configuration is fetched and cached
type SiteAPISettings struct {
	APIBaseURL      string        `yaml:"api_base_url" mapstructure:"api_base_url"`
	EnvironmentID   string        `yaml:"environment_id" mapstructure:"environment_id"`
	APIToken        string        `yaml:"api_token" mapstructure:"api_token"`
	RequestTimeout  time.Duration `yaml:"request_timeout" mapstructure:"request_timeout"`
	CacheTTL        time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl" default:"1h"`
	RedisAddr       string        `yaml:"redis_addr" mapstructure:"redis_addr"`
	RedisPassword   string        `yaml:"redis_password" mapstructure:"redis_password"`
	RedisDB         int           `yaml:"redis_db" mapstructure:"redis_db"`
	RedisPrefix     string        `yaml:"redis_prefix" mapstructure:"redis_prefix" default:"wecelebrate:site:"`
	StorageKey      string        `yaml:"storage_key" mapstructure:"storage_key" default:"jala2_current_site_id"`
	PublicDomainKey string        `yaml:"public_domain_key" mapstructure:"public_domain_key" default:"figma-public-site-domain"`
}

var settingsKeys = []string{
	"locale",
	"default_currency",
	"default_country",
	"catalogs.currencies",
	"catalogs.exchange_rates",
	"catalogs.countries",
	"log.level",
	"log.development",
	"log.output_path",
	"site.api_base_url",
	"site.environment_id",
	"site.api_token",
	"site.request_timeout",
	"site.cache_ttl",
	"site.redis_addr",
	"site.redis_password",
	"site.redis_db",
	"site.redis_prefix",
	"site.storage_key",
	"site.public_domain_key",
}

// LoadSettings resolves settings from struct defaults, then the optional config
// file at path, then WECELEBRATE_* environment variables. envFiles are loaded
// into the environment first (".env" when none are given); missing env files are skipped.
func LoadSettings(path string, envFiles ...string) (*Settings, error) {
	settings := &Settings{}
	if err := defaults.Set(settings); err != nil {
		return nil, errors.Wrap(err, "apply settings defaults")
	}

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(err, "load env file %s", file)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range settingsKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, errors.Wrapf(err, "bind env %s", key)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read settings file %s", path)
		}
	}

	if err := v.Unmarshal(settings); err != nil {
		return nil, errors.Wrap(err, "decode settings")
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Validate checks values that would otherwise fail later at build time
func (s *Settings) Validate() error {
	if s == nil {
		return errors.New("settings are nil")
	}
	if code := normalizeCode(s.DefaultCurrency); len(code) != 3 {
		return errors.Errorf("default_currency must be a three letter code, got %q", s.DefaultCurrency)
	}
	if code := normalizeCode(s.DefaultCountry); len(code) != 2 {
		return errors.Errorf("default_country must be a two letter code, got %q", s.DefaultCountry)
	}
	if s.Site.CacheTTL <= 0 {
		return errors.Errorf("site.cache_ttl must be positive, got %s", s.Site.CacheTTL)
	}
	if s.Site.RequestTimeout < 0 {
		return errors.Errorf("site.request_timeout must not be negative, got %s", s.Site.RequestTimeout)
	}
	return nil
}

// Options converts settings into Config options
func (s *Settings) Options() []Option {
	if s == nil {
		return nil
	}

	opts := []Option{
		WithDefaultLocale(s.Locale),
		WithDefaultCurrency(s.DefaultCurrency),
		WithDefaultCountry(s.DefaultCountry),
	}

	if s.Catalogs != (CatalogPaths{}) {
		loader := NewCatalogLoader().
			WithCurrencyOverrides(s.Catalogs.Currencies).
			WithExchangeRateOverrides(s.Catalogs.ExchangeRates).
			WithCountryOverrides(s.Catalogs.Countries)
		opts = append(opts, WithCatalogLoader(loader))
	}

	return opts
}

// LoggerConfig returns the logger settings in the form NewLogger expects
func (s *Settings) LoggerConfig() LoggerConfig {
	if s == nil {
		return LoggerConfig{}
	}
	return LoggerConfig{
		Level:       s.Log.Level,
		Development: s.Log.Development,
		OutputPath:  s.Log.OutputPath,
	}
}
