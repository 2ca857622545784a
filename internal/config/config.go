package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDR" env-default:":8080"`
}

type Database struct {
	Host     string `yaml:"PG_HOST" env:"PG_HOST" env-default:"localhost"`
	Port     string `yaml:"PG_PORT" env:"PG_PORT" env-default:"5432"`
	User     string `yaml:"PG_USER" env:"PG_USER" env-required:"true"`
	Password string `yaml:"PG_PASSWORD" env:"PG_PASSWORD" env-required:"true"`
	Name     string `yaml:"PG_DBNAME" env:"PG_DBNAME" env-required:"true"`
	SSLMode  string `yaml:"PG_SSLMODE" env:"PG_SSLMODE" env-default:"require"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER" env-default:""`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type Catalog struct {
	ProductsPath string `yaml:"PRODUCTS_PATH" env:"PRODUCTS_PATH" env-default:"data/products.json"`
}

type Cart struct {
	KeyPrefix string        `yaml:"CART_KEY_PREFIX" env:"CART_KEY_PREFIX" env-default:"gameshop"`
	TTL       time.Duration `yaml:"CART_TTL" env:"CART_TTL" env-default:"720h"`
}

type Payment struct {
	Provider        string `yaml:"PAYMENT_PROVIDER" env:"PAYMENT_PROVIDER" env-default:"mollie"`
	MollieAPIKey    string `yaml:"MOLLIE_API_KEY" env:"MOLLIE_API_KEY" env-default:""`
	MollieBaseURL   string `yaml:"MOLLIE_BASE_URL" env:"MOLLIE_BASE_URL" env-default:"https://api.mollie.com/v2"`
	StripeAPIKey    string `yaml:"STRIPE_API_KEY" env:"STRIPE_API_KEY" env-default:""`
	RedirectBaseURL string `yaml:"PAYMENT_REDIRECT_URL" env:"PAYMENT_REDIRECT_URL" env-default:"https://gameshop.example"`
	WebhookURL      string `yaml:"PAYMENT_WEBHOOK_URL" env:"PAYMENT_WEBHOOK_URL" env-default:""`
}

type Reconciler struct {
	PollInterval time.Duration `yaml:"POLL_INTERVAL" env:"POLL_INTERVAL" env-default:"3s"`
}

type Checkout struct {
	ShippingCost          float64 `yaml:"SHIPPING_COST" env:"SHIPPING_COST" env-default:"4.95"`
	FreeShippingThreshold float64 `yaml:"FREE_SHIPPING_THRESHOLD" env:"FREE_SHIPPING_THRESHOLD" env-default:"50"`
}

type SendGrid struct {
	APIKey    string `yaml:"SENDGRID_API_KEY" env:"SENDGRID_API_KEY" env-default:""`
	FromEmail string `yaml:"SENDGRID_FROM_EMAIL" env:"SENDGRID_FROM_EMAIL" env-default:"info@gameshop.example"`
	FromName  string `yaml:"SENDGRID_FROM_NAME" env:"SENDGRID_FROM_NAME" env-default:"Gameshop"`
}

type Security struct {
	JWTKey            string `yaml:"JWT_KEY" env:"JWT_KEY" env-required:"true"`
	AdminPasswordHash string `yaml:"ADMIN_PASSWORD_HASH" env:"ADMIN_PASSWORD_HASH" env-required:"true"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-required:"true"`
	HTTPServer   `yaml:"http_server"`
	Database     Database     `yaml:"database"`
	RedisConnect RedisConnect `yaml:"redis"`
	Catalog      Catalog      `yaml:"catalog"`
	Cart         Cart         `yaml:"cart"`
	Payment      Payment      `yaml:"payment"`
	Reconciler   Reconciler   `yaml:"reconciler"`
	Checkout     Checkout     `yaml:"checkout"`
	SendGrid     SendGrid     `yaml:"sendgrid"`
	Security     Security     `yaml:"security"`
}

func MustLoad() *Config {

	var configPath string

	configPath = os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "gets the config flag value")

		flag.Parse()

		configPath = *flags

		if configPath == "" {
			log.Fatal("Config path is not set")
		}

	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config

	err := cleanenv.ReadConfig(configPath, &cfg)

	if err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return &cfg

}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *RedisConnect) GetDSN() string {
	if r.Username != "" || r.Password != "" {
		return fmt.Sprintf("redis://%s:%s@%s:%s/%d", r.Username, r.Password, r.Host, r.Port, r.DB)
	}

	return fmt.Sprintf("redis://%s:%s/%d", r.Host, r.Port, r.DB)
}
