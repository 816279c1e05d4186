package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	DatabaseURL string `env:"DATABASE_URL"`

	Auth       Auth       `envPrefix:"AUTH_"`
	Stripe     Stripe     `envPrefix:"STRIPE_"`
	Cloudinary Cloudinary `envPrefix:"CLOUDINARY_"`
}

type Stripe struct {
	BaseApiURL    string `env:"BASE_API_URL" envDefault:"https://api.stripe.com"`
	SecretKey     string `env:"SECRET_KEY"`
	WebhookSecret string `env:"WEBHOOK_SECRET"`
	Currency      string `env:"CURRENCY" envDefault:"mxn"`
}

type Cloudinary struct {
	BaseApiURL   string `env:"BASE_API_URL" envDefault:"https://api.cloudinary.com"`
	CloudName    string `env:"CLOUD_NAME"`
	UploadPreset string `env:"UPLOAD_PRESET"`
	Folder       string `env:"FOLDER" envDefault:"product"`
}

type Auth struct {
	// HS256 secret for bearer tokens issued by the identity provider
	JWTSecret string `env:"JWT_SECRET"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
