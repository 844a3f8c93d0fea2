package config

import (
	"os"
	"runtime"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/lessonlab/code-runner/internal/runner"
)

type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" env-default:":8080"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	ExecTimeoutMs  int `env:"EXEC_TIMEOUT_MS" env-default:"5000"`
	CompileFactor  int `env:"COMPILE_TIMEOUT_FACTOR" env-default:"3"`
	TestTimeoutMs  int `env:"TEST_TIMEOUT_MS" env-default:"3000"`
	MaxOutputChars int `env:"MAX_OUTPUT_CHARS" env-default:"50000"`
	MaxTestCases   int `env:"MAX_TEST_CASES" env-default:"20"`

	// The AMQP listener and the exercise-code bucket are optional; without
	// them the service is HTTP-only.
	AMQPEnabled      bool   `env:"AMQP_ENABLED" env-default:"false"`
	RabbitMQHost     string `env:"RABBIT_HOST" env-default:"127.0.0.1"`
	RabbitMQPort     int    `env:"RABBIT_PORT" env-default:"5672"`
	RabbitMQUser     string `env:"RABBIT_USER" env-default:""`
	RabbitMQPassword string `env:"RABBIT_PASSWORD" env-default:""`
	WorkersCount     int    `env:"WORKERS_COUNT" env-default:"0"`

	MinIOHost     string `env:"MINIO_HOST" env-default:"127.0.0.1:9000"`
	MinIOLogin    string `env:"MINIO_LOGIN" env-default:""`
	MinIOPassword string `env:"MINIO_PASSWORD" env-default:""`
	MinIOBucket   string `env:"MINIO_BUCKET" env-default:"exercises"`
}

func NewConfig() (*Config, error) {
	cfg := &Config{}

	err := cleanenv.ReadConfig(".env", cfg)
	if os.IsNotExist(err) {
		err = cleanenv.ReadEnv(cfg)
	}
	if err != nil {
		return nil, err
	}
	if cfg.WorkersCount <= 0 {
		cfg.WorkersCount = runtime.NumCPU()
	}

	return cfg, nil
}

func (c *Config) Limits() runner.Limits {
	return runner.Limits{
		ExecTimeout:   time.Duration(c.ExecTimeoutMs) * time.Millisecond,
		CompileFactor: c.CompileFactor,
		TestTimeout:   time.Duration(c.TestTimeoutMs) * time.Millisecond,
		MaxOutput:     c.MaxOutputChars,
		MaxTestCases:  c.MaxTestCases,
	}
}
