// Управление конфигурацией приложения из переменных окружения.
// Содержит структуру Config для хранения параметров и функцию ReadConfig для их
// загрузки из переменных окружения.
//
// Основные возможности:
//   - Загрузка конфигурации из переменных окружения с использованием тегов struct.
//   - Преобразование типов данных из переменных окружения (string, int, bool).
//   - Маскировка секретных значений (passwords) в логах.
//   - Значения по умолчанию для порта, почтовых воркеров и режима работы.
package config

import (
	"log/slog"
	"net/url"
	"reflect"
	"strings"
)

type Config struct {
	DatabaseDSN string `env:"DATABASE_URL"`

	Port int `env:"PORT"`

	DefaultUserEmail string `env:"DEFAULT_EMAIL"`

	EmailDisabled bool   `env:"EMAIL_DISABLED"`
	EmailHost     string `env:"EMAIL_HOST"`
	EmailUser     string `env:"EMAIL_HOST_USER"`
	EmailPassword string `env:"EMAIL_HOST_PASSWORD"`
	EmailPort     int    `env:"EMAIL_PORT"`
	EmailFrom     string `env:"EMAIL_FROM"`
	EmailWorkers  int    `env:"EMAIL_WORKERS"`

	WebURLRaw string `env:"WEB_URL"`
	WebURL    *url.URL

	Environment string `env:"ENVIRONMENT"`
}

// Dev сообщает, работает ли приложение в режиме разработки. В этом режиме
// тела ошибок содержат отладочную информацию, а уровень логов понижен до Debug.
func (c *Config) Dev() bool {
	return c.Environment == "development"
}

// ReadConfig загружает конфигурацию приложения из переменных окружения.
// Секретные значения маскируются в логах, для части параметров применяются
// значения по умолчанию.
func ReadConfig() *Config {
	config := &Config{}

	envConfig("env", config)

	if config.WebURLRaw != "" {
		var err error
		config.WebURL, err = url.Parse(config.WebURLRaw)
		if err != nil {
			slog.Warn("WEB_URL incorrect, links in emails will be omitted", "err", err)
			config.WebURL = nil
		}
	}

	if config.Port <= 0 || config.Port > 65535 {
		config.Port = 5000
	}

	if config.EmailWorkers <= 0 {
		config.EmailWorkers = 5
	}

	if config.Environment == "" {
		config.Environment = "production"
	}

	if config.EmailFrom == "" {
		config.EmailFrom = config.EmailUser
	}

	return config
}

// Присваивает полям в переданной структуре значения переменных. Название
// переменной для каждого поля лежит в теге этого поля.
func envConfig(key string, s interface{}) {
	v := reflect.ValueOf(s).Elem()
	typeParam := v.Type()
	for i := 0; i < v.NumField(); i++ {
		fName := typeParam.Field(i).Name
		fEnvTag := typeParam.Field(i).Tag.Get(key)

		if !Exist(fEnvTag) {
			continue
		}

		logValue := GetEnv(fEnvTag)
		if logValue == "" {
			continue
		}

		// Secure passwords in log
		if strings.Contains(strings.ToLower(fName), "pass") || strings.Contains(strings.ToLower(fName), "secret") || strings.Contains(strings.ToLower(fName), "token") {
			pass := strings.Split(GetEnv(fEnvTag), "")
			logValue = pass[0]
			for i := 1; i < len(pass)-1; i++ {
				logValue += "*"
			}
			logValue += pass[len(pass)-1]
		}
		slog.Info("Set config value",
			slog.String("key", typeParam.Name()+"."+fName),
			slog.String("value", logValue),
			slog.String("source", "ENVIRONMENT"),
		)

		switch v.Field(i).Interface().(type) {
		case string:
			v.Field(i).SetString(GetEnv(fEnvTag))
		case int:
			v.Field(i).SetInt(int64(GetIntEnv(fEnvTag)))
		case bool:
			v.Field(i).SetBool(GetBoolEnv(fEnvTag))
		}
	}
}
