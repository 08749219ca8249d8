package main

import (
	"log/slog"
	"strings"
	"time"
)

type serverConfig struct {
	Addr            string        `env:"BANKD_ADDR" envdefault:":8080"`
	LogLevel        slog.Level    `env:"BANKD_LOG_LEVEL" envdefault:"info"`
	ShutdownTimeout time.Duration `env:"BANKD_SHUTDOWN_TIMEOUT" envdefault:"10s"`

	// Comma-separated broker list; empty disables event publishing.
	KafkaBrokers string `env:"BANKD_KAFKA_BROKERS" envdefault:""`
	KafkaTopic   string `env:"BANKD_KAFKA_TOPIC" envdefault:"ledger_operations"`
}

func (c serverConfig) brokerList() []string {
	if c.KafkaBrokers == "" {
		return nil
	}

	parts := strings.Split(c.KafkaBrokers, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}
