package config

import (
	"flag"
	"os"

	"github.com/caarlos0/env/v8"
)

type Config interface {
	ServerAddress() string
	Environment() string
	ClientID() string
	ClientSecret() string
	WebhookSecret() string
	GatewayAddress() string
	FallbackPhone() string
}

type Builder struct {
	parameters *parameters
	arguments  []string
	err        error
}

type parameters struct {
	Port           string `env:"PORT"`
	Environment    string `env:"APP_ENV"`
	ClientID       string `env:"APP_ID"`
	ClientSecret   string `env:"SECRET_KEY"`
	WebhookSecret  string `env:"WEBHOOK_SECRET"`
	GatewayAddress string `env:"GATEWAY_ADDRESS"`
	FallbackPhone  string `env:"FALLBACK_PHONE"`
}

const (
	defaultPort          = "3000"
	defaultEnvironment   = "development"
	defaultFallbackPhone = "9090407368"

	environmentProduction = "production"
	gatewayAddressLive    = "https://api.cashfree.com/pg"
	gatewayAddressSandbox = "https://sandbox.cashfree.com/pg"
)

func NewBuilder() *Builder {
	return &Builder{
		parameters: &parameters{
			Port:          defaultPort,
			Environment:   defaultEnvironment,
			FallbackPhone: defaultFallbackPhone,
		},
		arguments: os.Args[1:],
	}
}

func (b *Builder) LoadEnv() *Builder {
	if err := env.Parse(b.parameters); err != nil && b.err == nil {
		b.err = err
	}

	return b
}

func (b *Builder) LoadFlags() *Builder {
	flags := flag.NewFlagSet("payrelay", flag.ContinueOnError)
	flags.StringVar(&b.parameters.Port, "p", b.parameters.Port, "listen port")
	flags.StringVar(&b.parameters.Environment, "e", b.parameters.Environment, "runtime environment, \"production\" selects the live gateway host")
	flags.StringVar(&b.parameters.GatewayAddress, "g", b.parameters.GatewayAddress, "payment gateway base URL, overrides the host selected by environment")
	if err := flags.Parse(b.arguments); err != nil && b.err == nil {
		b.err = err
	}

	return b
}

func (b *Builder) Build() (Config, error) {
	return b, b.err
}

func (b *Builder) ServerAddress() string {
	return ":" + b.parameters.Port
}

func (b *Builder) Environment() string {
	return b.parameters.Environment
}

func (b *Builder) ClientID() string {
	return b.parameters.ClientID
}

func (b *Builder) ClientSecret() string {
	return b.parameters.ClientSecret
}

func (b *Builder) WebhookSecret() string {
	return b.parameters.WebhookSecret
}

// GatewayAddress returns the explicitly configured base URL if there is one,
// otherwise the Cashfree host matching the environment.
func (b *Builder) GatewayAddress() string {
	if b.parameters.GatewayAddress != "" {
		return b.parameters.GatewayAddress
	}

	if b.parameters.Environment == environmentProduction {
		return gatewayAddressLive
	}

	return gatewayAddressSandbox
}

func (b *Builder) FallbackPhone() string {
	return b.parameters.FallbackPhone
}
