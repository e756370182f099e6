package config

import (
	"github.com/caarlos0/env/v11"
)

type Config struct {
	Token                 string `env:"DISCORD_BOT_TOKEN,required"`
	DatabaseURL           string `env:"DATABASE_URL" envDefault:"sqlite:team_manager.db"`
	KeepAliveAddr         string `env:"KEEP_ALIVE_ADDR" envDefault:":8080"`
	DefaultCardBackground string `env:"DEFAULT_CARD_BACKGROUND" envDefault:"default_card.jpg"`
	CardFontFile          string `env:"CARD_FONT_FILE" envDefault:"font.ttf"`
}

func Load() (Config, error) {
	var cfg Config
	err := env.Parse(&cfg)
	return cfg, err
}
