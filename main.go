package main

import (
	"fmt"
	"os"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/xo/dburl"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"proximaBot/config"
	"proximaBot/models"
	"proximaBot/scheduler"
	"proximaBot/services"
	"proximaBot/services/cardService"
)

var db *gorm.DB
var cfg config.Config

func init() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file, using process environment")
	}

	var err error
	cfg, err = config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	db, err = openDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	err = db.AutoMigrate(
		&models.GuildConfig{},
		&models.Team{},
		&models.FreeAgentListing{},
		&models.PlayerStats{},
		&models.ErrorLog{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("error migrating database")
	}
}

// openDatabase picks the GORM dialector from the DATABASE_URL scheme. The
// default is a local sqlite file; mysql is supported for hosted deployments.
func openDatabase(rawURL string) (*gorm.DB, error) {
	u, err := dburl.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing DATABASE_URL: %w", err)
	}

	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	switch u.Driver {
	case "sqlite3", "sqlite":
		return gorm.Open(sqlite.Open(u.DSN), gormCfg)
	case "mysql":
		return gorm.Open(mysql.Open(u.DSN+"?charset=utf8mb4&parseTime=True&loc=Local"), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported database scheme %q", u.Driver)
	}
}

func main() {
	cardService.Configure(cfg.DefaultCardBackground, cfg.CardFontFile)
	if err := cardService.EnsureFont(); err != nil {
		log.Warn().Err(err).Msg("card font unavailable, falling back to built-in face")
	}

	dg, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating Discord session")
	}

	dg.AddHandler(interactionCreate)
	dg.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		err := s.UpdateGameStatus(0, "Managing Transfers!")
		if err != nil {
			return
		}
	})

	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers | discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages

	err = dg.Open()
	if err != nil {
		log.Fatal().Err(err).Msg("error opening Discord session")
	}
	defer func(dg *discordgo.Session) {
		err := dg.Close()
		if err != nil {

		}
	}(dg)

	err = services.RegisterCommands(dg)
	if err != nil {
		log.Fatal().Err(err).Msg("error registering commands")
	}

	scheduler.SetupCron(dg, db)
	go keepAlive(cfg.KeepAliveAddr)

	log.Info().Msg("bot is running, press CTRL+C to exit")
	select {}
}

func interactionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		services.HandleSlashCommand(s, i, db)
	case discordgo.InteractionMessageComponent:
		services.HandleComponentInteraction(s, i, db)
	}
}
