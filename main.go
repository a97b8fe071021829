package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"PrettyHelp/bot"
	"PrettyHelp/commands"
	_ "PrettyHelp/commands/admin"
	_ "PrettyHelp/commands/general"
	"PrettyHelp/config"
	"PrettyHelp/help"
	"PrettyHelp/utils"

	"github.com/bwmarrin/discordgo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Token == "" {
		log.Fatal("DISCORD_TOKEN is not set")
	}

	b, err := bot.NewBot(cfg.Token, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	opts, err := cfg.HelpOptions()
	if err != nil {
		log.Fatal(err)
	}

	// a nil *store.Store must not end up inside the interface
	var filter help.Filter
	if b.Store != nil {
		filter = b.Store
	} else {
		log.Println("DATABASE_URL is not set, disable and enable will not work")
	}

	h, err := help.New(opts, commands.Default, filter)
	if err != nil {
		log.Fatal(err)
	}
	commands.RegisterModule(h.Module())
	commands.RegisterCommand("help", h.Command, "h")

	limiter := utils.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	dispatcher := &commands.Dispatcher{
		Bot:      b,
		Registry: commands.Default,
		Prefix:   cfg.Prefix,
		Limiter:  limiter,
	}

	b.Client.AddHandler(dispatcher.HandleMessage)
	b.Client.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		switch i.Type {
		case discordgo.InteractionApplicationCommand:
			dispatcher.HandleInteraction(s, i)
		case discordgo.InteractionMessageComponent:
			h.HandleInteraction(s, i)
		}
	})
	b.Client.AddHandler(h.HandleReaction)
	b.Client.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Printf("Logged in as %s", r.User.String())
	})

	if err := b.Client.Open(); err != nil {
		log.Fatal(err)
	}

	if err := commands.SyncSlashCommands(b.Client, b.SelfID(), cfg.GuildID, commands.Default.SlashCommands()); err != nil {
		log.Printf("Error syncing slash commands: %v", err)
	}

	stopPrune := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				limiter.Prune()
			case <-stopPrune:
				return
			}
		}
	}()

	log.Println("Bot is running. Press Ctrl+C to exit.")
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down")
	close(stopPrune)
	h.Close()
	if err := b.Close(); err != nil {
		log.Printf("Error closing bot: %v", err)
	}
}
