package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/benbeisheim/chessrules/internal/controller"
	"github.com/benbeisheim/chessrules/internal/middleware"
	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}

func main() {
	addr := flag.String("addr", envOr("CHESS_ADDR", ":3000"), "listen address")
	origin := flag.String("origin", envOr("CHESS_ORIGIN", "http://localhost:5173"), "allowed browser origin")
	strictEscape := flag.Bool("strict-escape", envBool("CHESS_STRICT_ESCAPE"), "a king with no legal square cannot escape check")
	flag.Parse()

	var opts []model.Option
	if *strictEscape {
		opts = append(opts, model.WithStrictKingEscape())
	}

	gameManager := service.NewGameManager(opts...)
	gameService := service.NewGameService(gameManager)

	app := newApp(gameService, *origin)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Printf("shutting down")
		if err := gameManager.Close(); err != nil {
			log.Printf("closing games: %v", err)
		}
		if err := app.Shutdown(); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("listening on %s (escape rule: %s)", *addr, escapeRuleName(*strictEscape))
	if err := app.Listen(*addr); err != nil {
		log.Fatal(err)
	}
}

func escapeRuleName(strict bool) model.EscapeRule {
	if strict {
		return model.EscapeStrict
	}
	return model.EscapeLiteral
}

func newApp(gameService *service.GameService, origin string) *fiber.App {
	app := fiber.New()

	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: origin,
		AllowHeaders: "Origin, Content-Type, Accept, " + middleware.ClientIDHeader,
		AllowMethods: "GET, POST, OPTIONS",
	}))

	controller.RegisterRoutes(app, gameService, origin)
	return app
}
