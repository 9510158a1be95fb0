package main

import (
	"fmt"
	"log"
	"os"

	"product-tracker/internal/repository"
	"product-tracker/internal/service"
	"product-tracker/pkg/config"
	"product-tracker/pkg/database"
	"product-tracker/pkg/jwt"
	applog "product-tracker/pkg/logger"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "reset-password",
		Usage: "set a new password for an operator account",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "username",
				Aliases: []string{"u"},
				Usage:   "account to reset",
				EnvVars: []string{"ADMIN_USERNAME"},
				Value:   "admin",
			},
			&cli.StringFlag{
				Name:     "password",
				Aliases:  []string{"p"},
				Usage:    "new password, at least 8 characters",
				Required: true,
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("reset failed: %v", err)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	zlog := applog.New(cfg.Log.Level, cfg.Log.Format)
	defer zlog.Sync()

	db, err := database.ConnectDB(cfg.Database)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	tokens := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Expiration, cfg.JWT.Issuer)
	auth := service.NewAuthService(repository.NewUserRepo(db), tokens, zlog)

	username := c.String("username")
	if err := auth.ResetPassword(username, c.String("password")); err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "Password for %s has been reset\n", username)
	return nil
}
