package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/samriddhi-018/infosys-LGD/internal/config"
	"github.com/samriddhi-018/infosys-LGD/internal/pkg/database"
	"github.com/samriddhi-018/infosys-LGD/internal/repository/postgresql"
	userService "github.com/samriddhi-018/infosys-LGD/internal/service/user"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)).With(slog.String("app", "lgd-admin")))

	cfg, err := config.Load()
	errAndDie(err)

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	errAndDie(err)

	cli := commandLine{
		users: userService.NewUserService(postgresql.NewUserRepository(db)),
		migrate: func(ctx context.Context, command string, args ...string) error {
			return database.Migrate(ctx, db, command, args...)
		},
	}
	err = cli.run(ctx, os.Args)
	db.Close()
	if err != nil {
		if err != errHelp {
			slog.Error("command failed", "error", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		slog.Error("startup failed", "error", err)
		os.Exit(1)
	}
}
