package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/lib/pq"
	"github.com/urfave/cli/v2"

	accessapp "github.com/Apurer/gomitas-api/internal/domains/access/application"
	accessdomain "github.com/Apurer/gomitas-api/internal/domains/access/domain"
	inventorydomain "github.com/Apurer/gomitas-api/internal/domains/inventory/domain"
	userapp "github.com/Apurer/gomitas-api/internal/domains/users/application"
	"github.com/Apurer/gomitas-api/internal/platform/migrations"
	platformpostgres "github.com/Apurer/gomitas-api/internal/platform/postgres"
)

func main() {
	app := &cli.App{
		Name:  "seed",
		Usage: "load the admin user, the candy catalog and its stock into PostgreSQL",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dsn", EnvVars: []string{"POSTGRES_DSN"}, Required: true, Usage: "PostgreSQL connection string"},
			&cli.StringFlag{Name: "admin-email", EnvVars: []string{"BOOTSTRAP_ADMIN_EMAIL"}, Value: "admin@gomitas.local"},
			&cli.StringFlag{Name: "admin-name", Value: "Administrator"},
			&cli.Int64Flag{Name: "stock", Value: 100, Usage: "initial quantity for every seeded product, 0 to skip stock records"},
			&cli.DurationFlag{Name: "timeout", Value: time.Minute},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatalf("seed: %v", err)
	}
}

func run(c *cli.Context) error {
	if c.Int64("stock") < 0 {
		return errors.New("--stock must not be negative")
	}
	if err := validateCatalog(defaultCatalog); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
	defer cancel()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	dsn := c.String("dsn")

	db, err := platformpostgres.Connect(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	users := userapp.NewService(platformpostgres.NewUnitOfWork(db, 5*time.Second), accessapp.NewGate(nil))
	admin, err := users.EnsureUser(ctx, c.String("admin-name"), c.String("admin-email"), accessdomain.RoleAdmin)
	if err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}
	logger.Info("admin ready", slog.Int64("user_id", admin.ID), slog.String("email", admin.Email))

	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("open copy connection: %w", err)
	}
	defer conn.Close()
	seeded, err := seedCatalog(ctx, conn, defaultCatalog, c.Int64("stock"), admin.ID)
	if err != nil {
		return err
	}
	logger.Info("catalog seeded", slog.Int("products", seeded), slog.Int64("stock", c.Int64("stock")))
	return nil
}

// seedCatalog bulk loads missing products and their stock with COPY inside one transaction.
func seedCatalog(ctx context.Context, conn *sql.DB, items []catalogItem, stock, actorID int64) (int, error) {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	existing, err := productIDs(ctx, tx, names(items))
	if err != nil {
		return 0, err
	}
	present := make(map[string]struct{}, len(existing))
	for name := range existing {
		present[name] = struct{}{}
	}
	todo := pending(items, present)
	if len(todo) == 0 {
		return 0, tx.Commit()
	}

	now := time.Now().UTC()
	if err := copyRows(ctx, tx, pq.CopyIn("products", "name", "flavor", "size", "price", "created_at", "updated_at"), len(todo), func(i int) []any {
		item := todo[i]
		return []any{item.Name, item.Flavor, item.Size, item.Price.StringFixed(2), now, now}
	}); err != nil {
		return 0, fmt.Errorf("copy products: %w", err)
	}

	if stock > 0 {
		ids, err := productIDs(ctx, tx, names(todo))
		if err != nil {
			return 0, err
		}
		if err := copyRows(ctx, tx, pq.CopyIn("stock_records", "product_id", "quantity", "created_at", "updated_at"), len(todo), func(i int) []any {
			return []any{ids[todo[i].Name], stock, now, now}
		}); err != nil {
			return 0, fmt.Errorf("copy stock: %w", err)
		}
		if err := copyRows(ctx, tx, pq.CopyIn("stock_movements", "product_id", "delta", "quantity_before", "quantity_after", "reason", "actor_id", "created_at"), len(todo), func(i int) []any {
			return []any{ids[todo[i].Name], stock, 0, stock, string(inventorydomain.ReasonInitial), actorID, now}
		}); err != nil {
			return 0, fmt.Errorf("copy movements: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(todo), nil
}

func productIDs(ctx context.Context, tx *sql.Tx, names []string) (map[string]int64, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id, name FROM products WHERE name = ANY($1)`, pq.Array(names))
	if err != nil {
		return nil, fmt.Errorf("lookup products: %w", err)
	}
	defer rows.Close()
	ids := make(map[string]int64, len(names))
	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		ids[name] = id
	}
	return ids, rows.Err()
}

func copyRows(ctx context.Context, tx *sql.Tx, statement string, n int, row func(i int) []any) error {
	stmt, err := tx.PrepareContext(ctx, statement)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, row(i)...); err != nil {
			_ = stmt.Close()
			return err
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		return err
	}
	return stmt.Close()
}
