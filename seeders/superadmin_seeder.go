package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gym-admin/pkg/config"
	"gym-admin/pkg/constants"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin создаёт первого сотрудника с ролью MANAGER, если его ещё нет.
func SeedAdmin(ctx context.Context, db *pgxpool.Pool, cfg *config.Config) error {
	log.Println("  - Запуск сидера администратора...")

	nic := strings.ToUpper(strings.TrimSpace(cfg.Seeder.AdminNIC))
	password := cfg.Seeder.AdminPassword
	if nic == "" || password == "" {
		log.Println("    ℹ️  SEED_ADMIN_NIC или SEED_ADMIN_PASSWORD не заданы. Пропускаем создание.")
		return nil
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var existing string
	err = tx.QueryRow(ctx, "SELECT nic FROM staff WHERE nic = $1", nic).Scan(&existing)
	if err == nil {
		log.Println("    ℹ️  Администратор уже существует. Не трогаем.")
		return tx.Commit(ctx)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO staff (nic, name, role, start_date, password_hash) VALUES ($1, $2, $3, CURRENT_DATE, $4)`,
		nic, "System Administrator", constants.RoleManager, string(hash),
	); err != nil {
		return fmt.Errorf("ошибка SQL при создании администратора: %w", err)
	}

	log.Printf("    ✅ Сотрудник %s создан с ролью %s", nic, constants.RoleManager)
	return tx.Commit(ctx)
}
