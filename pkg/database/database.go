package database

import (
	"context"
	"crypto/tls"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/mjaros/pg2ch/pkg/logger"
)

// ClickHouseParams carries the connection settings for the destination.
// Secure enables TLS, which ClickHouse Cloud requires.
type ClickHouseParams struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	Secure   bool
}

func ConnectPostgres(connString string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, fmt.Errorf("error opening PostgreSQL database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to PostgreSQL (ping failed): %w", err)
	}

	logger.Infof("Connected to PostgreSQL.")
	return db, nil
}

func ConnectClickHouse(params ClickHouseParams) (driver.Conn, error) {
	opts := &clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", params.Host, params.Port)},
		Auth: clickhouse.Auth{
			Database: params.Database,
			Username: params.User,
			Password: params.Password,
		},
		DialTimeout: 30 * time.Second,
		ReadTimeout: 5 * time.Minute,
	}
	if params.Secure {
		opts.TLS = &tls.Config{}
	}

	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("error creating ClickHouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("error connecting to ClickHouse (ping failed): %w", err)
	}

	var version string
	if err := conn.QueryRow(ctx, "SELECT version()").Scan(&version); err == nil {
		logger.Infof("Connected to ClickHouse %s at %s:%d.", version, params.Host, params.Port)
	} else {
		logger.Infof("Connected to ClickHouse at %s:%d.", params.Host, params.Port)
	}

	return conn, nil
}
