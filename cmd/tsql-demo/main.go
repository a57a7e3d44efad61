// Package main implements tsql-demo, a small program that creates a table,
// inserts, selects, updates and deletes rows through tsql against either
// backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/netip"
	"os"

	"github.com/bluepython508/tsql"
	"github.com/bluepython508/tsql/config"
	"github.com/bluepython508/tsql/postgres"
	"github.com/bluepython508/tsql/sqlite"
	"github.com/google/uuid"
)

// Item is both the table identity and the row type.
type Item struct {
	Id       uuid.UUID  `db:"id"`
	Name     string     `db:"name"`
	Nickname *string    `db:"nickname"`
	Count    *int64     `db:"count"`
	Score    float64    `db:"score"`
	Addr     netip.Addr `db:"addr"`
}

func (Item) TableName() string { return `item` }

var (
	ItemId       = tsql.ColAs[Item](`id`, tsql.String, tsql.Stringify(uuid.Parse))
	ItemName     = tsql.Col[Item](`name`, tsql.String)
	ItemNickname = tsql.Col[Item](`nickname`, tsql.Nullable(tsql.String)).Unique()
	ItemCount    = tsql.Col[Item](`count`, tsql.Nullable(tsql.Int64))
	ItemScore    = tsql.Col[Item](`score`, tsql.Float64).Unique()
	ItemAddr     = tsql.ColAs[Item](`addr`, tsql.String, tsql.Stringify(netip.ParseAddr))

	ItemRecord = tsql.MustStructRecord[Item, Item](ItemId, ItemName, ItemNickname, ItemCount, ItemScore, ItemAddr)
)

func (Item) Columns() []tsql.DynCol[Item] {
	return []tsql.DynCol[Item]{ItemId, ItemName, ItemNickname, ItemCount, ItemScore, ItemAddr}
}

func main() {
	var (
		configFile string
		envFile    string
		verbose    bool
	)

	flag.StringVar(&configFile, `config`, ``, `Path to configuration file (YAML or JSON)`)
	flag.StringVar(&envFile, `env`, `.env`, `Path to .env file, used when -config is empty`)
	flag.BoolVar(&verbose, `v`, false, `Log every statement`)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "tsql-demo - typed SQL queries against sqlite or postgres\n\n")
		fmt.Fprintf(os.Stderr, "Usage: tsql-demo [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  TSQL_DRIVER    Backend (sqlite, postgres)\n")
		fmt.Fprintf(os.Stderr, "  TSQL_DSN       Database path or connection string\n")
		fmt.Fprintf(os.Stderr, "  TSQL_MAX_*     Pool settings\n")
	}

	flag.Parse()

	cfg, err := loadConfig(configFile, envFile)
	if err != nil {
		log.Fatalf(`Failed to load configuration: %v`, err)
	}

	var logger *log.Logger
	if verbose {
		logger = log.New(os.Stderr, ``, log.LstdFlags)
	}

	ctx := context.Background()

	db, closer, err := open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf(`Failed to open database: %v`, err)
	}
	defer closer()

	if err := run(ctx, db); err != nil {
		log.Fatalf(`Demo failed: %v`, err)
	}
}

func loadConfig(configFile, envFile string) (*config.Config, error) {
	if configFile != `` {
		return config.Load(configFile)
	}
	return config.LoadEnv(envFile)
}

func open(ctx context.Context, cfg *config.Config, logger *log.Logger) (tsql.Db, func(), error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		opts := postgres.Options{Pool: cfg.Pool}
		if logger != nil {
			opts.Logger = logger
		}
		db, err := postgres.Connect(ctx, cfg.DSN, opts)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { db.Close() }, nil

	default:
		opts := sqlite.Options{Pool: cfg.Pool}
		if logger != nil {
			opts.Logger = logger
		}
		db, err := sqlite.Open(ctx, cfg.DSN, opts)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { db.Close() }, nil
	}
}

func run(ctx context.Context, db tsql.Db) error {
	if err := tsql.CreateTable[Item](db).IfNotExists().Exec(ctx); err != nil {
		return err
	}

	id := uuid.New()
	count := int64(12)

	err := ItemRecord.InsertInto(db).Values(Item{
		Id:    id,
		Name:  `1234`,
		Count: &count,
		Score: 1234.5,
		Addr:  netip.MustParseAddr(`127.0.0.1`),
	}).Exec(ctx)
	if err != nil {
		return err
	}
	if err := printItems(ctx, db); err != nil {
		return err
	}

	nickname := `1234`
	err = tsql.Update[Item](db).
		Set(ItemNickname.Assign(&nickname), ItemScore.Assign(12345.6)).
		Where(ItemScore.Equals(1234.5)).
		Exec(ctx)
	if err != nil {
		return err
	}
	if err := printItems(ctx, db); err != nil {
		return err
	}

	if err := tsql.DeleteWhere(db, ItemId.Equals(id)).Exec(ctx); err != nil {
		return err
	}
	return printItems(ctx, db)
}

func printItems(ctx context.Context, db tsql.Db) error {
	items, err := ItemRecord.Select(db).
		OrderBy(ItemName, tsql.DirAsc).
		Limit(500).
		FetchAll(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%d item(s)\n", len(items))
	for _, item := range items {
		fmt.Printf("  %v %q nickname=%v count=%v score=%v addr=%v\n",
			item.Id, item.Name, deref(item.Nickname), deref(item.Count), item.Score, item.Addr)
	}
	return nil
}

func deref[A any](val *A) any {
	if val == nil {
		return nil
	}
	return *val
}
