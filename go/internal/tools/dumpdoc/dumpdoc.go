package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kchandnani/fntz/go/internal/dbconfig"
	"github.com/kchandnani/fntz/go/internal/models"
)

// dumpdoc prints the stored user-data document from Postgres as indented
// JSON, for inspecting what the app persisted. Run it with the same DB_*
// environment as the server.
func main() {
	ctx := context.Background()

	cfg := dbconfig.NewConfigFromEnv()
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	var raw []byte
	err = pool.QueryRow(ctx, `SELECT doc FROM user_documents WHERE id = 1`).Scan(&raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "query document: %v\n", err)
		os.Exit(1)
	}

	var data models.UserData
	if err := json.Unmarshal(raw, &data); err != nil {
		fmt.Fprintf(os.Stderr, "unmarshal document: %v\n", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal document: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))

	fmt.Fprintf(os.Stderr, "\nversion=%s leagues=%d manual_rosters=%d current=%q\n",
		data.Version, len(data.Leagues), len(data.ManualRosters), data.CurrentLeagueID)
}
