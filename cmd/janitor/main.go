// Scheduled cleanup for tables that grow without bound. Runs as a Lambda on
// a cron trigger.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/harukit/melodybot/internal/infra/storage"
)

const historyRetention = 90 * 24 * time.Hour

func handler(ctx context.Context) (string, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return "no DATABASE_URL", nil
	}

	db, err := storage.Open(ctx, dsn)
	if err != nil {
		return fmt.Sprintf("open: %v", err), nil
	}
	defer db.Close()

	cctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	n, err := storage.NewHistoryRepo(db).PruneOlderThan(cctx, time.Now().Add(-historyRetention))
	if err != nil {
		return fmt.Sprintf("prune: %v", err), nil
	}
	return fmt.Sprintf("pruned %d rows", n), nil
}

func main() { lambda.Start(handler) }
