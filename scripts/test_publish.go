//go:build ignore

// Публикует задание импорта в stream:imports:request и ждёт результата в stream:imports:done.
//
//	go run scripts/test_publish.go -kind netex -path jdf/netex.zip
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/frfole/inverse-zastavky/internal/domain"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	kind := flag.String("kind", string(domain.ImportNetex), "netex | base_stations | base_cities")
	path := flag.String("path", "", "file path relative to IMPORT_DIR")
	wait := flag.Duration("wait", 5*time.Minute, "how long to wait for the done event")
	flag.Parse()

	if !domain.ImportKind(*kind).Valid() || *path == "" {
		log.Fatalf("usage: -kind <netex|base_stations|base_cities> -path <file>")
	}

	client := redis.NewClient(&redis.Options{Addr: *redisAddr})
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	job := domain.ImportJob{
		JobID:     uuid.New(),
		Kind:      domain.ImportKind(*kind),
		Path:      *path,
		CreatedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(job)
	if err != nil {
		log.Fatalf("Failed to marshal job: %v", err)
	}

	// последний ID до публикации, чтобы не читать старые события
	lastID := "$"
	if msgs, err := client.XRevRangeN(ctx, domain.StreamImportDone, "+", "-", 1).Result(); err == nil && len(msgs) > 0 {
		lastID = msgs[0].ID
	}

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: domain.StreamImportRequest,
		Values: map[string]interface{}{"data": string(data)},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish job: %v", err)
	}
	fmt.Printf("Job %s published as %s (%s %s)\n", job.JobID, id, job.Kind, job.Path)

	deadline := time.Now().Add(*wait)
	for time.Now().Before(deadline) {
		streams, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{domain.StreamImportDone, lastID},
			Count:   10,
			Block:   time.Second,
		}).Result()
		if err != nil && err != redis.Nil {
			log.Fatalf("Failed to read done stream: %v", err)
		}

		for _, stream := range streams {
			for _, msg := range stream.Messages {
				lastID = msg.ID
				raw, ok := msg.Values["data"].(string)
				if !ok {
					continue
				}
				var event domain.ImportDoneEvent
				if err := json.Unmarshal([]byte(raw), &event); err != nil || event.JobID != job.JobID {
					continue
				}
				pretty, _ := json.MarshalIndent(event, "", "  ")
				fmt.Printf("%s\n", pretty)
				return
			}
		}
	}
	log.Fatalf("Timeout waiting for job %s", job.JobID)
}
