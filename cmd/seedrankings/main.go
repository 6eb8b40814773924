package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/google/uuid"

	"github.com/mcdev12/draftroom/internal/dbconfig"
	"github.com/mcdev12/draftroom/internal/draft/store/postgres"
	"github.com/mcdev12/draftroom/internal/models"
)

// seedrankings loads a rankings CSV into the shared player pool. Expected
// columns: full_name, position, team, rank. Re-running upserts by name and
// position, so refreshed rankings overwrite stale ones.

func main() {
	path := flag.String("file", "rankings.csv", "path to rankings CSV")
	flag.Parse()

	ctx := context.Background()

	f, err := os.Open(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open rankings file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	players, skipped, err := parseRankings(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse rankings: %v\n", err)
		os.Exit(1)
	}

	cfg := dbconfig.NewConfigFromEnv()
	pool, err := cfg.NewPool(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect error: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	st := postgres.NewStore(pool)
	if err := st.CreatePlayers(ctx, players); err != nil {
		fmt.Fprintf(os.Stderr, "seed players: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Rankings seed: total=%d skipped=%d\n", len(players), skipped)
}

func parseRankings(r io.Reader) ([]models.Player, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 4

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read header: %w", err)
	}
	if header[0] != "full_name" || header[1] != "position" || header[2] != "team" || header[3] != "rank" {
		return nil, 0, fmt.Errorf("unexpected header %v, want [full_name position team rank]", header)
	}

	var players []models.Player
	skipped := 0
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("line %d: %w", line, err)
		}

		pos := models.Position(record[1])
		switch pos {
		case models.PositionQB, models.PositionRB, models.PositionWR, models.PositionTE:
		default:
			// Kickers, defenses, and other positions outside the roster
			// rules are not draftable here.
			skipped++
			continue
		}

		rank, err := strconv.Atoi(record[3])
		if err != nil {
			return nil, 0, fmt.Errorf("line %d: invalid rank %q", line, record[3])
		}

		// Deterministic ID per name and position, so re-seeding updates
		// rows in place instead of duplicating the pool.
		id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(record[0]+"|"+record[1]))

		players = append(players, models.Player{
			ID:       id,
			FullName: record[0],
			Position: pos,
			Team:     record[2],
			Rank:     rank,
		})
	}
	return players, skipped, nil
}
