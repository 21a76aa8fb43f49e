package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/notch-0314/heattech-backend/internal"
	"github.com/notch-0314/heattech-backend/internal/config"
	"github.com/notch-0314/heattech-backend/internal/storage"
)

// masterload bulk-reloads the coping_master reference table from a CSV with
// the header: type_no,type_name,score_id,time,tone,rest_type,how_to_rest
func main() {
	csvPath := flag.String("csv", "coping_master.csv", "path to the coping master CSV file")
	flag.Parse()

	cfg := config.Load()

	logger, err := internal.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Fatalf("invalid timezone %q: %v", cfg.Timezone, err)
	}

	repos, err := storage.NewRepositories(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}

	records, err := readMasterCSV(*csvPath, time.Now().In(loc))
	if err != nil {
		logger.Fatalf("failed to read %s: %v", *csvPath, err)
	}

	if err := repos.Master.ReplaceAll(context.Background(), records); err != nil {
		logger.Fatalf("failed to reload coping_master: %v", err)
	}
	logger.Infof("loaded %d coping master records", len(records))
}

func readMasterCSV(path string, now time.Time) ([]internal.CopingMaster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, err
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{"type_no", "type_name", "score_id", "time", "tone", "rest_type", "how_to_rest"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	var records []internal.CopingMaster
	for line := 2; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		typeNo, err := strconv.Atoi(row[col["type_no"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad type_no: %w", line, err)
		}
		scoreID, err := strconv.Atoi(row[col["score_id"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad score_id: %w", line, err)
		}
		timeValue, err := strconv.Atoi(row[col["time"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad time: %w", line, err)
		}
		records = append(records, internal.CopingMaster{
			TypeNo:         typeNo,
			TypeName:       row[col["type_name"]],
			ScoreID:        scoreID,
			Time:           timeValue,
			Tone:           row[col["tone"]],
			RestType:       row[col["rest_type"]],
			HowToRest:      row[col["how_to_rest"]],
			CreateDatetime: now,
			UpdateDatetime: now,
		})
	}
	return records, nil
}
