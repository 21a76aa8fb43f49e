package storage

import (
	"fmt"

	"github.com/notch-0314/heattech-backend/internal"
	"github.com/notch-0314/heattech-backend/internal/config"
)

func NewRepositories(cfg *config.Config, logger internal.Logger) (*Repositories, error) {
	switch cfg.DBType {
	case "postgres":
		s, err := NewPostgresStorage(cfg.DBDSN, logger)
		if err != nil {
			return nil, err
		}
		return &Repositories{Users: s, Master: s, Messages: s, Daily: s}, nil
	case "file":
		s, err := NewFileStorage(cfg.FileUsers, cfg.FileCopingMaster, cfg.FileCopingMessages, cfg.FileDailyMessages, logger)
		if err != nil {
			return nil, err
		}
		return &Repositories{Users: s, Master: s, Messages: s, Daily: s}, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.DBType)
	}
}
