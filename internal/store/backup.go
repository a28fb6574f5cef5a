package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/targihasta/fair-lottery/internal/model"
)

// Fixed product tag and document version checked on import.
const (
	SystemName    = "TARGI HASta"
	BackupVersion = "1.0"
)

// Snapshot is the portable backup document. It round-trips the whole
// system state: orders, exhibitor accounts and the admin credential.
type Snapshot struct {
	Timestamp  int64         `json:"timestamp"`
	Version    string        `json:"version"`
	SystemName string        `json:"systemName"`
	Data       *SnapshotData `json:"data"`
}

type SnapshotData struct {
	Orders        []model.Order            `json:"orders"`
	Exhibitors    []model.ExhibitorAccount `json:"exhibitors"`
	AdminPassword string                   `json:"adminPassword"`
}

// ExportSnapshot serializes the given state into a backup document
// stamped with the current time.
func ExportSnapshot(orders []model.Order, exhibitors []model.ExhibitorAccount, adminPass string) Snapshot {
	return Snapshot{
		Timestamp:  time.Now().UnixMilli(),
		Version:    BackupVersion,
		SystemName: SystemName,
		Data: &SnapshotData{
			Orders:        orders,
			Exhibitors:    exhibitors,
			AdminPassword: adminPass,
		},
	}
}

// ImportSnapshot validates a backup document and, on success, replaces
// all three durable slots wholesale. On any validation failure it
// returns ErrInvalidBackup and writes nothing; the import is
// all-or-nothing.
func (s *Store) ImportSnapshot(ctx context.Context, raw []byte) (*SnapshotData, error) {
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	if snap.SystemName != SystemName || snap.Data == nil {
		return nil, ErrInvalidBackup
	}
	data := snap.Data
	if data.Orders == nil {
		data.Orders = []model.Order{}
	}
	if data.Exhibitors == nil {
		data.Exhibitors = []model.ExhibitorAccount{}
	}
	if data.AdminPassword == "" {
		data.AdminPassword = DefaultAdminPassword
	}

	if err := s.SaveOrders(ctx, data.Orders); err != nil {
		return nil, fmt.Errorf("persist imported orders: %w", err)
	}
	if err := s.SaveExhibitors(ctx, data.Exhibitors); err != nil {
		return nil, fmt.Errorf("persist imported exhibitors: %w", err)
	}
	if err := s.SaveCredential(ctx, data.AdminPassword); err != nil {
		return nil, fmt.Errorf("persist imported credential: %w", err)
	}
	return data, nil
}

// BackupFilename builds the timestamped export filename, e.g.
// targi_hasta_backup_2026-08-30T14-05-07.json.
func BackupFilename(at time.Time) string {
	stamp := strings.ReplaceAll(at.UTC().Format("2006-01-02T15:04:05"), ":", "-")
	return fmt.Sprintf("targi_hasta_backup_%s.json", stamp)
}

// WriteBackupFile writes the snapshot as an indented JSON file under
// dir and returns the full path. The clear flow uses this as its
// mandatory pre-delete safety net.
func WriteBackupFile(dir string, snap Snapshot) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir backup dir: %w", err)
	}
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	path := filepath.Join(dir, BackupFilename(time.UnixMilli(snap.Timestamp)))
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", fmt.Errorf("write backup file: %w", err)
	}
	return path, nil
}
