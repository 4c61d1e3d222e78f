// Package shearwater reads Shearwater Cloud database exports. Only the
// summary tables are touched; per-sample logs stay on disk.
package shearwater

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/olsenj65/arrowcrab/internal/dive"
	"github.com/olsenj65/arrowcrab/internal/util"
	_ "modernc.org/sqlite" // SQLite driver
)

// Reader wraps an opened Shearwater Cloud export.
type Reader struct {
	db *sql.DB
}

// Open opens a Shearwater Cloud .db export read-only. The file must
// already exist; this package never creates or modifies databases.
func Open(path string) (*Reader, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("database %s: %w", path, util.ErrNotFound)
	}

	dsn := fmt.Sprintf("file:%s?mode=ro&_timeout=5000", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	// sql.Open is lazy; probe the schema now so a non-Shearwater file
	// fails here instead of mid-import.
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'dive_details'").Scan(&n); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	if n == 0 {
		db.Close()
		return nil, fmt.Errorf("%s is not a Shearwater export: %w", path, util.ErrCorrupt)
	}

	return &Reader{db: db}, nil
}

// Close closes the database connection
func (r *Reader) Close() error {
	return r.db.Close()
}

// Records reads every dive row in chronological order. Columns that are
// NULL in the export come back as zero values; the normalizer handles
// the rest of the degradation.
func (r *Reader) Records() ([]dive.RawRecord, error) {
	rows, err := r.db.Query(`
		SELECT
			d.DiveNumber,
			d.DiveDate,
			d.Location,
			d.Site,
			d.Depth,
			d.DiveLengthTime,
			d.TankProfileData,
			l.calculated_values_from_samples
		FROM dive_details d
		LEFT JOIN log_data l ON d.DiveId = l.log_id
		ORDER BY d.DiveDate`)
	if err != nil {
		return nil, fmt.Errorf("failed to query dives: %w", err)
	}
	defer rows.Close()

	records := make([]dive.RawRecord, 0)
	for rows.Next() {
		var (
			number    sql.NullInt64
			timestamp sql.NullString
			location  sql.NullString
			site      sql.NullString
			depth     sql.NullFloat64
			duration  sql.NullInt64
			tankJSON  sql.NullString
			calcJSON  sql.NullString
		)
		if err := rows.Scan(&number, &timestamp, &location, &site, &depth, &duration, &tankJSON, &calcJSON); err != nil {
			return nil, fmt.Errorf("failed to scan dive row: %w", err)
		}

		records = append(records, dive.RawRecord{
			Number:      int(number.Int64),
			Timestamp:   timestamp.String,
			Location:    location.String,
			Site:        site.String,
			DepthM:      depth.Float64,
			DurationSec: int(duration.Int64),
			TankJSON:    tankJSON.String,
			CalcJSON:    calcJSON.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate dives: %w", err)
	}

	if len(records) == 0 {
		return nil, util.ErrNoDives
	}

	util.DebugLog("Read %d dive records", len(records))
	return records, nil
}

// Computer reads the dive computer identity from the export. Exports
// written without a paired computer lack the table; that degrades to an
// Unknown serial rather than failing the import.
func (r *Reader) Computer() dive.ComputerInfo {
	var serial, firmware sql.NullString
	err := r.db.QueryRow(`
		SELECT SerialNumber, Firmware
		FROM StoredDiveComputer
		LIMIT 1`).Scan(&serial, &firmware)
	if err != nil || !serial.Valid || serial.String == "" {
		util.DebugLog("No dive computer record: %v", err)
		return dive.ComputerInfo{Serial: "Unknown"}
	}
	return dive.ComputerInfo{Serial: serial.String, Firmware: firmware.String}
}
