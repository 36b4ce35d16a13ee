// Package storage provides optional persistent history of rendered
// predictions. It uses BoltDB as the underlying storage engine.
//
// Records are keyed by sport and timestamp so a time-range query for one
// sport is a single cursor scan.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"sportiq/internal/predict"
)

const predictionsBucket = "predictions"

// maxBlockIndex is the largest block index the key format sorts correctly.
const maxBlockIndex = 999999

// PredictionRecord is one persisted display block.
type PredictionRecord struct {
	RunID    string    `json:"run_id"`
	Sport    string    `json:"sport"`
	Index    int       `json:"index"`
	HomeTeam string    `json:"home_team"`
	AwayTeam string    `json:"away_team"`
	Label    string    `json:"label"`
	HomeOdds float64   `json:"home_odds"`
	AwayOdds float64   `json:"away_odds"`
	Ts       time.Time `json:"ts"`
}

// Store provides persistent storage for prediction history using BoltDB.
type Store struct {
	db *bbolt.DB
}

// New opens (or creates) sportiq-history.db under dataPath.
func New(dataPath string) (*Store, error) {
	dbPath := filepath.Join(dataPath, "sportiq-history.db")

	db, err := bbolt.Open(dbPath, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(predictionsBucket)); err != nil {
			return fmt.Errorf("create predictions bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database. It is safe to call more than once.
func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func recordKey(sport string, ts time.Time, index int) []byte {
	return []byte(fmt.Sprintf("%s_%019d_%06d", sport, ts.UnixNano(), index))
}

// StorePrediction stores a single record.
func (s *Store) StorePrediction(rec PredictionRecord) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return putRecord(tx.Bucket([]byte(predictionsBucket)), rec)
	})
}

// StoreOutcome stores every block of a run in one transaction.
func (s *Store) StoreOutcome(runID string, sport string, blocks []predict.DisplayBlock, at time.Time) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(predictionsBucket))
		for i, blk := range blocks {
			rec := PredictionRecord{
				RunID:    runID,
				Sport:    sport,
				Index:    i,
				HomeTeam: blk.HomeTeam,
				AwayTeam: blk.AwayTeam,
				Label:    string(blk.Label),
				HomeOdds: blk.HomeOdds,
				AwayOdds: blk.AwayOdds,
				Ts:       at,
			}
			if err := putRecord(b, rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func putRecord(b *bbolt.Bucket, rec PredictionRecord) error {
	if rec.Index < 0 || rec.Index > maxBlockIndex {
		return fmt.Errorf("block index %d out of range", rec.Index)
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal prediction: %w", err)
	}
	return b.Put(recordKey(rec.Sport, rec.Ts, rec.Index), data)
}

// GetPredictions returns records for sport with start <= ts <= end, oldest
// first. Malformed records are skipped.
func (s *Store) GetPredictions(sport string, start, end time.Time) ([]PredictionRecord, error) {
	var records []PredictionRecord

	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket([]byte(predictionsBucket)).Cursor()

		prefix := []byte(sport + "_")
		startKey := recordKey(sport, start, 0)
		endKey := recordKey(sport, end, maxBlockIndex)

		for k, v := c.Seek(startKey); k != nil && bytes.Compare(k, endKey) <= 0; k, v = c.Next() {
			if !bytes.HasPrefix(k, prefix) {
				continue
			}

			var rec PredictionRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				continue
			}
			records = append(records, rec)
		}
		return nil
	})

	return records, err
}
