package host

import (
	"encoding/json"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/scxmlgo/scxml/core"
)

// AuditRecord is one entry in an AuditLog: an event delivered to a
// chart and the configuration it produced.
type AuditRecord struct {
	Time          time.Time  `json:"time"`
	ChartId       string     `json:"chartId"`
	Event         core.Event `json:"event"`
	Configuration []string   `json:"configuration"`
	Phase         string     `json:"phase"`
}

// AuditLog is a write-only, append-only record of every event a Fleet
// processes, one bbolt bucket per chart keyed by an incrementing
// sequence number.
//
// Grounded on sheens's own mservice bolt storage (cmd/mservice/storage/bolt):
// one bucket per crew/chart id, opened with a connection timeout, with
// reads and writes each wrapped in their own transaction. That file
// imports the older github.com/boltdb/bolt though its module's go.mod
// lists go.etcd.io/bbolt; this uses the real bbolt API, which is
// source-compatible with the teacher's usage.
type AuditLog struct {
	filename string
	db       *bolt.DB
}

// OpenAuditLog opens (creating if necessary) a bbolt database at
// filename for use as an AuditLog.
func OpenAuditLog(filename string) (*AuditLog, error) {
	db, err := bolt.Open(filename, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	return &AuditLog{filename: filename, db: db}, nil
}

// Close closes the underlying database.
func (a *AuditLog) Close() error {
	return a.db.Close()
}

// Record appends rec to chartId's bucket.
func (a *AuditLog) Record(rec AuditRecord) error {
	js, err := json.Marshal(&rec)
	if err != nil {
		return err
	}
	return a.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(rec.ChartId))
		if err != nil {
			return err
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(seqKey(seq), js)
	})
}

// History returns every AuditRecord stored for chartId, in the order
// they were recorded.
func (a *AuditLog) History(chartId string) ([]AuditRecord, error) {
	var recs []AuditRecord
	err := a.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(chartId))
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, v []byte) error {
			var rec AuditRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			recs = append(recs, rec)
			return nil
		})
	})
	return recs, err
}

func seqKey(seq uint64) []byte {
	key := make([]byte, 8)
	for i := 7; 0 <= i; i-- {
		key[i] = byte(seq)
		seq >>= 8
	}
	return key
}

// RecordSend builds an AuditRecord from the result of a Chart.Send
// call and appends it under chartId.
func (a *AuditLog) RecordSend(chartId string, ev core.Event, sc *core.StateChart) error {
	return a.Record(AuditRecord{
		Time:          time.Now().UTC(),
		ChartId:       chartId,
		Event:         ev,
		Configuration: core.ActiveLeaves(sc),
		Phase:         sc.Phase.String(),
	})
}
