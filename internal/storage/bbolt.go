package storage

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	ConfigBucket  = []byte("config")  // KDF params (salt, iterations), timestamps - unencrypted
	HistoryBucket = []byte("history") // received generation results
)

// Config keys
var (
	ConfigVersion = []byte("version")
	ConfigCreated = []byte("created")
	ConfigSalt    = []byte("salt")
	ConfigIters   = []byte("iterations")
)

var ErrRecordNotFound = errors.New("record not found")

// Record is one generation result received from the device. The transport
// ciphertext and header fields are stored as received; the derived password
// is stored only in sealed form (AES-256-GCM under the vault key).
type Record struct {
	ID             uint64    `json:"id"`
	Received       time.Time `json:"received"`
	Device         string    `json:"device,omitempty"`
	Length         int       `json:"length"`
	Complexity     int       `json:"complexity"`
	Ciphertext     string    `json:"ciphertext"`
	SealedPassword []byte    `json:"sealedPassword"`
}

// Storage provides the BBolt-backed history vault of the companion.
type Storage struct {
	db *bolt.DB
}

// Open opens or creates a history vault database.
func Open(path string) (*Storage, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close closes the database.
func (s *Storage) Close() error {
	return s.db.Close()
}

// Initialize creates the bucket structure for a new vault.
func (s *Storage) Initialize() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{ConfigBucket, HistoryBucket} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}

		config := tx.Bucket(ConfigBucket)
		if err := config.Put(ConfigVersion, []byte("1")); err != nil {
			return err
		}
		created, _ := time.Now().MarshalBinary()
		return config.Put(ConfigCreated, created)
	})
}

// IsInitialized checks if the database has been initialized.
func (s *Storage) IsInitialized() (bool, error) {
	var initialized bool
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config != nil && config.Get(ConfigVersion) != nil {
			initialized = true
		}
		return nil
	})
	return initialized, err
}

// SetSalt stores the KDF salt.
func (s *Storage) SetSalt(salt []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(ConfigBucket).Put(ConfigSalt, salt)
	})
}

// GetSalt retrieves the KDF salt.
func (s *Storage) GetSalt() ([]byte, error) {
	var salt []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		salt = config.Get(ConfigSalt)
		if salt == nil {
			return fmt.Errorf("salt not found")
		}
		// Make a copy since the slice is only valid during the transaction
		salt = append([]byte(nil), salt...)
		return nil
	})
	return salt, err
}

// SetIterations stores the KDF iterations.
func (s *Storage) SetIterations(iterations uint32) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		iters := make([]byte, 4)
		binary.BigEndian.PutUint32(iters, iterations)
		return tx.Bucket(ConfigBucket).Put(ConfigIters, iters)
	})
}

// GetIterations retrieves the KDF iterations.
func (s *Storage) GetIterations() (uint32, error) {
	var iterations uint32
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		iters := config.Get(ConfigIters)
		if iters == nil || len(iters) != 4 {
			return fmt.Errorf("iterations not found")
		}
		iterations = binary.BigEndian.Uint32(iters)
		return nil
	})
	return iterations, err
}

// AppendRecord stores a received result under the next history sequence
// number and returns its id.
func (s *Storage) AppendRecord(r Record) (uint64, error) {
	var id uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		history := tx.Bucket(HistoryBucket)
		if history == nil {
			return fmt.Errorf("history bucket not found")
		}
		seq, err := history.NextSequence()
		if err != nil {
			return err
		}
		id = seq
		r.ID = seq
		data, err := json.Marshal(r)
		if err != nil {
			return err
		}
		return history.Put(recordKey(seq), data)
	})
	return id, err
}

// GetRecord retrieves one record by id.
func (s *Storage) GetRecord(id uint64) (Record, error) {
	var r Record
	err := s.db.View(func(tx *bolt.Tx) error {
		history := tx.Bucket(HistoryBucket)
		if history == nil {
			return fmt.Errorf("history bucket not found")
		}
		data := history.Get(recordKey(id))
		if data == nil {
			return ErrRecordNotFound
		}
		return json.Unmarshal(data, &r)
	})
	return r, err
}

// Records returns all history records in arrival order.
func (s *Storage) Records() ([]Record, error) {
	var records []Record
	err := s.db.View(func(tx *bolt.Tx) error {
		history := tx.Bucket(HistoryBucket)
		if history == nil {
			return fmt.Errorf("history bucket not found")
		}
		return history.ForEach(func(_, data []byte) error {
			var r Record
			if err := json.Unmarshal(data, &r); err != nil {
				return err
			}
			records = append(records, r)
			return nil
		})
	})
	return records, err
}

func recordKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}
