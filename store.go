package ledger

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// Store persists the three record collections. Every Save replaces the
// collection wholesale; there is no row-level update. A missing collection
// loads as empty, never as an error.
type Store interface {
	LoadPurchases() ([]PurchaseRecord, error)
	LoadDeposits() ([]DepositRecord, error)
	LoadNotes() ([]DebitNote, error)
	SavePurchases([]PurchaseRecord) error
	SaveDeposits([]DepositRecord) error
	SaveNotes([]DebitNote) error
}

const (
	purchasesFile = "purchases.jsonl"
	depositsFile  = "deposits.jsonl"
	notesFile     = "notes.jsonl"
)

// FileStore keeps each collection in a JSONL file under a single directory.
type FileStore struct {
	dir string
}

// NewFileStore returns a store rooted at dir. The directory is created on
// first save, not here.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the directory the store writes into.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) LoadPurchases() ([]PurchaseRecord, error) {
	b, err := s.read(purchasesFile)
	if err != nil || b == nil {
		return nil, err
	}
	return DecodePurchases(bytes.NewReader(b))
}

func (s *FileStore) LoadDeposits() ([]DepositRecord, error) {
	b, err := s.read(depositsFile)
	if err != nil || b == nil {
		return nil, err
	}
	return DecodeDeposits(bytes.NewReader(b))
}

func (s *FileStore) LoadNotes() ([]DebitNote, error) {
	b, err := s.read(notesFile)
	if err != nil || b == nil {
		return nil, err
	}
	return DecodeNotes(bytes.NewReader(b))
}

func (s *FileStore) SavePurchases(rows []PurchaseRecord) error {
	var buf bytes.Buffer
	if err := EncodePurchases(&buf, rows); err != nil {
		return err
	}
	return s.write(purchasesFile, buf.Bytes())
}

func (s *FileStore) SaveDeposits(deposits []DepositRecord) error {
	var buf bytes.Buffer
	if err := EncodeDeposits(&buf, deposits); err != nil {
		return err
	}
	return s.write(depositsFile, buf.Bytes())
}

func (s *FileStore) SaveNotes(notes []DebitNote) error {
	var buf bytes.Buffer
	if err := EncodeNotes(&buf, notes); err != nil {
		return err
	}
	return s.write(notesFile, buf.Bytes())
}

// read returns the file contents, or (nil, nil) when the file does not
// exist yet.
func (s *FileStore) read(name string) ([]byte, error) {
	b, err := os.ReadFile(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", name, err)
	}
	return b, nil
}

// write replaces the file through a rename so a crash mid-save never leaves
// a truncated collection behind.
func (s *FileStore) write(name string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("cannot create store directory: %w", err)
	}
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("cannot write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("cannot replace %s: %w", name, err)
	}
	return nil
}
