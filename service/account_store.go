package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/go-http-server/consolebank/serializer"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type AccountStore interface {
	// Load returns every persisted account. A missing store yields an empty collection.
	Load() ([]*Account, error)

	// Save replaces the persisted collection with accounts.
	Save(accounts []*Account) error
}

// accountRecord is the on-disk shape of an account. Pin is only read, for files
// written before PINs were hashed.
type accountRecord struct {
	AccountName   string      `json:"accountName"`
	AccountNumber int64       `json:"accountNumber"`
	Pin           *int        `json:"pin,omitempty"`
	PinHash       string      `json:"pinHash,omitempty"`
	Funds         json.Number `json:"funds"`
	Transactions  []string    `json:"transactions"`
}

// FileAccountStore keeps the whole account collection in a single JSON file.
type FileAccountStore struct {
	path    string
	pinCost int
	now     func() time.Time
}

// NewFileAccountStore creates a store backed by path. pinCost is the bcrypt
// cost used when migrating legacy plaintext PINs.
func NewFileAccountStore(path string, pinCost int) *FileAccountStore {
	return &FileAccountStore{path: path, pinCost: pinCost, now: time.Now}
}

// Path returns the file backing the store.
func (store *FileAccountStore) Path() string {
	return store.path
}

func (store *FileAccountStore) Load() ([]*Account, error) {
	var records []accountRecord
	err := serializer.ReadJSONFromFile(store.path, &records)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return []*Account{}, nil
	case errors.Is(err, serializer.ErrMalformedJSON):
		return nil, fmt.Errorf("%w: %s: %s", ErrCorruptStore, store.path, err)
	case err != nil:
		return nil, fmt.Errorf("cannot read accounts from %s: %w", store.path, err)
	}

	accounts := make([]*Account, 0, len(records))
	for i, record := range records {
		account, err := store.fromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: record %d: %s", ErrCorruptStore, store.path, i, err)
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

func (store *FileAccountStore) Save(accounts []*Account) error {
	records := make([]accountRecord, 0, len(accounts))
	for _, account := range accounts {
		records = append(records, toRecord(account))
	}

	if err := serializer.WriteJSONToFile(records, store.path); err != nil {
		return fmt.Errorf("cannot save accounts to %s: %w", store.path, err)
	}
	return nil
}

// Quarantine moves an unreadable store file aside so the next Save does not
// overwrite it, and returns the new location.
func (store *FileAccountStore) Quarantine() (string, error) {
	target := fmt.Sprintf("%s.corrupt-%d", store.path, store.now().Unix())
	if err := os.Rename(store.path, target); err != nil {
		return "", err
	}
	return target, nil
}

func (store *FileAccountStore) fromRecord(record accountRecord) (*Account, error) {
	funds := decimal.Zero
	if record.Funds != "" {
		var err error
		funds, err = decimal.NewFromString(record.Funds.String())
		if err != nil {
			return nil, fmt.Errorf("invalid funds %q", record.Funds)
		}
	}

	hashed := record.PinHash
	if hashed == "" {
		if record.Pin == nil {
			return nil, errors.New("account has no pin")
		}
		cost := store.pinCost
		if cost == 0 {
			cost = bcrypt.DefaultCost
		}
		var err error
		hashed, err = HashPIN(FormatPIN(*record.Pin), cost)
		if err != nil {
			return nil, err
		}
	}

	return &Account{
		Name:         record.AccountName,
		Number:       record.AccountNumber,
		HashedPIN:    hashed,
		Funds:        funds,
		Transactions: append([]string{}, record.Transactions...),
	}, nil
}

func toRecord(account *Account) accountRecord {
	return accountRecord{
		AccountName:   account.Name,
		AccountNumber: account.Number,
		PinHash:       account.HashedPIN,
		Funds:         json.Number(account.Funds.String()),
		Transactions:  append([]string{}, account.Transactions...),
	}
}
