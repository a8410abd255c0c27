package service_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-http-server/consolebank/sample"
	"github.com/go-http-server/consolebank/service"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newSampleAccount(t *testing.T, number int64) *service.Account {
	t.Helper()
	account, err := service.NewAccount(sample.NewAccountName(), number, "1234", bcrypt.MinCost)
	require.NoError(t, err)
	account.Funds = sample.NewAmount(1, 500)
	account.Transactions = append(account.Transactions, "Deposit of "+account.Funds.String()+" at "+time.Now().Format(service.TimestampLayout))
	return account
}

func TestFileAccountStoreMissingFile(t *testing.T) {
	store := service.NewFileAccountStore(filepath.Join(t.TempDir(), "userData.json"), bcrypt.MinCost)

	accounts, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, accounts)
	require.Empty(t, accounts)
}

func TestFileAccountStoreRoundTrip(t *testing.T) {
	store := service.NewFileAccountStore(filepath.Join(t.TempDir(), "userData.json"), bcrypt.MinCost)
	saved := []*service.Account{newSampleAccount(t, 1), newSampleAccount(t, 2)}

	require.NoError(t, store.Save(saved))
	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	for i := range saved {
		require.Equal(t, saved[i].Name, loaded[i].Name)
		require.Equal(t, saved[i].Number, loaded[i].Number)
		require.Equal(t, saved[i].HashedPIN, loaded[i].HashedPIN)
		require.True(t, saved[i].Funds.Equal(loaded[i].Funds))
		require.Equal(t, saved[i].Transactions, loaded[i].Transactions)
	}

	// save(load()) followed by load() is stable
	require.NoError(t, store.Save(loaded))
	reloaded, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, loaded, reloaded)
}

func TestFileAccountStoreFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "userData.json")
	store := service.NewFileAccountStore(path, bcrypt.MinCost)
	account, err := service.NewAccount("Alice", 42, "7", bcrypt.MinCost)
	require.NoError(t, err)

	require.NoError(t, store.Save([]*service.Account{account}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	require.Contains(t, content, `"accountName": "Alice"`)
	require.Contains(t, content, `"accountNumber": 42`)
	require.Contains(t, content, `"funds": 0`)
	require.Contains(t, content, `"transactions": []`)
	require.Contains(t, content, `"pinHash": "$2a$`)
	require.NotContains(t, content, `"pin":`)
}

func TestFileAccountStoreLegacyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "userData.json")
	legacy := `[{"accountName":"Alice","accountNumber":123456789,"pin":42,"funds":100.5,"transactions":["Deposit of 100.5 at 10/19/2026, 2:03:00 PM"]},` +
		`{"accountName":"Bob","accountNumber":987654321,"pin":9999,"funds":0,"transactions":[]}]`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o600))
	store := service.NewFileAccountStore(path, bcrypt.MinCost)

	accounts, err := store.Load()
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	alice := accounts[0]
	require.Equal(t, "Alice", alice.Name)
	require.Equal(t, int64(123456789), alice.Number)
	require.Equal(t, "100.5", alice.Funds.String())
	require.Len(t, alice.Transactions, 1)
	require.NoError(t, alice.IsCorrectPIN("42"))
	require.NoError(t, alice.IsCorrectPIN("0042"))
	require.ErrorIs(t, alice.IsCorrectPIN("43"), service.ErrIncorrectPIN)
	require.NoError(t, accounts[1].IsCorrectPIN("9999"))

	// the plaintext pin disappears on the next save
	require.NoError(t, store.Save(accounts))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(data), `"pin":`)
}

func TestFileAccountStoreCorruptFile(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{"not json", "{not json"},
		{"wrong shape", `{"accountName":"Alice"}`},
		{"missing pin", `[{"accountName":"Alice","accountNumber":1,"funds":0,"transactions":[]}]`},
		{"bad funds", `[{"accountName":"Alice","accountNumber":1,"pin":1,"funds":"lots","transactions":[]}]`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "userData.json")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o600))
			store := service.NewFileAccountStore(path, bcrypt.MinCost)

			_, err := store.Load()
			require.ErrorIs(t, err, service.ErrCorruptStore)
		})
	}
}

func TestFileAccountStoreUnreadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "userData.json")
	require.NoError(t, os.Mkdir(path, 0o700))
	store := service.NewFileAccountStore(path, bcrypt.MinCost)

	// a read failure says nothing about the content, so it is not corruption
	_, err := store.Load()
	require.Error(t, err)
	require.NotErrorIs(t, err, service.ErrCorruptStore)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestFileAccountStoreQuarantine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "userData.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))
	store := service.NewFileAccountStore(path, bcrypt.MinCost)

	moved, err := store.Quarantine()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(moved, path+".corrupt-"))

	data, err := os.ReadFile(moved)
	require.NoError(t, err)
	require.Equal(t, "garbage", string(data))

	accounts, err := store.Load()
	require.NoError(t, err)
	require.Empty(t, accounts)
}
