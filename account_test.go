/*
Copyright 2025 Zeta Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package zeta

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"

	"github.com/zetafinance/zeta/internal/apierror"
	"github.com/zetafinance/zeta/internal/cache"
	"github.com/zetafinance/zeta/model"

	"github.com/zetafinance/zeta/config"

	"github.com/zetafinance/zeta/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func newTestDataSource(t *testing.T) (database.IDataSource, sqlmock.Sqlmock) {
	t.Helper()
	server := miniredis.RunT(t)
	config.MockConfig(&config.Configuration{Redis: config.RedisConfig{Dns: server.Addr()}})
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database Connection", err)
	}
	newCache, err := cache.NewCache()
	if err != nil {
		t.Fatalf("an error '%s' was not expected", err)
	}
	return &database.Datasource{Conn: db, Cache: newCache}, mock
}

func accountRows(balance, currency string, isActive bool, version int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"account_id", "account_number", "account_name", "balance", "currency", "is_active", "version", "created_at", "updated_at"}).
		AddRow("acc_1", "1234567890", "Test Account", balance, currency, isActive, version, time.Now(), time.Now())
}

func TestCreateAccount(t *testing.T) {
	datasource, mock := newTestDataSource(t)

	d, err := NewZeta(datasource)
	if err != nil {
		t.Fatalf("Error creating Zeta instance: %s", err)
	}

	account := &model.Account{
		AccountNumber: gofakeit.AchAccount(),
		AccountName:   gofakeit.Name(),
		Balance:       decimal.NewFromFloat(100.50),
		Currency:      "USD",
	}

	// Set expectations on mock
	mock.ExpectExec("INSERT INTO zeta.accounts").
		WithArgs(sqlmock.AnyArg(), account.AccountNumber, account.AccountName, account.Balance.String(), account.Currency, true, 1, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	// Execute the test function
	result, err := d.CreateAccount(context.Background(), account)
	// Assertions
	assert.NoError(t, err)
	assert.NotEmpty(t, result.AccountID)
	assert.Contains(t, result.AccountID, "acc_")
	assert.True(t, result.IsActive)
	assert.WithinDuration(t, time.Now(), result.CreatedAt, time.Second)

	// Check if all expectations were met
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestCreateAccount_UnsupportedCurrency(t *testing.T) {
	datasource, _ := newTestDataSource(t)

	d, err := NewZeta(datasource)
	if err != nil {
		t.Fatalf("Error creating Zeta instance: %s", err)
	}

	account := &model.Account{
		AccountNumber: "1234567890",
		AccountName:   "Test Account",
		Currency:      "XXX",
	}

	_, err = d.CreateAccount(context.Background(), account)
	assert.Error(t, err)
	apiErr, ok := err.(apierror.APIError)
	assert.True(t, ok)
	assert.Equal(t, apierror.ErrInvalidInput, apiErr.Code)
	assert.Equal(t, "Currency 'XXX' is not supported", apiErr.Message)
}

func TestCreateAccount_NegativeOpeningBalance(t *testing.T) {
	datasource, _ := newTestDataSource(t)

	d, err := NewZeta(datasource)
	if err != nil {
		t.Fatalf("Error creating Zeta instance: %s", err)
	}

	account := &model.Account{
		AccountNumber: "1234567890",
		AccountName:   "Test Account",
		Balance:       decimal.NewFromInt(-10),
		Currency:      "USD",
	}

	_, err = d.CreateAccount(context.Background(), account)
	assert.Error(t, err)
	apiErr, ok := err.(apierror.APIError)
	assert.True(t, ok)
	assert.Equal(t, apierror.ErrInvalidInput, apiErr.Code)
	assert.Equal(t, "Opening balance cannot be negative", apiErr.Message)
}

func TestGetAccount(t *testing.T) {
	datasource, mock := newTestDataSource(t)

	d, err := NewZeta(datasource)
	if err != nil {
		t.Fatalf("Error creating Zeta instance: %s", err)
	}

	mock.ExpectQuery("SELECT account_id, account_number, account_name, balance").
		WithArgs("acc_1").
		WillReturnRows(accountRows("1000.00", "USD", true, 2))

	account, err := d.GetAccount(context.Background(), "acc_1")
	assert.NoError(t, err)
	assert.Equal(t, "acc_1", account.AccountID)
	assert.Equal(t, "Test Account", account.AccountName)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, int64(2), account.Version)
}

func TestGetAccountByNumber(t *testing.T) {
	datasource, mock := newTestDataSource(t)

	d, err := NewZeta(datasource)
	if err != nil {
		t.Fatalf("Error creating Zeta instance: %s", err)
	}

	mock.ExpectQuery("SELECT account_id, account_number, account_name, balance").
		WithArgs("1234567890").
		WillReturnRows(accountRows("250.00", "EUR", true, 1))

	account, err := d.GetAccountByNumber(context.Background(), "1234567890")
	assert.NoError(t, err)
	assert.Equal(t, "1234567890", account.AccountNumber)
	assert.Equal(t, "EUR", account.Currency)
}

func TestGetAllAccounts(t *testing.T) {
	datasource, mock := newTestDataSource(t)

	d, err := NewZeta(datasource)
	if err != nil {
		t.Fatalf("Error creating Zeta instance: %s", err)
	}

	rows := sqlmock.NewRows([]string{"account_id", "account_number", "account_name", "balance", "currency", "is_active", "version", "created_at", "updated_at"}).
		AddRow("acc_1", "1234567890", "Test Account 1", "1000.00", "USD", true, 1, time.Now(), time.Now()).
		AddRow("acc_2", "0987654321", "Test Account 2", "50.00", "USD", true, 4, time.Now(), time.Now())

	mock.ExpectQuery("SELECT account_id, account_number, account_name, balance").
		WithArgs(50, 0).
		WillReturnRows(rows)

	accounts, err := d.GetAllAccounts(context.Background(), 50, 0)
	assert.NoError(t, err)
	assert.Len(t, accounts, 2)
	assert.Equal(t, "acc_1", accounts[0].AccountID)
	assert.Equal(t, "acc_2", accounts[1].AccountID)
}

func TestUpdateAccount(t *testing.T) {
	datasource, mock := newTestDataSource(t)

	d, err := NewZeta(datasource)
	if err != nil {
		t.Fatalf("Error creating Zeta instance: %s", err)
	}

	mock.ExpectQuery("SELECT account_id, account_number, account_name, balance").
		WithArgs("acc_1").
		WillReturnRows(accountRows("1000.00", "USD", true, 2))

	newName := "Renamed Account"
	mock.ExpectExec("UPDATE zeta.accounts").
		WithArgs("acc_1", newName, true, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	account, err := d.UpdateAccount(context.Background(), "acc_1", &newName, nil)
	assert.NoError(t, err)
	assert.Equal(t, newName, account.AccountName)
	assert.True(t, account.IsActive)
	assert.Equal(t, int64(3), account.Version)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestUpdateAccount_Deactivate(t *testing.T) {
	datasource, mock := newTestDataSource(t)

	d, err := NewZeta(datasource)
	if err != nil {
		t.Fatalf("Error creating Zeta instance: %s", err)
	}

	mock.ExpectQuery("SELECT account_id, account_number, account_name, balance").
		WithArgs("acc_1").
		WillReturnRows(accountRows("1000.00", "USD", true, 1))

	inactive := false
	mock.ExpectExec("UPDATE zeta.accounts").
		WithArgs("acc_1", "Test Account", false, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	account, err := d.UpdateAccount(context.Background(), "acc_1", nil, &inactive)
	assert.NoError(t, err)
	assert.False(t, account.IsActive)
	assert.Equal(t, "Test Account", account.AccountName)
}

func TestUpdateAccount_NotFound(t *testing.T) {
	datasource, mock := newTestDataSource(t)

	d, err := NewZeta(datasource)
	if err != nil {
		t.Fatalf("Error creating Zeta instance: %s", err)
	}

	mock.ExpectQuery("SELECT account_id, account_number, account_name, balance").
		WithArgs("acc_missing").
		WillReturnError(sql.ErrNoRows)

	newName := "Renamed Account"
	_, err = d.UpdateAccount(context.Background(), "acc_missing", &newName, nil)
	assert.Error(t, err)
	apiErr, ok := err.(apierror.APIError)
	assert.True(t, ok)
	assert.Equal(t, apierror.ErrNotFound, apiErr.Code)
}

func TestGetBalance(t *testing.T) {
	datasource, mock := newTestDataSource(t)

	d, err := NewZeta(datasource)
	if err != nil {
		t.Fatalf("Error creating Zeta instance: %s", err)
	}

	mock.ExpectQuery("SELECT account_id, account_number, account_name, balance").
		WithArgs("acc_1").
		WillReturnRows(accountRows("745.25", "USD", true, 9))

	snapshot, err := d.GetBalance(context.Background(), "acc_1")
	assert.NoError(t, err)
	assert.Equal(t, "acc_1", snapshot.AccountID)
	assert.Equal(t, "1234567890", snapshot.AccountNumber)
	assert.True(t, snapshot.Balance.Equal(decimal.NewFromFloat(745.25)))
	assert.Equal(t, "USD", snapshot.Currency)
}
