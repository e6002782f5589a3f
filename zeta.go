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
	"embed"

	"github.com/zetafinance/zeta/config"
	"github.com/zetafinance/zeta/database"
	keylock "github.com/zetafinance/zeta/internal/lock"
)

// Zeta represents the main struct for the Zeta ledger application.
type Zeta struct {
	datasource database.IDataSource
	locks      *keylock.Registry
	retry      config.RetryConfig
}

//go:embed sql/*.sql
var SQLFiles embed.FS

// NewZeta initializes a new instance of Zeta with the provided database datasource.
// It fetches the configuration and sets up the per-account lock registry the
// transaction executor serializes on.
//
// Parameters:
// - db database.IDataSource: The datasource for database operations.
//
// Returns:
// - *Zeta: A pointer to the newly created Zeta instance.
// - error: An error if any of the initialization steps fail.
func NewZeta(db database.IDataSource) (*Zeta, error) {
	configuration, err := config.Fetch()
	if err != nil {
		return nil, err
	}
	newZeta := &Zeta{datasource: db, locks: keylock.NewRegistry(), retry: configuration.Retry}
	return newZeta, nil
}
