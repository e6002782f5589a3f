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
package api

import (
	"net/http"

	model2 "github.com/zetafinance/zeta/api/model"

	"github.com/gin-gonic/gin"
)

// Debit handles the withdrawal of funds from an account.
// It binds the incoming JSON request to a CreateTransaction object, validates it,
// and then applies the debit. If any errors occur during validation or posting,
// it responds with an appropriate error message.
//
// Parameters:
// - c: The Gin context containing the request and response.
//
// Responses:
// - 400 Bad Request: If there's an error in binding JSON or validating the transaction.
// - 201 Created: If the debit is successfully applied.
func (a Api) Debit(c *gin.Context) {
	var newTransaction model2.CreateTransaction
	// Bind the incoming JSON request to the newTransaction model
	if err := c.ShouldBindJSON(&newTransaction); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Validate the transaction data
	err := newTransaction.ValidateCreateTransaction()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	// Apply the debit through the ledger service
	resp, err := a.zeta.Debit(c.Request.Context(), newTransaction.ToTransaction())
	if err != nil {
		errorResponse(c, err)
		return
	}

	// Return a response with the completed transaction
	c.JSON(http.StatusCreated, resp)
}

// Credit handles the deposit of funds into an account.
// It binds the incoming JSON request to a CreateTransaction object, validates it,
// and then applies the credit. If any errors occur during validation or posting,
// it responds with an appropriate error message.
//
// Parameters:
// - c: The Gin context containing the request and response.
//
// Responses:
// - 400 Bad Request: If there's an error in binding JSON or validating the transaction.
// - 201 Created: If the credit is successfully applied.
func (a Api) Credit(c *gin.Context) {
	var newTransaction model2.CreateTransaction
	// Bind the incoming JSON request to the newTransaction model
	if err := c.ShouldBindJSON(&newTransaction); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Validate the transaction data
	err := newTransaction.ValidateCreateTransaction()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	// Apply the credit through the ledger service
	resp, err := a.zeta.Credit(c.Request.Context(), newTransaction.ToTransaction())
	if err != nil {
		errorResponse(c, err)
		return
	}

	// Return a response with the completed transaction
	c.JSON(http.StatusCreated, resp)
}

// GetTransaction retrieves a transaction by its ID.
// It returns the transaction details if found. If the ID is not provided or an error
// occurs while retrieving the transaction, it responds with an appropriate error message.
//
// Parameters:
// - c: The Gin context containing the request and response.
//
// Responses:
// - 404 Not Found: If no transaction carries the given ID.
// - 200 OK: If the transaction is successfully retrieved.
func (a Api) GetTransaction(c *gin.Context) {
	id, passed := c.Params.Get("id")

	if !passed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required. pass id in the route /:id"})
		return
	}

	resp, err := a.zeta.GetTransaction(c.Request.Context(), id)
	if err != nil {
		errorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
