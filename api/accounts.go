package api

import (
	"net/http"

	model2 "github.com/zetafinance/zeta/api/model"

	"github.com/gin-gonic/gin"
)

func (a Api) CreateAccount(c *gin.Context) {
	var newAccount model2.CreateAccount
	if err := c.ShouldBindJSON(&newAccount); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := newAccount.ValidateCreateAccount()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	resp, err := a.zeta.CreateAccount(c.Request.Context(), newAccount.ToAccount())
	if err != nil {
		errorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (a Api) GetAccount(c *gin.Context) {
	id := c.Param("id")

	account, err := a.zeta.GetAccount(c.Request.Context(), id)
	if err != nil {
		errorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (a Api) UpdateAccount(c *gin.Context) {
	id := c.Param("id")
	var patch model2.UpdateAccount
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := patch.ValidateUpdateAccount()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	account, err := a.zeta.UpdateAccount(c.Request.Context(), id, patch.AccountName, patch.IsActive)
	if err != nil {
		errorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (a Api) GetAllAccounts(c *gin.Context) {
	limit, offset := pageParams(c, 50)
	accounts, err := a.zeta.GetAllAccounts(c.Request.Context(), limit, int(offset))
	if err != nil {
		errorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

func (a Api) GetBalance(c *gin.Context) {
	id := c.Param("id")

	balance, err := a.zeta.GetBalance(c.Request.Context(), id)
	if err != nil {
		errorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, balance)
}

func (a Api) GetAccountTransactions(c *gin.Context) {
	id := c.Param("id")

	limit, offset := pageParams(c, 20)
	entries, err := a.zeta.GetLedgerEntries(c.Request.Context(), id, limit, offset)
	if err != nil {
		errorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
