package api

import (
	"errors"
	"net/http"
	"strconv"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/zetafinance/zeta/config"
	"github.com/zetafinance/zeta/internal/apierror"

	"github.com/zetafinance/zeta/api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/zetafinance/zeta"
)

type Api struct {
	zeta   *zeta.Zeta
	router *gin.Engine
}

func (a Api) Router() *gin.Engine {
	router := a.router
	v1 := router.Group("/api/v1")

	v1.POST("/accounts", a.CreateAccount)
	v1.GET("/accounts", a.GetAllAccounts)
	v1.GET("/accounts/:id", a.GetAccount)
	v1.PUT("/accounts/:id", a.UpdateAccount)
	v1.GET("/accounts/:id/balance", a.GetBalance)
	v1.GET("/accounts/:id/transactions", a.GetAccountTransactions)

	v1.POST("/transactions/debit", a.Debit)
	v1.POST("/transactions/credit", a.Credit)
	v1.GET("/transactions/:id", a.GetTransaction)

	return a.router
}

func NewAPI(z *zeta.Zeta) *Api {
	gin.SetMode(gin.ReleaseMode)
	conf, err := config.Fetch()
	if err != nil {
		return nil
	}
	r := gin.Default()

	// Health sits ahead of the middleware chain so probes need no key.
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	r.Use(otelgin.Middleware(conf.ProjectName))
	r.Use(middleware.RateLimitMiddleware(conf))
	if conf.Server.Secure {
		r.Use(middleware.SecretKeyAuthMiddleware())
	}

	return &Api{zeta: z, router: r}
}

// errorResponse renders a service error with the status its code maps to.
// Errors from outside the service layer fall through as 500s.
func errorResponse(c *gin.Context, err error) {
	var apiErr apierror.APIError
	if errors.As(err, &apiErr) {
		c.JSON(apierror.MapErrorToHTTPStatus(err), gin.H{"error": apiErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// pageParams reads the limit and offset query parameters, falling back to
// defaultLimit and zero on anything unusable.
func pageParams(c *gin.Context, defaultLimit int) (int, int64) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.ParseInt(c.DefaultQuery("offset", "0"), 10, 64)
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
