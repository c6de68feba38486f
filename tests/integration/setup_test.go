package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ferraith/portfolio/internal/handlers"
	"github.com/ferraith/portfolio/internal/logger"
	"github.com/ferraith/portfolio/internal/middleware"
	"github.com/ferraith/portfolio/internal/models"
	"github.com/ferraith/portfolio/internal/services"
	"github.com/ferraith/portfolio/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:flowdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.Portfolio{},
		&models.Asset{},
		&models.SharePrice{},
		&models.Investment{},
		&models.Transaction{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	portfolioService := services.NewPortfolioService(db)
	assetService := services.NewAssetService(db)
	sharePriceService := services.NewSharePriceService(db)
	investmentService := services.NewInvestmentService(db)
	transactionService := services.NewTransactionService(db)

	// Handlers
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	assetHandler := handlers.NewAssetHandler(assetService)
	sharePriceHandler := handlers.NewSharePriceHandler(sharePriceService)
	investmentHandler := handlers.NewInvestmentHandler(investmentService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	portfolios := v1.Group("/portfolios")
	portfolios.POST("", portfolioHandler.CreatePortfolio)
	portfolios.GET("", portfolioHandler.ListPortfolios)
	portfolios.GET("/:id", portfolioHandler.GetPortfolio)
	portfolios.PUT("/:id", portfolioHandler.RenamePortfolio)
	portfolios.DELETE("/:id", portfolioHandler.DeletePortfolio)
	portfolios.GET("/:id/investments", investmentHandler.ListPortfolioInvestments)

	assets := v1.Group("/assets")
	assets.POST("", assetHandler.CreateAsset)
	assets.GET("", assetHandler.ListAssets)
	assets.GET("/:id", assetHandler.GetAsset)
	assets.PUT("/:id", assetHandler.UpdateAsset)
	assets.DELETE("/:id", assetHandler.DeleteAsset)
	assets.POST("/:id/prices", sharePriceHandler.RecordPrice)
	assets.GET("/:id/prices", sharePriceHandler.ListAssetPrices)
	assets.GET("/:id/prices/latest", sharePriceHandler.LatestPrice)

	prices := v1.Group("/prices")
	prices.GET("/:id", sharePriceHandler.GetSharePrice)
	prices.DELETE("/:id", sharePriceHandler.DeleteSharePrice)

	investments := v1.Group("/investments")
	investments.POST("", investmentHandler.CreateInvestment)
	investments.GET("", investmentHandler.ListInvestments)
	investments.GET("/:id", investmentHandler.GetInvestment)
	investments.DELETE("/:id", investmentHandler.DeleteInvestment)
	investments.POST("/:id/transactions", transactionHandler.RecordTransaction)
	investments.GET("/:id/transactions", transactionHandler.ListInvestmentTransactions)

	transactions := v1.Group("/transactions")
	transactions.GET("/:id", transactionHandler.GetTransaction)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// assertErrorCode checks the error envelope carries the expected code.
func assertErrorCode(t *testing.T, result map[string]interface{}, expected string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object, got %v", result)
	}
	if errObj["code"] != expected {
		t.Errorf("expected error code %s, got %v", expected, errObj["code"])
	}
}

// createPortfolio creates a portfolio and returns its ID.
func (app *testApp) createPortfolio(t *testing.T, name string) string {
	t.Helper()
	rec := app.request("POST", "/api/v1/portfolios", fmt.Sprintf(`{"name":%q}`, name))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create portfolio failed: %d %s", rec.Code, rec.Body.String())
	}
	portfolio := parseJSON(t, rec)["portfolio"].(map[string]interface{})
	return portfolio["id"].(string)
}

// createStock creates a stock asset and returns its ID.
func (app *testApp) createStock(t *testing.T, name, isin string) string {
	t.Helper()
	body := fmt.Sprintf(`{"kind":"stock","name":%q,"isin":%q,"issuer":"Test Issuer","sector":"Technology"}`, name, isin)
	rec := app.request("POST", "/api/v1/assets", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create asset failed: %d %s", rec.Code, rec.Body.String())
	}
	asset := parseJSON(t, rec)["asset"].(map[string]interface{})
	return asset["id"].(string)
}

// recordPrice records a share price for an asset and returns the price ID.
func (app *testApp) recordPrice(t *testing.T, assetID, amount, currency, date string) string {
	t.Helper()
	body := fmt.Sprintf(`{"date":%q,"amount":%q,"currency":%q}`, date, amount, currency)
	rec := app.request("POST", "/api/v1/assets/"+assetID+"/prices", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("record price failed: %d %s", rec.Code, rec.Body.String())
	}
	price := parseJSON(t, rec)["share_price"].(map[string]interface{})
	return price["id"].(string)
}

// createInvestment links a portfolio and asset and returns the investment ID.
func (app *testApp) createInvestment(t *testing.T, portfolioID, assetID string) string {
	t.Helper()
	body := fmt.Sprintf(`{"portfolio_id":%q,"asset_id":%q}`, portfolioID, assetID)
	rec := app.request("POST", "/api/v1/investments", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create investment failed: %d %s", rec.Code, rec.Body.String())
	}
	investment := parseJSON(t, rec)["investment"].(map[string]interface{})
	return investment["id"].(string)
}
