package services

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/tesseract-hub/property-service/internal/config"
	"github.com/tesseract-hub/property-service/internal/models"
	"github.com/tesseract-hub/property-service/internal/repository"
	"github.com/tesseract-hub/property-service/internal/storage"
)

var fixedNow = time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	kv        *storage.MemoryStore
	repo      *repository.EntityRepository
	analytics *AnalyticsService
	logger    *logrus.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	kv := storage.NewMemoryStore()
	repo := repository.NewEntityRepository(kv, logger)
	require.NoError(t, repo.Load(context.Background()))

	svc := NewAnalyticsService(repo, kv, config.AnalyticsConfig{GrowthRate: 0.05, PerUnitCharge: 1200, LeaseWindow: 90}, logger)
	svc.SetClock(func() time.Time { return fixedNow })

	return &fixture{kv: kv, repo: repo, analytics: svc, logger: logger}
}

func (f *fixture) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.repo.CreateProperty(ctx, &models.Property{
		Name: "Maple Court", Type: models.PropertyTypeResidential, Units: 10, Occupied: 7, MonthlyRevenue: 12000, PurchasePrice: 1200000,
	}))
	require.NoError(t, f.repo.CreateTenant(ctx, &models.Tenant{
		Name: "Jane Roe", Property: "Maple Court", Unit: "1A", Rent: 1200, Balance: -200,
		LeaseEnd: fixedNow.AddDate(0, 0, 25), Status: models.TenantStatusCurrent,
	}))
	require.NoError(t, f.repo.CreateTransaction(ctx, &models.Transaction{
		Date: fixedNow, Description: "Rent - 1A", Type: models.TransactionIncome, Amount: 1200,
		Category: "Rent", Status: models.TransactionCompleted,
	}))
}

func decodeJSON(t *testing.T, raw string, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(raw), v))
}
