package router_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/auth"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/config"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/domain"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/handler"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/router"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/mocks"
)

var jwtCfg = config.JWTConfig{Secret: "router-secret"}

type fixture struct {
	engine   *gin.Engine
	docs     *mocks.MockDocumentService
	payments *mocks.MockPaymentService
	seqs     *mocks.MockSequenceService
}

func setup() *fixture {
	gin.SetMode(gin.TestMode)
	log := logrus.New()
	log.SetOutput(io.Discard)

	f := &fixture{
		docs:     new(mocks.MockDocumentService),
		payments: new(mocks.MockPaymentService),
		seqs:     new(mocks.MockSequenceService),
	}
	f.engine = router.Setup(
		log,
		auth.NewVerifier(jwtCfg),
		[]string{"http://localhost:3000"},
		handler.NewDocumentHandler(f.docs, new(mocks.MockReportService), log),
		handler.NewPaymentHandler(f.payments, log),
		handler.NewSequenceHandler(f.seqs, log),
		handler.NewTaxHandler(),
		handler.NewHealthHandler(nil),
	)
	return f
}

func bearer(t *testing.T, tenantID uuid.UUID, role domain.UserRole) string {
	t.Helper()
	token, err := auth.Sign(jwtCfg, tenantID, uuid.New(), role, time.Minute)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestRouter_HealthIsPublic(t *testing.T) {
	f := setup()
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_APIRequiresToken(t *testing.T) {
	f := setup()
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/tax/split?amount=10", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_StaticRouteBeatsIDParam(t *testing.T) {
	f := setup()
	tenantID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/register.csv?from=2025-04-01", nil)
	req.Header.Set("Authorization", bearer(t, tenantID, domain.RoleMember))
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	// Reached RegisterCSV, which rejects the missing "to" date.
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"to"`)
	f.docs.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
}

func TestRouter_DeletePaymentRequiresAdmin(t *testing.T) {
	f := setup()
	tenantID, paymentID := uuid.New(), uuid.New()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/payments/"+paymentID.String(), nil)
	req.Header.Set("Authorization", bearer(t, tenantID, domain.RoleMember))
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	f.payments.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)

	f.payments.On("Delete", mock.Anything, tenantID, paymentID).Return([]*domain.Document{}, nil)
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/payments/"+paymentID.String(), nil)
	req.Header.Set("Authorization", bearer(t, tenantID, domain.RoleAdmin))
	w = httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	f.payments.AssertExpectations(t)
}

func TestRouter_ConfigureSequenceRequiresAdmin(t *testing.T) {
	f := setup()

	req := httptest.NewRequest(http.MethodPut, "/api/v1/sequences/invoice", nil)
	req.Header.Set("Authorization", bearer(t, uuid.New(), domain.RoleMember))
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRouter_PeekUsesTokenTenant(t *testing.T) {
	f := setup()
	tenantID := uuid.New()
	f.seqs.On("Peek", mock.Anything, tenantID, domain.SeriesType("invoice")).Return("INV-0001", nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sequences/invoice/peek", nil)
	req.Header.Set("Authorization", bearer(t, tenantID, domain.RoleMember))
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	f.seqs.AssertExpectations(t)
}
