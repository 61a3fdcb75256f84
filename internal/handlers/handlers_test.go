package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/miguelacho_api/internal/apperrors"
	"github.com/SscSPs/miguelacho_api/internal/core/domain"
	portssvc "github.com/SscSPs/miguelacho_api/internal/core/ports/services"
	"github.com/SscSPs/miguelacho_api/internal/dto"
	"github.com/SscSPs/miguelacho_api/internal/handlers"
	"github.com/SscSPs/miguelacho_api/internal/middleware"
	"github.com/SscSPs/miguelacho_api/internal/platform/config"
	"github.com/SscSPs/miguelacho_api/internal/platform/metrics"
	"github.com/SscSPs/miguelacho_api/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ConversionService ---
type MockConversionService struct {
	mock.Mock
}

func (m *MockConversionService) Convert(ctx context.Context, req dto.ConvertRequest) (*domain.ConversionResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConversionResult), args.Error(1)
}

var _ portssvc.ConversionSvc = (*MockConversionService)(nil)

// --- Mock TableService ---
type MockTableService struct {
	mock.Mock
}

func (m *MockTableService) ListRates(ctx context.Context) ([]domain.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Record), args.Error(1)
}

func (m *MockTableService) ListProfits(ctx context.Context) ([]domain.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Record), args.Error(1)
}

func (m *MockTableService) GetCrossMatrix(ctx context.Context) (domain.RawGrid, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.RawGrid), args.Error(1)
}

func (m *MockTableService) Refresh(ctx context.Context) (*domain.TablesSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TablesSummary), args.Error(1)
}

var _ portssvc.TableSvcFacade = (*MockTableService)(nil)

const testJWTSecret = "test-admin-secret"

// --- Test Suite ---
type HandlersTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockConversion *MockConversionService
	mockTables     *MockTableService
	metrics        *metrics.Metrics
	cfg            *config.Config
}

func (suite *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockConversion = new(MockConversionService)
	suite.mockTables = new(MockTableService)
	suite.metrics = metrics.NewMetrics(prometheus.NewRegistry())
	suite.cfg = &config.Config{IsProduction: true, AdminJWTSecret: testJWTSecret}
	suite.router = suite.newRouter(suite.cfg)
}

func (suite *HandlersTestSuite) newRouter(cfg *config.Config, convertMiddleware ...gin.HandlerFunc) *gin.Engine {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), middleware.PermissiveCORS())
	container := &portssvc.ServiceContainer{
		Conversion: suite.mockConversion,
		Tables:     suite.mockTables,
	}
	handlers.RegisterRoutes(r, cfg, container, suite.metrics, convertMiddleware...)
	return r
}

func (suite *HandlersTestSuite) do(method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlersTestSuite) decodeError(w *httptest.ResponseRecorder) dto.ErrorResponse {
	var body dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func sampleResult() *domain.ConversionResult {
	return &domain.ConversionResult{
		Amount:        decimal.NewFromInt(100),
		Origin:        "USD",
		Destination:   "COP",
		Converted:     decimal.RequireFromString("380000.1234"),
		Factor:        decimal.RequireFromString("0.95"),
		RateID:        "2",
		RateTimestamp: "2024-05-02 10:00",
	}
}

// --- Test Cases ---

func (suite *HandlersTestSuite) TestHome() {
	w := suite.do(http.MethodGet, "/", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"status":"ok","message":"API de Miguelacho en línea"}`, w.Body.String())
	suite.Contains(w.Header().Get("Content-Type"), "application/json")
}

func (suite *HandlersTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlersTestSuite) TestConvert_Success() {
	req := dto.ConvertRequest{Cantidad: "100", Origen: "usd", Destino: "COP"}
	suite.mockConversion.On("Convert", mock.Anything, req).Return(sampleResult(), nil).Once()

	w := suite.do(http.MethodGet, "/convertir?cantidad=100&origen=usd&destino=COP", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{
		"status": "success",
		"conversion_solicitada": "100 USD a COP",
		"monto_convertido": 380000.1234,
		"detalle": {"factor_ganancia": 0.95, "id_tasa_actual": "2", "timestamp_actual": "2024-05-02 10:00"}
	}`, w.Body.String())
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.ConversionsTotal.WithLabelValues("ok")))
	suite.mockConversion.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestConvert_IdenticalRequestsGiveIdenticalBodies() {
	suite.mockConversion.On("Convert", mock.Anything, mock.Anything).Return(sampleResult(), nil).Twice()

	first := suite.do(http.MethodGet, "/convertir?cantidad=100&origen=USD&destino=COP", nil)
	second := suite.do(http.MethodGet, "/convertir?cantidad=100&origen=USD&destino=COP", nil)

	suite.Equal(http.StatusOK, first.Code)
	suite.Equal(first.Body.String(), second.Body.String())
}

func (suite *HandlersTestSuite) TestConvert_MissingParameters() {
	for _, target := range []string{
		"/convertir",
		"/convertir?cantidad=100&origen=USD",
		"/convertir?origen=USD&destino=COP",
		"/convertir?cantidad=100&origen=U$&destino=COP",
	} {
		w := suite.do(http.MethodGet, target, nil)

		suite.Equal(http.StatusBadRequest, w.Code, target)
		suite.Equal("Parámetros faltantes o inválidos.", suite.decodeError(w).Error, target)
	}
	suite.mockConversion.AssertNotCalled(suite.T(), "Convert", mock.Anything, mock.Anything)
	suite.Equal(4.0, testutil.ToFloat64(suite.metrics.ConversionsTotal.WithLabelValues("invalid_request")))
}

func (suite *HandlersTestSuite) TestConvert_ErrorMapping() {
	cases := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{"zero amount", apperrors.NewInvalidRequestError("cantidad must not be zero"), http.StatusBadRequest, "invalid_request"},
		{"unknown currency", apperrors.NewCurrencyNotFoundError("XYZ", "rates"), http.StatusNotFound, "currency_not_found"},
		{"zero rate", apperrors.NewRateOrFactorInvalidError("VES_D", "0"), http.StatusNotFound, "rate_or_factor_invalid"},
		{"not loaded", apperrors.ErrDataNotReady, http.StatusServiceUnavailable, "data_not_ready"},
		{"gateway down", apperrors.NewGatewayUnavailableError(errors.New("deadline exceeded")), http.StatusServiceUnavailable, "gateway_unavailable"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		suite.Run(tc.name, func() {
			suite.SetupTest()
			suite.mockConversion.On("Convert", mock.Anything, mock.Anything).Return(nil, tc.err).Once()

			w := suite.do(http.MethodGet, "/convertir?cantidad=1&origen=USD&destino=XYZ", nil)

			suite.Equal(tc.status, w.Code)
			body := suite.decodeError(w)
			suite.NotEmpty(body.Error)
			suite.Equal(tc.err.Error(), body.Detalle)
			suite.Equal(1.0, testutil.ToFloat64(suite.metrics.ConversionsTotal.WithLabelValues(tc.kind)))
		})
	}
}

func (suite *HandlersTestSuite) TestConvert_InternalErrorMessage() {
	suite.mockConversion.On("Convert", mock.Anything, mock.Anything).Return(nil, errors.New("boom")).Once()

	w := suite.do(http.MethodGet, "/convertir?cantidad=1&origen=USD&destino=COP", nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Equal(dto.ErrorResponse{Error: "Error interno del servidor al procesar la conversión.", Detalle: "boom"}, suite.decodeError(w))
}

func (suite *HandlersTestSuite) TestConvert_RateLimited() {
	limiter, err := middleware.NewMemoryLimiter("1-M")
	suite.Require().NoError(err)
	suite.router = suite.newRouter(suite.cfg, middleware.RateLimit(limiter))
	suite.mockConversion.On("Convert", mock.Anything, mock.Anything).Return(sampleResult(), nil).Once()

	first := suite.do(http.MethodGet, "/convertir?cantidad=1&origen=USD&destino=COP", nil)
	second := suite.do(http.MethodGet, "/convertir?cantidad=1&origen=USD&destino=COP", nil)
	home := suite.do(http.MethodGet, "/", nil)

	suite.Equal(http.StatusOK, first.Code)
	suite.Equal(http.StatusTooManyRequests, second.Code)
	suite.Equal("0", second.Header().Get("X-RateLimit-Remaining"))
	suite.Equal(http.StatusOK, home.Code, "only /convertir is limited")
}

func (suite *HandlersTestSuite) TestCORS() {
	w := suite.do(http.MethodGet, "/", http.Header{"Origin": {"https://miguelacho.example"}})

	suite.Equal("*", w.Header().Get("Access-Control-Allow-Origin"))
	suite.NotEmpty(w.Header().Get(middleware.RequestIDHeader))
}

func (suite *HandlersTestSuite) TestTables() {
	rates := []domain.Record{domain.RecordOf("IDTAS", "1", "USD_O", "1")}
	profits := []domain.Record{domain.RecordOf("Column0", "COP", "USD", "0,95")}
	grid := domain.RawGrid{{"", "USD"}, {"COP", "0,95"}}
	suite.mockTables.On("ListRates", mock.Anything).Return(rates, nil).Once()
	suite.mockTables.On("ListProfits", mock.Anything).Return(profits, nil).Once()
	suite.mockTables.On("GetCrossMatrix", mock.Anything).Return(grid, nil).Once()

	w := suite.do(http.MethodGet, "/tasas", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(`[{"IDTAS":"1","USD_O":"1"}]`, w.Body.String())

	w = suite.do(http.MethodGet, "/ganancias", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(`[{"Column0":"COP","USD":"0,95"}]`, w.Body.String())

	w = suite.do(http.MethodGet, "/matriz_cruce", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`[["","USD"],["COP","0,95"]]`, w.Body.String())
}

func (suite *HandlersTestSuite) TestTables_NotReady() {
	suite.mockTables.On("ListRates", mock.Anything).Return(nil, apperrors.ErrDataNotReady).Once()

	w := suite.do(http.MethodGet, "/tasas", nil)

	suite.Equal(http.StatusServiceUnavailable, w.Code)
	suite.Equal(apperrors.ErrDataNotReady.Error(), suite.decodeError(w).Detalle)
}

func (suite *HandlersTestSuite) adminToken(subject string, expiresIn time.Duration) string {
	token, err := utils.GenerateAdminToken(subject, testJWTSecret, expiresIn)
	suite.Require().NoError(err)
	return token
}

func (suite *HandlersTestSuite) TestAdminRefresh() {
	fetchedAt := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)
	suite.mockTables.On("Refresh", mock.Anything).
		Return(&domain.TablesSummary{RateRows: 12, ProfitRows: 10, FetchedAt: fetchedAt}, nil).Once()

	w := suite.do(http.MethodPost, "/admin/tablas/refresh",
		http.Header{"Authorization": {"Bearer " + suite.adminToken("ops", time.Hour)}})

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"status":"ok","filas_tasas":12,"filas_matriz":10,"actualizado":"2024-05-02T12:00:00Z"}`, w.Body.String())
}

func (suite *HandlersTestSuite) TestAdminRefresh_Failure() {
	suite.mockTables.On("Refresh", mock.Anything).
		Return(nil, apperrors.NewGatewayUnavailableError(errors.New("quota exceeded"))).Once()

	w := suite.do(http.MethodPost, "/admin/tablas/refresh",
		http.Header{"Authorization": {"Bearer " + suite.adminToken("ops", time.Hour)}})

	suite.Equal(http.StatusServiceUnavailable, w.Code)
}

func (suite *HandlersTestSuite) TestAdminRefresh_Unauthorized() {
	w := suite.do(http.MethodPost, "/admin/tablas/refresh", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.do(http.MethodPost, "/admin/tablas/refresh",
		http.Header{"Authorization": {"Bearer " + suite.adminToken("ops", -time.Minute)}})
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal("El token ha expirado", suite.decodeError(w).Error)

	w = suite.do(http.MethodPost, "/admin/tablas/refresh",
		http.Header{"Authorization": {"Token abc"}})
	suite.Equal(http.StatusUnauthorized, w.Code)

	suite.mockTables.AssertNotCalled(suite.T(), "Refresh", mock.Anything)
}

func (suite *HandlersTestSuite) TestAdminRoutesAbsentWithoutSecret() {
	suite.router = suite.newRouter(&config.Config{IsProduction: true})

	w := suite.do(http.MethodPost, "/admin/tablas/refresh", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlersTestSuite) TestSwaggerOnlyOutsideProduction() {
	w := suite.do(http.MethodGet, "/swagger/index.html", nil)
	suite.Equal(http.StatusNotFound, w.Code)

	suite.router = suite.newRouter(&config.Config{IsProduction: false})
	w = suite.do(http.MethodGet, "/swagger/doc.json", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "/convertir")
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
