package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fredballer90-ops/Trendbet-backend/internal/engine"
	"github.com/fredballer90-ops/Trendbet-backend/internal/market-engine/dto"
	"github.com/fredballer90-ops/Trendbet-backend/internal/store"
)

const testAdmin = "admin-1"

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	st := store.NewMemory()
	eng := engine.New(zap.NewNop(), st, engine.NewStateGate(st))
	require.NoError(t, eng.SeedAdmins(context.Background(), []string{testAdmin}))

	m, err := eng.CreateMarket(context.Background(), testAdmin, "Vai chover amanhã?", "clima")
	require.NoError(t, err)

	return NewServer(zap.NewNop(), eng, nil, nil), m.ID
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPlaceBet_OK(t *testing.T) {
	s, marketID := newTestServer(t)
	h := s.Router()

	rec := postJSON(t, h, "/bets", dto.PlaceBetRequest{
		UserID: "u1", MarketID: marketID, Outcome: "YES", Amount: 1000,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var out dto.PlaceBetResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.Success)
	assert.NotEmpty(t, out.BetID)
	assert.Equal(t, 2.00, out.Odds)
	assert.Equal(t, 2000.0, out.PotentialPayout)

	// registro consultável em /bets/{id}
	req := httptest.NewRequest(http.MethodGet, "/bets/"+out.BetID, nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPlaceBet_ErrorKinds(t *testing.T) {
	s, marketID := newTestServer(t)
	h := s.Router()

	cases := []struct {
		name       string
		req        dto.PlaceBetRequest
		wantStatus int
		wantKind   string
	}{
		{"outcome invalido", dto.PlaceBetRequest{UserID: "u1", MarketID: marketID, Outcome: "MAYBE", Amount: 1000},
			http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"stake pequeno", dto.PlaceBetRequest{UserID: "u1", MarketID: marketID, Outcome: "YES", Amount: 50},
			http.StatusBadRequest, "STAKE_TOO_SMALL"},
		{"stake grande", dto.PlaceBetRequest{UserID: "u1", MarketID: marketID, Outcome: "YES", Amount: 200000},
			http.StatusBadRequest, "STAKE_TOO_LARGE"},
		{"sem saldo", dto.PlaceBetRequest{UserID: "u1", MarketID: marketID, Outcome: "YES", Amount: 99000},
			http.StatusConflict, "INSUFFICIENT_FUNDS"},
		{"mercado inexistente", dto.PlaceBetRequest{UserID: "u1", MarketID: "nope", Outcome: "YES", Amount: 1000},
			http.StatusNotFound, "MARKET_NOT_FOUND"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, h, "/bets", tc.req)
			assert.Equal(t, tc.wantStatus, rec.Code)
			var out dto.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
			assert.False(t, out.Success)
			assert.Equal(t, tc.wantKind, out.ErrorKind)
		})
	}
}

func TestResolveMarket_Flow(t *testing.T) {
	s, marketID := newTestServer(t)
	h := s.Router()

	rec := postJSON(t, h, "/bets", dto.PlaceBetRequest{UserID: "u1", MarketID: marketID, Outcome: "YES", Amount: 1000})
	require.Equal(t, http.StatusOK, rec.Code)

	// não-admin é barrado
	rec = postJSON(t, h, "/admin/markets/resolve", dto.ResolveMarketRequest{AdminID: "mortal", MarketID: marketID, Result: "YES"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = postJSON(t, h, "/admin/markets/resolve", dto.ResolveMarketRequest{AdminID: testAdmin, MarketID: marketID, Result: "YES"})
	require.Equal(t, http.StatusOK, rec.Code)

	var out dto.ResolveMarketResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.Success)
	assert.Equal(t, 1, out.ResolvedBets)

	// resolvido não aceita mais apostas nem nova resolução
	rec = postJSON(t, h, "/bets", dto.PlaceBetRequest{UserID: "u2", MarketID: marketID, Outcome: "NO", Amount: 1000})
	assert.Equal(t, http.StatusConflict, rec.Code)
	rec = postJSON(t, h, "/admin/markets/resolve", dto.ResolveMarketRequest{AdminID: testAdmin, MarketID: marketID, Result: "YES"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// vencedor consultável em /balance
	req := httptest.NewRequest(http.MethodGet, "/balance?userId=u1", nil)
	brec := httptest.NewRecorder()
	h.ServeHTTP(brec, req)
	require.Equal(t, http.StatusOK, brec.Code)
	var bal dto.BalanceResponse
	require.NoError(t, json.Unmarshal(brec.Body.Bytes(), &bal))
	assert.Equal(t, 11000.0, bal.Balance)
	assert.Zero(t, bal.LockedBalance)
}

func TestFreezeMarket(t *testing.T) {
	s, marketID := newTestServer(t)
	h := s.Router()

	rec := postJSON(t, h, "/admin/markets/freeze", dto.FreezeMarketRequest{AdminID: testAdmin, MarketID: marketID, Freeze: true})
	require.Equal(t, http.StatusOK, rec.Code)
	var out dto.FreezeMarketResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "frozen", out.Status)

	rec = postJSON(t, h, "/bets", dto.PlaceBetRequest{UserID: "u1", MarketID: marketID, Outcome: "YES", Amount: 1000})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestMarkets_List(t *testing.T) {
	s, marketID := newTestServer(t)
	h := s.Router()

	req := httptest.NewRequest(http.MethodGet, "/markets", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []dto.MarketResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, marketID, list[0].Market.ID)
	assert.Equal(t, 50, list[0].YesPct)
	assert.Equal(t, 2.00, list[0].OddsYes)
}

func TestCreateMarket_RequiresAdmin(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Router()

	rec := postJSON(t, h, "/admin/markets", dto.CreateMarketRequest{AdminID: "mortal", Title: "x"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = postJSON(t, h, "/admin/markets", dto.CreateMarketRequest{AdminID: testAdmin, Title: "Novo mercado", Category: "esportes"})
	require.Equal(t, http.StatusOK, rec.Code)
	var out dto.MarketResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "Novo mercado", out.Market.Title)
	assert.Equal(t, "open", string(out.Market.Status))
}
