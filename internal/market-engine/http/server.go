package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/fredballer90-ops/Trendbet-backend/internal/engine"
	"github.com/fredballer90-ops/Trendbet-backend/internal/market-engine/dto"
	"github.com/fredballer90-ops/Trendbet-backend/internal/market-engine/repo"
	"github.com/fredballer90-ops/Trendbet-backend/internal/model"
	"github.com/fredballer90-ops/Trendbet-backend/pkg/contracts/events"
)

// History é o read model de apostas (Postgres). Opcional: sem ele o serviço
// segue funcionando, só sem endpoint de histórico.
type History interface {
	RecordBet(ctx context.Context, b *repo.Bet) error
	RecordSettlement(ctx context.Context, betID, userID, marketID, status string, amount, payout float64, resolvedAt time.Time) error
	ListByUser(ctx context.Context, userID string) ([]repo.Bet, error)
}

// Publisher emite os eventos do engine. Opcional (best effort).
type Publisher interface {
	PublishBetPlaced(ctx context.Context, e events.BetPlaced) error
	PublishMarketResolved(ctx context.Context, e events.MarketResolved) error
	PublishMarketFrozen(ctx context.Context, e events.MarketFrozen) error
}

type Server struct {
	log  *zap.Logger
	eng  *engine.Engine
	hist History
	publ Publisher
}

func NewServer(log *zap.Logger, eng *engine.Engine, hist History, publ Publisher) *Server {
	return &Server{log: log, eng: eng, hist: hist, publ: publ}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/bets", s.bets)          // POST placeBet | GET ?userId=
	mux.HandleFunc("/bets/", s.getBet)       // GET /bets/{id}
	mux.HandleFunc("/balance", s.balance)    // GET ?userId=
	mux.HandleFunc("/markets", s.markets)    // GET
	mux.HandleFunc("/markets/", s.getMarket) // GET /markets/{id}
	mux.HandleFunc("/admin/markets", s.createMarket)          // POST
	mux.HandleFunc("/admin/markets/resolve", s.resolveMarket) // POST
	mux.HandleFunc("/admin/markets/freeze", s.freezeMarket)   // POST
	return mux
}

func (s *Server) bets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.placeBet(w, r)
	case http.MethodGet:
		s.betHistory(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) placeBet(w http.ResponseWriter, r *http.Request) {
	var req dto.PlaceBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, engine.KindInvalidArgument, "bad json")
		return
	}

	placed, err := s.eng.PlaceBet(r.Context(), req.UserID, req.MarketID, model.Outcome(req.Outcome), req.Amount)
	if err != nil {
		writeError(w, engine.KindOf(err), err.Error())
		return
	}

	// read model e evento são best effort; a aposta já está comitada
	if s.hist != nil {
		if herr := s.hist.RecordBet(r.Context(), &repo.Bet{
			ID:              placed.BetID,
			UserID:          req.UserID,
			MarketID:        req.MarketID,
			Outcome:         req.Outcome,
			Amount:          req.Amount,
			Odds:            placed.Odds,
			PotentialPayout: placed.PotentialPayout,
			Status:          string(model.BetPending),
			PlacedAt:        time.Now().UTC(),
		}); herr != nil {
			s.log.Warn("record bet history", zap.Error(herr))
		}
	}
	if s.publ != nil {
		_ = s.publ.PublishBetPlaced(r.Context(), events.BetPlaced{
			BetID:           placed.BetID,
			UserID:          req.UserID,
			MarketID:        req.MarketID,
			Outcome:         req.Outcome,
			Amount:          req.Amount,
			Odds:            placed.Odds,
			PotentialPayout: placed.PotentialPayout,
		})
	}

	writeJSON(w, dto.PlaceBetResponse{
		Success:         true,
		BetID:           placed.BetID,
		Odds:            placed.Odds,
		PotentialPayout: placed.PotentialPayout,
	})
}

func (s *Server) betHistory(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, engine.KindInvalidArgument, "userId required")
		return
	}
	if s.hist == nil {
		http.Error(w, "history unavailable", http.StatusServiceUnavailable)
		return
	}
	rows, err := s.hist.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, engine.KindInternal, err.Error())
		return
	}
	out := dto.BetHistoryResponse{UserID: userID, Bets: make([]dto.BetRecord, 0, len(rows))}
	for _, b := range rows {
		rec := dto.BetRecord{
			BetID:           b.ID,
			MarketID:        b.MarketID,
			Outcome:         b.Outcome,
			Amount:          b.Amount,
			Odds:            b.Odds,
			PotentialPayout: b.PotentialPayout,
			Status:          b.Status,
			PlacedAt:        b.PlacedAt.Format(time.RFC3339),
		}
		if b.Payout.Valid {
			rec.Payout = b.Payout.Float64
		}
		if b.ResolvedAt.Valid {
			rec.ResolvedAt = b.ResolvedAt.Time.Format(time.RFC3339)
		}
		out.Bets = append(out.Bets, rec)
	}
	writeJSON(w, out)
}

func (s *Server) getBet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := r.URL.Path[len("/bets/"):]
	if id == "" {
		writeError(w, engine.KindInvalidArgument, "betId required")
		return
	}
	bet, err := s.eng.Bet(r.Context(), id)
	if err != nil {
		writeError(w, engine.KindOf(err), err.Error())
		return
	}
	writeJSON(w, bet)
}

func (s *Server) balance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, engine.KindInvalidArgument, "userId required")
		return
	}
	bal, err := s.eng.UserBalance(r.Context(), userID)
	if err != nil {
		writeError(w, engine.KindOf(err), err.Error())
		return
	}
	writeJSON(w, dto.BalanceResponse{
		UserID:           userID,
		Balance:          bal.Balance,
		LockedBalance:    bal.LockedBalance,
		AvailableBalance: bal.AvailableBalance,
		TotalWagered:     bal.TotalWagered,
		TotalWon:         bal.TotalWon,
	})
}

func (s *Server) markets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	list, err := s.eng.Markets(r.Context())
	if err != nil {
		writeError(w, engine.KindOf(err), err.Error())
		return
	}
	out := make([]dto.MarketResponse, 0, len(list))
	for _, m := range list {
		out = append(out, marketView(m))
	}
	writeJSON(w, out)
}

func (s *Server) getMarket(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := r.URL.Path[len("/markets/"):]
	m, err := s.eng.Market(r.Context(), id)
	if err != nil {
		writeError(w, engine.KindOf(err), err.Error())
		return
	}
	writeJSON(w, marketView(m))
}

func (s *Server) createMarket(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.CreateMarketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, engine.KindInvalidArgument, "bad json")
		return
	}
	m, err := s.eng.CreateMarket(r.Context(), req.AdminID, req.Title, req.Category)
	if err != nil {
		writeError(w, engine.KindOf(err), err.Error())
		return
	}
	writeJSON(w, marketView(m))
}

func (s *Server) resolveMarket(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.ResolveMarketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, engine.KindInvalidArgument, "bad json")
		return
	}

	var (
		res *engine.Resolution
		err error
	)
	if req.FreezeFirst {
		res, err = s.eng.FreezeAndResolve(r.Context(), req.AdminID, req.MarketID, model.Outcome(req.Result))
	} else {
		res, err = s.eng.ResolveMarket(r.Context(), req.AdminID, req.MarketID, model.Outcome(req.Result))
	}
	if err != nil {
		writeError(w, engine.KindOf(err), err.Error())
		return
	}

	if s.hist != nil {
		for _, b := range res.Bets {
			if herr := s.hist.RecordSettlement(r.Context(), b.BetID, b.UserID, res.MarketID,
				string(b.Status), b.Amount, b.Payout, res.ResolvedAt); herr != nil {
				s.log.Warn("record settlement", zap.String("betId", b.BetID), zap.Error(herr))
			}
		}
	}
	if s.publ != nil {
		_ = s.publ.PublishMarketResolved(r.Context(), events.MarketResolved{
			MarketID:     res.MarketID,
			Result:       string(res.Result),
			ResolvedBets: res.ResolvedCount(),
		})
	}

	writeJSON(w, dto.ResolveMarketResponse{
		Success:      true,
		MarketID:     res.MarketID,
		Result:       string(res.Result),
		ResolvedBets: res.ResolvedCount(),
	})
}

func (s *Server) freezeMarket(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.FreezeMarketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, engine.KindInvalidArgument, "bad json")
		return
	}
	if err := s.eng.SetFreeze(r.Context(), req.AdminID, req.MarketID, req.Freeze); err != nil {
		writeError(w, engine.KindOf(err), err.Error())
		return
	}

	if s.publ != nil {
		_ = s.publ.PublishMarketFrozen(r.Context(), events.MarketFrozen{MarketID: req.MarketID, Frozen: req.Freeze})
	}

	status := string(model.MarketOpen)
	if req.Freeze {
		status = string(model.MarketFrozen)
	}
	writeJSON(w, dto.FreezeMarketResponse{Success: true, Status: status})
}

// marketView anexa as cotações e probabilidades atuais ao snapshot do mercado.
func marketView(m *model.Market) dto.MarketResponse {
	pool := model.Pool{}
	if m.Pool != nil {
		pool = *m.Pool
	}
	yes, no := engine.Probabilities(pool)
	return dto.MarketResponse{
		Market:  m,
		YesPct:  yes,
		NoPct:   no,
		OddsYes: engine.QuoteOdds(pool, model.OutcomeYes),
		OddsNo:  engine.QuoteOdds(pool, model.OutcomeNo),
	}
}

// statusFor mapeia o kind de erro para o código HTTP.
func statusFor(kind engine.Kind) int {
	switch kind {
	case engine.KindInvalidArgument, engine.KindStakeTooSmall, engine.KindStakeTooLarge:
		return http.StatusBadRequest
	case engine.KindUnauthenticated:
		return http.StatusUnauthorized
	case engine.KindPermissionDenied:
		return http.StatusForbidden
	case engine.KindMarketNotFound, engine.KindUserNotFound:
		return http.StatusNotFound
	case engine.KindMarketClosed, engine.KindInsufficientFunds, engine.KindTransactionAborted:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, kind engine.Kind, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusFor(kind))
	_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Success: false, ErrorKind: string(kind), Message: msg})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
