package model

import "time"

// Outcome é o lado de um mercado binário.
type Outcome string

const (
	OutcomeYes Outcome = "YES"
	OutcomeNo  Outcome = "NO"
)

// Valid verifica se o outcome é exatamente YES ou NO.
func (o Outcome) Valid() bool { return o == OutcomeYes || o == OutcomeNo }

// MarketStatus é o estágio do ciclo de vida de um mercado.
// Transições: open <-> frozen, (open|frozen) -> resolved (terminal).
type MarketStatus string

const (
	MarketOpen     MarketStatus = "open"
	MarketFrozen   MarketStatus = "frozen"
	MarketResolved MarketStatus = "resolved"
)

// BetStatus é o estado de uma aposta. pending -> won|lost, exatamente uma vez.
type BetStatus string

const (
	BetPending BetStatus = "pending"
	BetWon     BetStatus = "won"
	BetLost    BetStatus = "lost"
)

// Pool acumula as apostas de cada lado de um mercado. Só cresce enquanto
// o mercado está aberto.
type Pool struct {
	Yes float64 `json:"YES"`
	No  float64 `json:"NO"`
}

func (p Pool) Total() float64 { return p.Yes + p.No }

// Side retorna o montante acumulado no lado pedido.
func (p Pool) Side(o Outcome) float64 {
	if o == OutcomeYes {
		return p.Yes
	}
	return p.No
}

// Add incrementa o lado pedido.
func (p *Pool) Add(o Outcome, amount float64) {
	if o == OutcomeYes {
		p.Yes += amount
	} else {
		p.No += amount
	}
}

// User guarda o saldo e os totais de um usuário. Balance é o total creditado;
// LockedBalance é a parcela comprometida em apostas pendentes.
// Invariante: 0 <= LockedBalance <= Balance.
type User struct {
	ID            string    `json:"id"`
	Balance       float64   `json:"balance"`
	LockedBalance float64   `json:"lockedBalance"`
	TotalWagered  float64   `json:"totalWagered"`
	TotalWon      float64   `json:"totalWon"`
	Role          string    `json:"role"` // "user" | "admin"
	CreatedAt     time.Time `json:"createdAt"`
}

// Available é o saldo livre para novas apostas.
func (u *User) Available() float64 { return u.Balance - u.LockedBalance }

// Market é um mercado binário de previsão.
type Market struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	Category   string       `json:"category,omitempty"`
	Status     MarketStatus `json:"status"`
	Pool       *Pool        `json:"pool,omitempty"`
	Result     Outcome      `json:"result,omitempty"` // só após resolução
	Volume     string       `json:"volume,omitempty"` // ex: "1.5K", "2.3M"
	CreatedAt  time.Time    `json:"createdAt"`
	ResolvedAt *time.Time   `json:"resolvedAt,omitempty"`
	FrozenAt   *time.Time   `json:"frozenAt,omitempty"`
	UnfrozenAt *time.Time   `json:"unfrozenAt,omitempty"`
}

// Bet é imutável após a criação, exceto pela única transição terminal de
// status/payout feita na liquidação. Odds é o snapshot capturado na colocação
// e nunca é recalculado.
type Bet struct {
	ID              string     `json:"id"`
	UserID          string     `json:"userId"`
	MarketID        string     `json:"marketId"`
	Outcome         Outcome    `json:"outcome"`
	Amount          float64    `json:"amount"`
	Odds            float64    `json:"odds"`
	PotentialPayout float64    `json:"potentialPayout"`
	Status          BetStatus  `json:"status"`
	Payout          float64    `json:"payout,omitempty"` // só se won
	PlacedAt        time.Time  `json:"placedAt"`
	ResolvedAt      *time.Time `json:"resolvedAt,omitempty"`
}

// State é o documento completo sobre o qual o store transacional opera.
// Admins é a side-table de privilégio por userId.
type State struct {
	Users   map[string]*User   `json:"users"`
	Markets map[string]*Market `json:"markets"`
	Bets    map[string]*Bet    `json:"bets"`
	Admins  map[string]bool    `json:"admins"`
}

// NewState retorna um estado vazio com todos os mapas inicializados.
func NewState() *State {
	s := &State{}
	s.Init()
	return s
}

// Init garante que nenhum mapa é nil (estado recém carregado pode vir parcial).
func (s *State) Init() {
	if s.Users == nil {
		s.Users = make(map[string]*User)
	}
	if s.Markets == nil {
		s.Markets = make(map[string]*Market)
	}
	if s.Bets == nil {
		s.Bets = make(map[string]*Bet)
	}
	if s.Admins == nil {
		s.Admins = make(map[string]bool)
	}
}

// Clone faz uma cópia profunda do estado. Usado pelo store em memória para
// isolar cada tentativa otimista.
func (s *State) Clone() *State {
	c := NewState()
	for id, u := range s.Users {
		cu := *u
		c.Users[id] = &cu
	}
	for id, m := range s.Markets {
		cm := *m
		if m.Pool != nil {
			cp := *m.Pool
			cm.Pool = &cp
		}
		if m.ResolvedAt != nil {
			t := *m.ResolvedAt
			cm.ResolvedAt = &t
		}
		if m.FrozenAt != nil {
			t := *m.FrozenAt
			cm.FrozenAt = &t
		}
		if m.UnfrozenAt != nil {
			t := *m.UnfrozenAt
			cm.UnfrozenAt = &t
		}
		c.Markets[id] = &cm
	}
	for id, b := range s.Bets {
		cb := *b
		if b.ResolvedAt != nil {
			t := *b.ResolvedAt
			cb.ResolvedAt = &t
		}
		c.Bets[id] = &cb
	}
	for id, v := range s.Admins {
		c.Admins[id] = v
	}
	return c
}
