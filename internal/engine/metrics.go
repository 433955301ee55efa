package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	betsPlaced = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "engine_bets_placed_total",
		Help: "Apostas aceitas, por lado.",
	}, []string{"outcome"})

	betsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "engine_bets_rejected_total",
		Help: "Apostas rejeitadas, por kind de erro.",
	}, []string{"kind"})

	marketsResolved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "engine_markets_resolved_total",
		Help: "Mercados resolvidos.",
	})

	txnRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "engine_txn_retries_total",
		Help: "Retentativas por conflito otimista no store.",
	})
)
