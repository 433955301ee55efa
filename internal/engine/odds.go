package engine

import (
	"math"
	"strconv"

	"github.com/fredballer90-ops/Trendbet-backend/internal/model"
)

// Precificação pool-proporcional: apostar num lado torna o lado oposto
// relativamente mais escasso (e mais caro) para os próximos apostadores.
// Não é Kelly nem order book.
const (
	// HouseEdge é a margem fixa embutida nas odds (5%).
	HouseEdge = 0.05
	// DefaultOdds é a cotação de um pool vazio.
	DefaultOdds = 2.00
	// MinOdds é o piso que evita odds degeneradas quando um lado domina.
	MinOdds = 1.01
)

// round2 arredonda para 2 casas. Aplicado apenas nas fronteiras de cotação
// e de cálculo de payout, nunca em somas intermediárias.
func round2(x float64) float64 { return math.Round(x*100) / 100 }

// QuoteOdds converte a distribuição do pool em odds decimais para o lado
// pedido, com a margem da casa aplicada. Função pura.
func QuoteOdds(pool model.Pool, outcome model.Outcome) float64 {
	total := pool.Total()
	if total == 0 {
		return DefaultOdds
	}

	implied := pool.Side(outcome) / total
	adjusted := implied * (1 + HouseEdge)
	if adjusted == 0 {
		// lado ainda sem apostas: cota como moeda ao ar em vez de odds infinitas
		adjusted = 0.5
	}

	return math.Max(MinOdds, round2(1/adjusted))
}

// ComputePayout calcula o retorno bruto de uma aposta vencedora.
func ComputePayout(stake, odds float64) float64 {
	return round2(stake * odds)
}

// Probabilities retorna os percentuais implícitos de cada lado, para exibição.
// Pool vazio é 50/50.
func Probabilities(pool model.Pool) (yesPct, noPct int) {
	total := pool.Total()
	if total == 0 {
		return 50, 50
	}
	return int(math.Round(pool.Yes / total * 100)), int(math.Round(pool.No / total * 100))
}

// FormatVolume formata o total do pool como magnitude legível: sufixo K a
// partir de 1.000 e M a partir de 1.000.000, com uma casa decimal.
func FormatVolume(v float64) string {
	switch {
	case v >= 1_000_000:
		return strconv.FormatFloat(v/1_000_000, 'f', 1, 64) + "M"
	case v >= 1_000:
		return strconv.FormatFloat(v/1_000, 'f', 1, 64) + "K"
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}
