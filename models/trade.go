package models

// Trade directions and outcomes. Derived server-side; clients never submit
// an outcome.
const (
	TradeLong  = "long"
	TradeShort = "short"

	OutcomeWin  = "win"
	OutcomeLoss = "loss"
)

// TradeOutcome derives win/loss from direction and prices. A long wins only
// if it exits above entry, a short only if it exits below. Equal prices are
// a loss in both directions; there is no breakeven outcome.
func TradeOutcome(tradeType string, entryPrice, exitPrice float64) string {
	switch tradeType {
	case TradeLong:
		if exitPrice > entryPrice {
			return OutcomeWin
		}
	case TradeShort:
		if entryPrice > exitPrice {
			return OutcomeWin
		}
	}
	return OutcomeLoss
}
