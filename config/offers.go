package config

import (
	"os"

	"github.com/shopspring/decimal"

	"relocation-api/models"
)

// Default offer prices in DZD. Marketing copy has quoted a different table
// (21000/28000/35000) at times; until product settles the numbers, the env
// overrides below are the single place to change them.
var defaultOfferAmounts = map[string]decimal.Decimal{
	models.OfferBasic:   decimal.NewFromInt(25000),
	models.OfferPremium: decimal.NewFromInt(50000),
	models.OfferGold:    decimal.NewFromInt(75000),
}

var offerAmountEnv = map[string]string{
	models.OfferBasic:   "OFFER_AMOUNT_BASIC",
	models.OfferPremium: "OFFER_AMOUNT_PREMIUM",
	models.OfferGold:    "OFFER_AMOUNT_GOLD",
}

// OfferAmount returns the full price of an offer. Unknown offers resolve to
// zero; callers validate the offer enum before charging anything.
func OfferAmount(offer string) decimal.Decimal {
	if env, ok := offerAmountEnv[offer]; ok {
		if raw := os.Getenv(env); raw != "" {
			if amount, err := decimal.NewFromString(raw); err == nil && amount.IsPositive() {
				return amount
			}
		}
	}
	if amount, ok := defaultOfferAmounts[offer]; ok {
		return amount
	}
	return decimal.Zero
}

// OfferCatalog returns the offer names with their effective amounts.
func OfferCatalog() map[string]decimal.Decimal {
	catalog := make(map[string]decimal.Decimal, len(defaultOfferAmounts))
	for offer := range defaultOfferAmounts {
		catalog[offer] = OfferAmount(offer)
	}
	return catalog
}
