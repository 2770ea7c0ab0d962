// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package premium serves the subscription plans shown on the premium page.

The plan list is static. Prices are integer cents in BRL; labels such as the
yearly discount are derived from the prices rather than stored, so the copy
cannot drift from the numbers.
*/
package premium

import (
	"fmt"
	"math"
	"slices"

	"github.com/dustin/go-humanize"

	"github.com/taibuivan/tankobon/internal/platform/apperr"
)

// ErrPlanNotFound is returned for unknown plan slugs.
var ErrPlanNotFound = apperr.NotFound("Plan")

// Period is the billing cycle of a plan.
type Period string

const (
	PeriodMonthly Period = "month"
	PeriodYearly  Period = "year"
)

// Plan is one subscription offer.
type Plan struct {
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	PriceCents  int64    `json:"price_cents"`
	Currency    string   `json:"currency"`
	Period      Period   `json:"period"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	CTA         string   `json:"cta"`
	Popular     bool     `json:"popular"`
	Disabled    bool     `json:"disabled"`
}

var plans = []Plan{
	{
		Slug:        "free",
		Name:        "Gratuito",
		PriceCents:  0,
		Currency:    "BRL",
		Period:      PeriodMonthly,
		Description: "Perfeito para começar sua jornada",
		Features: []string{
			"Acesso a títulos gratuitos",
			"Até 5 capítulos por dia",
			"Anúncios entre capítulos",
			"Qualidade padrão",
		},
		CTA:      "Plano Atual",
		Disabled: true,
	},
	{
		Slug:        "premium",
		Name:        "Premium",
		PriceCents:  1990,
		Currency:    "BRL",
		Period:      PeriodMonthly,
		Description: "A escolha mais popular",
		Features: []string{
			"Acesso ilimitado a todos os títulos",
			"Leitura sem anúncios",
			"Download para leitura offline",
			"Qualidade HD",
			"Notificações de novos capítulos",
			"Acesso antecipado a lançamentos",
		},
		CTA:     "Assinar Premium",
		Popular: true,
	},
	{
		Slug:       "premium-yearly",
		Name:       "Premium Anual",
		PriceCents: 14990,
		Currency:   "BRL",
		Period:     PeriodYearly,
		Features: []string{
			"Todos os benefícios do Premium",
			"Badge exclusivo de apoiador",
			"Acesso beta a novos recursos",
			"Suporte prioritário",
		},
		CTA: "Assinar Anual",
	},
}

// Plans returns every plan in display order, with the yearly copy filled in.
func Plans() []Plan {
	out := make([]Plan, 0, len(plans))
	monthly := plans[1]

	for _, plan := range plans {
		plan.Features = slices.Clone(plan.Features)

		if plan.Period == PeriodYearly {
			savedCents, percent := YearlySavings(monthly.PriceCents, plan.PriceCents)
			plan.Description = fmt.Sprintf("Economize %d%% no plano anual", percent)
			plan.Features = slices.Insert(plan.Features, 1,
				"Economia de "+FormatPrice(savedCents)+" por ano")
		}

		out = append(out, plan)
	}
	return out
}

// Lookup returns the plan with the given slug.
func Lookup(slug string) (Plan, error) {
	for _, plan := range Plans() {
		if plan.Slug == slug {
			return plan, nil
		}
	}
	return Plan{}, ErrPlanNotFound
}

// YearlySavings compares twelve monthly payments with one yearly payment and
// returns the cents saved and the saving as a whole percentage (rounded).
func YearlySavings(monthlyCents, yearlyCents int64) (int64, int) {
	fullYear := 12 * monthlyCents
	if fullYear <= 0 || yearlyCents >= fullYear {
		return 0, 0
	}

	saved := fullYear - yearlyCents
	percent := int(math.Round(float64(saved) * 100 / float64(fullYear)))
	return saved, percent
}

// FormatPrice renders cents as a Brazilian real amount: 1990 → "R$ 19,90".
func FormatPrice(cents int64) string {
	return "R$ " + humanize.FormatFloat("#.###,##", float64(cents)/100)
}
