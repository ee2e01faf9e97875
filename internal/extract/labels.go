package extract

import (
	"strings"

	"github.com/quokkatech/finrecon/internal/types"
)

// labelRule maps a display label onto a well-known line item key. Rules
// are evaluated in order against the lowercased label; the first rule
// whose every required word appears, and no excluded word appears, wins.
// Order matters: "total current liabilities" must be tried before
// "total liabilities", and related party classifications before the
// generic borrowings rule.
type labelRule struct {
	key     string
	section types.SectionKind
	require []string
	exclude []string
}

var labelRules = []labelRule{
	// Income statement
	{key: types.KeyCostOfSales, section: types.SectionIncomeStatement, require: []string{"cost of sales"}},
	{key: types.KeyGrossProfit, section: types.SectionIncomeStatement, require: []string{"gross profit"}},
	{key: types.KeyOtherIncome, section: types.SectionIncomeStatement, require: []string{"other income"}},
	{key: types.KeyDistributionCosts, section: types.SectionIncomeStatement, require: []string{"distribution"}},
	{key: types.KeyAdminExpenses, section: types.SectionIncomeStatement, require: []string{"administrat"}},
	{key: types.KeyOtherExpenses, section: types.SectionIncomeStatement, require: []string{"other expense"}},
	{key: types.KeyProfitBeforeTax, section: types.SectionIncomeStatement, require: []string{"profit", "before", "tax"}},
	{key: types.KeyIncomeTaxExpense, section: types.SectionIncomeStatement, require: []string{"tax"}, exclude: []string{"before", "deferred", "asset", "liabilit"}},
	{key: types.KeyNetProfitLoss, section: types.SectionIncomeStatement, require: []string{"profit", "year"}},
	{key: types.KeyNetProfitLoss, section: types.SectionIncomeStatement, require: []string{"net profit"}},
	{key: types.KeyNetProfitLoss, section: types.SectionIncomeStatement, require: []string{"loss", "year"}},
	{key: types.KeyRevenue, section: types.SectionIncomeStatement, require: []string{"revenue"}},
	{key: types.KeyRevenue, section: types.SectionIncomeStatement, require: []string{"sales"}, exclude: []string{"cost"}},

	// Balance sheet: totals first, then classified items.
	{key: types.KeyTotalCurrentAssets, section: types.SectionBalanceSheet, require: []string{"total current assets"}},
	{key: types.KeyTotalNonCurrAssets, section: types.SectionBalanceSheet, require: []string{"total non-current assets"}},
	{key: types.KeyTotalNonCurrAssets, section: types.SectionBalanceSheet, require: []string{"total non current assets"}},
	{key: types.KeyTotalAssets, section: types.SectionBalanceSheet, require: []string{"total assets"}},
	{key: types.KeyTotalCurrentLiab, section: types.SectionBalanceSheet, require: []string{"total current liabilit"}},
	{key: types.KeyTotalNonCurrLiab, section: types.SectionBalanceSheet, require: []string{"total non-current liabilit"}},
	{key: types.KeyTotalNonCurrLiab, section: types.SectionBalanceSheet, require: []string{"total non current liabilit"}},
	{key: types.KeyTotalLiabilities, section: types.SectionBalanceSheet, require: []string{"total liabilit"}},
	{key: types.KeyTotalEquity, section: types.SectionBalanceSheet, require: []string{"total equity"}},

	{key: types.KeyOtherNonCurrAssets, section: types.SectionBalanceSheet, require: []string{"other non-current asset"}},
	{key: types.KeyOtherNonCurrAssets, section: types.SectionBalanceSheet, require: []string{"other non current asset"}},
	{key: types.KeyOtherCurrentAssets, section: types.SectionBalanceSheet, require: []string{"other", "asset"}},
	{key: types.KeyOtherNonCurrLiab, section: types.SectionBalanceSheet, require: []string{"other non-current liabilit"}},
	{key: types.KeyOtherNonCurrLiab, section: types.SectionBalanceSheet, require: []string{"other non current liabilit"}},
	{key: types.KeyOtherCurrentLiab, section: types.SectionBalanceSheet, require: []string{"other", "liabilit"}},

	{key: types.KeyCash, section: types.SectionBalanceSheet, require: []string{"cash"}},
	{key: types.KeyReceivables, section: types.SectionBalanceSheet, require: []string{"receivable"}},
	{key: types.KeyInventories, section: types.SectionBalanceSheet, require: []string{"inventor"}},
	{key: types.KeyPPE, section: types.SectionBalanceSheet, require: []string{"property", "plant"}},
	{key: types.KeyIntangibles, section: types.SectionBalanceSheet, require: []string{"intangible"}},
	{key: types.KeyPayables, section: types.SectionBalanceSheet, require: []string{"payable"}},

	{key: types.KeyRelPartyLoansNonCurr, section: types.SectionBalanceSheet, require: []string{"related part", "non-current"}},
	{key: types.KeyRelPartyLoansNonCurr, section: types.SectionBalanceSheet, require: []string{"related part", "non current"}},
	{key: types.KeyRelPartyLoansCurrent, section: types.SectionBalanceSheet, require: []string{"related part"}},
	{key: types.KeyProvisionsNonCurr, section: types.SectionBalanceSheet, require: []string{"provision", "non-current"}},
	{key: types.KeyProvisionsNonCurr, section: types.SectionBalanceSheet, require: []string{"provision", "non current"}},
	{key: types.KeyProvisionsCurrent, section: types.SectionBalanceSheet, require: []string{"provision"}},
	{key: types.KeyBorrowings, section: types.SectionBalanceSheet, require: []string{"borrowing"}},

	{key: types.KeyShareCapital, section: types.SectionBalanceSheet, require: []string{"issued capital"}},
	{key: types.KeyShareCapital, section: types.SectionBalanceSheet, require: []string{"share capital"}},
	{key: types.KeyReserves, section: types.SectionBalanceSheet, require: []string{"reserve"}},
	{key: types.KeyRetainedEarnings, section: types.SectionBalanceSheet, require: []string{"retained earnings"}},
	{key: types.KeyRetainedEarnings, section: types.SectionBalanceSheet, require: []string{"accumulated losses"}},
}

// classifyLabel resolves a display label to a well-known key within the
// given section, or returns false for labels the rules do not recognize.
func classifyLabel(label string, section types.SectionKind) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(label))
	if lower == "" {
		return "", false
	}
	for _, r := range labelRules {
		if r.section != section {
			continue
		}
		if matchRule(lower, r) {
			return r.key, true
		}
	}
	return "", false
}

func matchRule(lower string, r labelRule) bool {
	for _, w := range r.require {
		if !strings.Contains(lower, w) {
			return false
		}
	}
	for _, w := range r.exclude {
		if strings.Contains(lower, w) {
			return false
		}
	}
	return true
}
