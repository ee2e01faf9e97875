package types

// Well-known line item keys. Extractors map recognized labels onto these;
// checks refer to them instead of display wording.
const (
	// Income statement
	KeyRevenue           = "revenue"
	KeyCostOfSales       = "cost_of_sales"
	KeyGrossProfit       = "gross_profit"
	KeyOtherIncome       = "other_income"
	KeyDistributionCosts = "distribution_costs"
	KeyAdminExpenses     = "administrative_expenses"
	KeyOtherExpenses     = "other_expenses"
	KeyProfitBeforeTax   = "profit_before_tax"
	KeyIncomeTaxExpense  = "income_tax_expense"
	KeyNetProfitLoss     = "net_profit_loss"

	// Balance sheet
	KeyCash                 = "cash_and_equivalents"
	KeyReceivables          = "trade_receivables"
	KeyInventories          = "inventories"
	KeyOtherCurrentAssets   = "other_current_assets"
	KeyPPE                  = "property_plant_equipment"
	KeyIntangibles          = "intangible_assets"
	KeyOtherNonCurrAssets   = "other_non_current_assets"
	KeyTotalCurrentAssets   = "total_current_assets"
	KeyTotalNonCurrAssets   = "total_non_current_assets"
	KeyTotalAssets          = "total_assets"
	KeyPayables             = "trade_payables"
	KeyProvisionsCurrent    = "provisions_current"
	KeyRelPartyLoansCurrent = "related_party_loans_current"
	KeyOtherCurrentLiab     = "other_current_liabilities"
	KeyBorrowings           = "borrowings"
	KeyProvisionsNonCurr    = "provisions_non_current"
	KeyRelPartyLoansNonCurr = "related_party_loans_non_current"
	KeyOtherNonCurrLiab     = "other_non_current_liabilities"
	KeyTotalCurrentLiab     = "total_current_liabilities"
	KeyTotalNonCurrLiab     = "total_non_current_liabilities"
	KeyTotalLiabilities     = "total_liabilities"
	KeyShareCapital         = "share_capital"
	KeyReserves             = "reserves"
	KeyRetainedEarnings     = "retained_earnings"
	KeyTotalEquity          = "total_equity"

	// Equity rollforward
	KeyOpeningRetainedEarnings = "opening_retained_earnings"
	KeyClosingRetainedEarnings = "closing_retained_earnings"
)
