package models

// Column names used by the statement exports this tool was built around.
const (
	ColumnDate        = "Tran Date"
	ColumnCheque      = "CHQNO"
	ColumnDescription = "PARTICULARS"
	ColumnDebit       = "DR"
	ColumnCredit      = "CR"
	ColumnBalance     = "BAL"
	ColumnBranch      = "SOL"
)

// DebitFlagKey is the JSON key of the derived debit/credit flag.
const DebitFlagKey = "withdrawal_or_deposit"

// MonthAll labels monthly totals computed over the whole record set.
const MonthAll = "ALL"
