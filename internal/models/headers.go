package models

// HeaderSet is the ordered list of column names that identifies the header
// row of a statement export.
type HeaderSet []string

// Matches reports whether row contains every required name. Order does not
// matter and extra cells are allowed.
func (h HeaderSet) Matches(row []string) bool {
	present := make(map[string]struct{}, len(row))
	for _, cell := range row {
		present[cell] = struct{}{}
	}
	for _, name := range h {
		if _, ok := present[name]; !ok {
			return false
		}
	}
	return true
}

// Columns maps the logical roles of a statement to concrete header names.
type Columns struct {
	Date        string `mapstructure:"date" yaml:"date" json:"date"`
	Cheque      string `mapstructure:"cheque" yaml:"cheque" json:"cheque"`
	Description string `mapstructure:"description" yaml:"description" json:"description"`
	Debit       string `mapstructure:"debit" yaml:"debit" json:"debit"`
	Credit      string `mapstructure:"credit" yaml:"credit" json:"credit"`
	Balance     string `mapstructure:"balance" yaml:"balance" json:"balance"`
	Branch      string `mapstructure:"branch" yaml:"branch" json:"branch"`
}

// DefaultColumns returns the column names of the original statement exports.
func DefaultColumns() Columns {
	return Columns{
		Date:        ColumnDate,
		Cheque:      ColumnCheque,
		Description: ColumnDescription,
		Debit:       ColumnDebit,
		Credit:      ColumnCredit,
		Balance:     ColumnBalance,
		Branch:      ColumnBranch,
	}
}

// WithDefaults fills any empty role with the default column name.
func (c Columns) WithDefaults() Columns {
	d := DefaultColumns()
	if c.Date == "" {
		c.Date = d.Date
	}
	if c.Cheque == "" {
		c.Cheque = d.Cheque
	}
	if c.Description == "" {
		c.Description = d.Description
	}
	if c.Debit == "" {
		c.Debit = d.Debit
	}
	if c.Credit == "" {
		c.Credit = d.Credit
	}
	if c.Balance == "" {
		c.Balance = d.Balance
	}
	if c.Branch == "" {
		c.Branch = d.Branch
	}
	return c
}

// HeaderSet returns the required header names in statement order.
func (c Columns) HeaderSet() HeaderSet {
	return HeaderSet{c.Date, c.Cheque, c.Description, c.Debit, c.Credit, c.Balance, c.Branch}
}
