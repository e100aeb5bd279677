package taxes

import "io"

// RecordType is a typed string identifying a normalized broker record.
type RecordType string

// Record types produced by the broker parsers.
const (
	RecBuy      RecordType = "buy"
	RecSell     RecordType = "sell"
	RecDividend RecordType = "dividend"
	RecInterest RecordType = "interest"
)

// Transaction is the common interface for all normalized broker records.
// Records are immutable once parsed.
type Transaction interface {
	What() RecordType // What returns the record type ("buy", "sell", ...).
	When() Date       // When returns the date on which the transaction occurred.
}

// Parser is implemented by each broker parser: it reads a native export and
// produces a sequence of normalized transaction records.
type Parser interface {
	Parse(r io.Reader) ([]Transaction, error)
}

type baseRec struct {
	Type RecordType
	Date Date
}

func (r baseRec) What() RecordType { return r.Type }
func (r baseRec) When() Date       { return r.Date }

// Trade is a buy or a sell of a security.
type Trade struct {
	baseRec
	Security string // broker ticker, used as the KDVP security code
	ISIN     ISIN   // may be empty when the broker export carries none
	Quantity Quantity
	Price    Money // unit price, in the trade currency
	Fees     Money // commissions and fees, always a cost
	Fund     bool  // true for ETFs and investment funds
}

// NewBuy creates a normalized buy record.
func NewBuy(day Date, security string, isin ISIN, quantity Quantity, price, fees Money) Trade {
	return Trade{baseRec: baseRec{Type: RecBuy, Date: day}, Security: security, ISIN: isin, Quantity: quantity, Price: price, Fees: fees}
}

// NewSell creates a normalized sell record.
func NewSell(day Date, security string, isin ISIN, quantity Quantity, price, fees Money) Trade {
	return Trade{baseRec: baseRec{Type: RecSell, Date: day}, Security: security, ISIN: isin, Quantity: quantity, Price: price, Fees: fees}
}

// Proceeds returns the total trade amount (quantity times unit price) in the
// trade currency, fees excluded.
func (t Trade) Proceeds() Money { return t.Price.Mul(t.Quantity) }

// Dividend is a cash dividend payment.
type Dividend struct {
	baseRec
	Payer      string // issuer name as reported by the broker
	Symbol     string // broker instrument symbol, key into the company cache
	Value      Money  // gross dividend amount
	ForeignTax Money  // tax withheld at source
}

// NewDividend creates a normalized dividend record.
func NewDividend(day Date, payer, symbol string, value, foreignTax Money) Dividend {
	return Dividend{baseRec: baseRec{Type: RecDividend, Date: day}, Payer: payer, Symbol: symbol, Value: value, ForeignTax: foreignTax}
}
