package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ProductName is the single product this operation trades.
const ProductName = "Pollo"

// AnchorSupplier is the sentinel counterparty of the anchor row.
const AnchorSupplier = "BALANCE_INICIAL"

// AnchorSeq is the sequence number reserved for the anchor row.
const AnchorSeq = 0

// AnchorDate is the sentinel date of the anchor row, before any possible
// operational date.
var AnchorDate = NewDate(1900, 1, 1)

// InitialBalance is the historical starting cumulative balance the whole
// chain is anchored to.
var InitialBalance = M(176.01)

// DocType identifies the commercial document backing a purchase.
type DocType string

const (
	DocInvoice    DocType = "Factura"
	DocDebitNote  DocType = "Nota de debito"
	DocCreditNote DocType = "Nota de credito"
)

// ParseDocType parses a string into a DocType.
func ParseDocType(s string) (DocType, error) {
	switch DocType(s) {
	case DocInvoice, DocDebitNote, DocCreditNote:
		return DocType(s), nil
	default:
		return "", fmt.Errorf("unknown document type: %q", s)
	}
}

// DepositKind classifies how a deposit reached the bank.
type DepositKind string

const (
	KindDeposit  DepositKind = "Deposito"      // cash through an ATM-style channel
	KindTransfer DepositKind = "Transferencia" // account-to-account transfer
)

// atmAgencies is the closed set of ATM-style channels. Any agency outside
// this set is a transfer.
var atmAgencies = map[string]bool{
	"Cajero Automatico Pichincha":   true,
	"Cajero Automatico Pacifico":    true,
	"Cajero Automatico Guayaquil":   true,
	"Cajero Automatico Bolivariano": true,
}

// ClassifyAgency derives the deposit kind from the agency/channel name.
func ClassifyAgency(agency string) DepositKind {
	if atmAgencies[agency] {
		return KindDeposit
	}
	return KindTransfer
}

// PurchaseRecord is one purchase event: weighed at the gate on the way out
// and on the way back in, priced per pound of the difference.
//
// The last three fields are owned by the reconciliation engine and
// overwritten wholesale on every run; they must never be hand-edited.
type PurchaseRecord struct {
	Seq       int     // unique, monotonically assigned
	Date      Date    //
	Supplier  string  //
	Product   string  // constant, always ProductName
	Units     int     // number of birds
	WeightOut Weight  // kg on the scale leaving
	WeightIn  Weight  // kg on the scale returning
	DocType   DocType //
	Crates    int     //
	UnitPrice Money   // per pound

	// Derived on every create and edit.
	NetKilos  Weight // WeightOut - WeightIn
	NetPounds Weight // NetKilos * PoundsPerKilo
	Average   Weight // NetPounds / Units, zero when Units is zero
	Total     Money  // NetPounds * UnitPrice

	// Engine-owned, recomputed by Reconcile.
	DepositAmount Money // that day's deposit sum for this supplier
	DailyNet      Money // the date's adjusted day net, broadcast to every row of the date
	Cumulative    Money // running balance through this row's date
}

// Derive recomputes the per-row derived fields from the source fields.
// It is idempotent: the same inputs always yield the same outputs.
func (r *PurchaseRecord) Derive() {
	r.NetKilos = r.WeightOut.Sub(r.WeightIn)
	r.NetPounds = r.NetKilos.Pounds()
	r.Average = r.NetPounds.DivUnits(r.Units)
	r.Total = r.NetPounds.MulPrice(r.UnitPrice).Round2()
}

// IsAnchor reports whether this row is the starting-balance sentinel.
func (r PurchaseRecord) IsAnchor() bool { return r.Supplier == AnchorSupplier }

// NewAnchorRow returns the starting-balance sentinel row with its fixed
// fields. It exists exactly once per dataset and is never user-editable.
func NewAnchorRow() PurchaseRecord {
	return PurchaseRecord{
		Seq:        AnchorSeq,
		Date:       AnchorDate,
		Supplier:   AnchorSupplier,
		Cumulative: InitialBalance,
	}
}

// DepositRecord is one bank deposit or transfer event. Deposits are joined
// to purchases by (date, counterparty) value equality, never by identifier.
type DepositRecord struct {
	Seq          int
	Date         Date
	Counterparty string // matches PurchaseRecord.Supplier for aggregation
	Agency       string
	Amount       Money
	Kind         DepositKind // derived from Agency, recomputed on every write
}

// Derive recomputes the deposit kind from the agency.
func (r *DepositRecord) Derive() { r.Kind = ClassifyAgency(r.Agency) }

// DebitNote is one discount adjustment event. Only the declared real
// discount feeds the balance; the possible discount is informational.
type DebitNote struct {
	Seq          int
	Date         Date
	Rate         decimal.Decimal // discount fraction in [0, 1]
	RealDiscount Money           // declared, feeds the adjusted daily net

	// Recomputed at write time, never user-entered.
	EligiblePounds   Weight // sum of same-day non-anchor purchase pounds
	PossibleDiscount Money  // EligiblePounds * Rate
}

// DeriveAgainst recomputes the note's eligible weight and possible
// discount against the given purchase dataset.
func (n *DebitNote) DeriveAgainst(purchases []PurchaseRecord) {
	var eligible Weight
	for _, p := range purchases {
		if p.IsAnchor() || p.Date != n.Date {
			continue
		}
		eligible = eligible.Add(p.NetPounds)
	}
	n.EligiblePounds = eligible
	n.PossibleDiscount = eligible.MulRate(n.Rate).Round2()
}
