package ledger

import (
	"fmt"
	"log"
	"slices"
)

// Book is the in-memory ledger: the three source collections plus the
// reconciled daily balances. Every mutation revalidates its record, runs a
// full reconciliation, and saves the touched collections through the Store.
// There is no partial update path.
type Book struct {
	store     Store
	purchases []PurchaseRecord
	deposits  []DepositRecord
	notes     []DebitNote
	days      []DayBalance
}

// NewBook loads the three collections from the store, creates the anchor
// row on a fresh dataset, and reconciles. The returned book is always in a
// consistent, fully derived state.
func NewBook(store Store) (*Book, error) {
	purchases, err := store.LoadPurchases()
	if err != nil {
		return nil, fmt.Errorf("loading purchases: %w", err)
	}
	deposits, err := store.LoadDeposits()
	if err != nil {
		return nil, fmt.Errorf("loading deposits: %w", err)
	}
	notes, err := store.LoadNotes()
	if err != nil {
		return nil, fmt.Errorf("loading debit notes: %w", err)
	}

	b := &Book{store: store, purchases: purchases, deposits: deposits, notes: notes}
	if !slices.ContainsFunc(b.purchases, PurchaseRecord.IsAnchor) {
		log.Printf("creating starting-balance row at %s", InitialBalance)
		b.purchases = append(b.purchases, NewAnchorRow())
	}
	if err := b.reconcile(); err != nil {
		return nil, err
	}
	return b, nil
}

// Purchases returns the reconciled purchase dataset, anchor included,
// sorted by (date, sequence).
func (b *Book) Purchases() []PurchaseRecord { return b.purchases }

// Deposits returns the deposit collection.
func (b *Book) Deposits() []DepositRecord { return b.deposits }

// Notes returns the debit-note collection.
func (b *Book) Notes() []DebitNote { return b.notes }

// DailyBalances returns the per-date aggregates of the last reconciliation,
// in chronological order.
func (b *Book) DailyBalances() []DayBalance { return b.days }

// Balance returns the current cumulative balance: the last day's figure, or
// the starting constant when no operational day exists yet.
func (b *Book) Balance() Money {
	if len(b.days) == 0 {
		return InitialBalance
	}
	return b.days[len(b.days)-1].Cumulative
}

// Purchase returns the purchase with the given sequence number.
func (b *Book) Purchase(seq int) (PurchaseRecord, bool) {
	for _, p := range b.purchases {
		if p.Seq == seq {
			return p, true
		}
	}
	return PurchaseRecord{}, false
}

// Deposit returns the deposit with the given sequence number.
func (b *Book) Deposit(seq int) (DepositRecord, bool) {
	for _, d := range b.deposits {
		if d.Seq == seq {
			return d, true
		}
	}
	return DepositRecord{}, false
}

// Note returns the debit note with the given sequence number.
func (b *Book) Note(seq int) (DebitNote, bool) {
	for _, n := range b.notes {
		if n.Seq == seq {
			return n, true
		}
	}
	return DebitNote{}, false
}

// AddPurchase validates the record, assigns it the next sequence number,
// reconciles and saves. It returns the assigned sequence number.
func (b *Book) AddPurchase(r PurchaseRecord) (int, error) {
	if err := r.Validate(); err != nil {
		return 0, err
	}
	r.Seq = b.nextPurchaseSeq()
	r.Product = ProductName
	b.purchases = append(b.purchases, r)
	if err := b.reconcile(); err != nil {
		return 0, err
	}
	log.Printf("added purchase %d: %s %s", r.Seq, r.Date, r.Supplier)
	return r.Seq, nil
}

// EditPurchase replaces the source fields of the purchase with the given
// sequence number. The anchor row is rejected.
func (b *Book) EditPurchase(seq int, r PurchaseRecord) error {
	i, err := b.findPurchase(seq)
	if err != nil {
		return err
	}
	if err := r.Validate(); err != nil {
		return err
	}
	r.Seq = seq
	r.Product = ProductName
	b.purchases[i] = r
	if err := b.reconcile(); err != nil {
		return err
	}
	log.Printf("edited purchase %d", seq)
	return nil
}

// DeletePurchase removes the purchase with the given sequence number. The
// anchor row is rejected.
func (b *Book) DeletePurchase(seq int) error {
	i, err := b.findPurchase(seq)
	if err != nil {
		return err
	}
	b.purchases = slices.Delete(b.purchases, i, i+1)
	if err := b.reconcile(); err != nil {
		return err
	}
	log.Printf("deleted purchase %d", seq)
	return nil
}

// AddDeposit validates the record, assigns it the next sequence number,
// reconciles and saves. It returns the assigned sequence number.
func (b *Book) AddDeposit(r DepositRecord) (int, error) {
	if err := r.Validate(); err != nil {
		return 0, err
	}
	r.Seq = b.nextDepositSeq()
	r.Derive()
	b.deposits = append(b.deposits, r)
	if err := b.saveDeposits(); err != nil {
		return 0, err
	}
	if err := b.reconcile(); err != nil {
		return 0, err
	}
	log.Printf("added deposit %d: %s %s %s", r.Seq, r.Date, r.Counterparty, r.Amount)
	return r.Seq, nil
}

// EditDeposit replaces the source fields of the deposit with the given
// sequence number.
func (b *Book) EditDeposit(seq int, r DepositRecord) error {
	i := slices.IndexFunc(b.deposits, func(d DepositRecord) bool { return d.Seq == seq })
	if i < 0 {
		return fmt.Errorf("no deposit with sequence number %d", seq)
	}
	if err := r.Validate(); err != nil {
		return err
	}
	r.Seq = seq
	r.Derive()
	b.deposits[i] = r
	if err := b.saveDeposits(); err != nil {
		return err
	}
	if err := b.reconcile(); err != nil {
		return err
	}
	log.Printf("edited deposit %d", seq)
	return nil
}

// DeleteDeposit removes the deposit with the given sequence number.
func (b *Book) DeleteDeposit(seq int) error {
	i := slices.IndexFunc(b.deposits, func(d DepositRecord) bool { return d.Seq == seq })
	if i < 0 {
		return fmt.Errorf("no deposit with sequence number %d", seq)
	}
	b.deposits = slices.Delete(b.deposits, i, i+1)
	if err := b.saveDeposits(); err != nil {
		return err
	}
	if err := b.reconcile(); err != nil {
		return err
	}
	log.Printf("deleted deposit %d", seq)
	return nil
}

// AddNote validates the record, derives its eligible weight against the
// current purchases, assigns it the next sequence number, reconciles and
// saves. It returns the assigned sequence number.
func (b *Book) AddNote(n DebitNote) (int, error) {
	if err := n.Validate(); err != nil {
		return 0, err
	}
	n.Seq = b.nextNoteSeq()
	n.DeriveAgainst(b.purchases)
	b.notes = append(b.notes, n)
	if err := b.saveNotes(); err != nil {
		return 0, err
	}
	if err := b.reconcile(); err != nil {
		return 0, err
	}
	log.Printf("added debit note %d: %s %s", n.Seq, n.Date, n.RealDiscount)
	return n.Seq, nil
}

// EditNote replaces the source fields of the note with the given sequence
// number.
func (b *Book) EditNote(seq int, n DebitNote) error {
	i := slices.IndexFunc(b.notes, func(x DebitNote) bool { return x.Seq == seq })
	if i < 0 {
		return fmt.Errorf("no debit note with sequence number %d", seq)
	}
	if err := n.Validate(); err != nil {
		return err
	}
	n.Seq = seq
	n.DeriveAgainst(b.purchases)
	b.notes[i] = n
	if err := b.saveNotes(); err != nil {
		return err
	}
	if err := b.reconcile(); err != nil {
		return err
	}
	log.Printf("edited debit note %d", seq)
	return nil
}

// DeleteNote removes the debit note with the given sequence number.
func (b *Book) DeleteNote(seq int) error {
	i := slices.IndexFunc(b.notes, func(x DebitNote) bool { return x.Seq == seq })
	if i < 0 {
		return fmt.Errorf("no debit note with sequence number %d", seq)
	}
	b.notes = slices.Delete(b.notes, i, i+1)
	if err := b.saveNotes(); err != nil {
		return err
	}
	if err := b.reconcile(); err != nil {
		return err
	}
	log.Printf("deleted debit note %d", seq)
	return nil
}

// Import appends whole batches at once, used by the bulk importers. The
// incoming rows are already coerced, not validated: a batch is trusted the
// way a historical file is. Each batch gets fresh sequence numbers starting
// after the current maximum, and the anchor is never imported.
func (b *Book) Import(purchases []PurchaseRecord, deposits []DepositRecord, notes []DebitNote) error {
	seq := b.nextPurchaseSeq()
	for _, p := range purchases {
		if p.IsAnchor() {
			continue
		}
		p.Seq = seq
		p.Product = ProductName
		seq++
		b.purchases = append(b.purchases, p)
	}
	seq = b.nextDepositSeq()
	for _, d := range deposits {
		d.Seq = seq
		d.Derive()
		seq++
		b.deposits = append(b.deposits, d)
	}
	if len(deposits) > 0 {
		if err := b.saveDeposits(); err != nil {
			return err
		}
	}
	seq = b.nextNoteSeq()
	for _, n := range notes {
		n.Seq = seq
		n.DeriveAgainst(b.purchases)
		seq++
		b.notes = append(b.notes, n)
	}
	if len(notes) > 0 {
		if err := b.saveNotes(); err != nil {
			return err
		}
	}
	log.Printf("imported %d purchases, %d deposits, %d debit notes", len(purchases), len(deposits), len(notes))
	return b.reconcile()
}

// Rewrite persists every collection in canonical form. The purchase
// dataset is already saved on every reconciliation; this re-saves the
// deposits and notes too, normalizing hand-edited files.
func (b *Book) Rewrite() error {
	if err := b.saveDeposits(); err != nil {
		return err
	}
	if err := b.saveNotes(); err != nil {
		return err
	}
	return b.reconcile()
}

// reconcile recomputes everything and persists the purchase dataset, which
// carries all engine-owned fields.
func (b *Book) reconcile() error {
	b.purchases, b.days = Reconcile(b.purchases, b.deposits, b.notes)
	if err := b.store.SavePurchases(b.purchases); err != nil {
		return fmt.Errorf("saving purchases: %w", err)
	}
	return nil
}

func (b *Book) saveDeposits() error {
	if err := b.store.SaveDeposits(b.deposits); err != nil {
		return fmt.Errorf("saving deposits: %w", err)
	}
	return nil
}

func (b *Book) saveNotes() error {
	if err := b.store.SaveNotes(b.notes); err != nil {
		return fmt.Errorf("saving debit notes: %w", err)
	}
	return nil
}

// findPurchase locates an editable purchase by sequence number, rejecting
// the anchor.
func (b *Book) findPurchase(seq int) (int, error) {
	i := slices.IndexFunc(b.purchases, func(p PurchaseRecord) bool { return p.Seq == seq })
	if i < 0 {
		return 0, fmt.Errorf("no purchase with sequence number %d", seq)
	}
	if b.purchases[i].IsAnchor() {
		return 0, ErrAnchorImmutable
	}
	return i, nil
}

// nextPurchaseSeq returns max+1 over the existing rows, anchor excluded
// since it holds the reserved sequence number zero.
func (b *Book) nextPurchaseSeq() int {
	max := 0
	for _, p := range b.purchases {
		if p.Seq > max {
			max = p.Seq
		}
	}
	return max + 1
}

func (b *Book) nextDepositSeq() int {
	max := 0
	for _, d := range b.deposits {
		if d.Seq > max {
			max = d.Seq
		}
	}
	return max + 1
}

func (b *Book) nextNoteSeq() int {
	max := 0
	for _, n := range b.notes {
		if n.Seq > max {
			max = n.Seq
		}
	}
	return max + 1
}
