// Package sqlitestore provides a single-file SQLite backend for the ledger
// Store contract. Every save replaces its table wholesale inside one
// transaction, mirroring the full-replace semantics of the file backend.
package sqlitestore

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/ecuafarm/ledger"
)

// Migrations returns the schema statements, one per string. Monetary and
// weight columns are TEXT so decimal values round-trip exactly.
func Migrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS purchases (
			seq        INTEGER PRIMARY KEY,
			date       TEXT NOT NULL,
			supplier   TEXT NOT NULL,
			product    TEXT NOT NULL DEFAULT '',
			units      INTEGER NOT NULL DEFAULT 0,
			weight_out TEXT NOT NULL DEFAULT '0',
			weight_in  TEXT NOT NULL DEFAULT '0',
			doc_type   TEXT NOT NULL DEFAULT '',
			crates     INTEGER NOT NULL DEFAULT 0,
			unit_price TEXT NOT NULL DEFAULT '0',
			net_kilos  TEXT NOT NULL DEFAULT '0',
			net_pounds TEXT NOT NULL DEFAULT '0',
			average    TEXT NOT NULL DEFAULT '0',
			total      TEXT NOT NULL DEFAULT '0',
			deposit    TEXT NOT NULL DEFAULT '0',
			daily_net  TEXT NOT NULL DEFAULT '0',
			cumulative TEXT NOT NULL DEFAULT '0'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_purchases_date ON purchases(date)`,

		`CREATE TABLE IF NOT EXISTS deposits (
			seq          INTEGER PRIMARY KEY,
			date         TEXT NOT NULL,
			counterparty TEXT NOT NULL,
			agency       TEXT NOT NULL DEFAULT '',
			amount       TEXT NOT NULL DEFAULT '0',
			kind         TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_deposits_date ON deposits(date, counterparty)`,

		`CREATE TABLE IF NOT EXISTS notes (
			seq               INTEGER PRIMARY KEY,
			date              TEXT NOT NULL,
			rate              TEXT NOT NULL DEFAULT '0',
			real_discount     TEXT NOT NULL DEFAULT '0',
			eligible_pounds   TEXT NOT NULL DEFAULT '0',
			possible_discount TEXT NOT NULL DEFAULT '0'
		)`,
	}
}

// Store implements the ledger Store contract over a SQLite database file.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cannot open database %s: %w", path, err)
	}
	for _, stmt := range Migrations() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("cannot apply schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) LoadPurchases() ([]ledger.PurchaseRecord, error) {
	rows, err := s.db.Query(`SELECT seq, date, supplier, product, units,
		weight_out, weight_in, doc_type, crates, unit_price,
		net_kilos, net_pounds, average, total, deposit, daily_net, cumulative
		FROM purchases ORDER BY date, seq`)
	if err != nil {
		return nil, fmt.Errorf("cannot query purchases: %w", err)
	}
	defer rows.Close()

	var out []ledger.PurchaseRecord
	for rows.Next() {
		var p ledger.PurchaseRecord
		var date, weightOut, weightIn, unitPrice string
		var netKilos, netPounds, average, total, deposit, dailyNet, cumulative string
		var docType string
		if err := rows.Scan(&p.Seq, &date, &p.Supplier, &p.Product, &p.Units,
			&weightOut, &weightIn, &docType, &p.Crates, &unitPrice,
			&netKilos, &netPounds, &average, &total, &deposit, &dailyNet, &cumulative); err != nil {
			return nil, fmt.Errorf("cannot scan purchase: %w", err)
		}
		p.Date = ledger.ParseDateLenient(date)
		p.DocType = ledger.DocType(docType)
		p.WeightOut = ledger.W(dec(weightOut))
		p.WeightIn = ledger.W(dec(weightIn))
		p.UnitPrice = ledger.M(dec(unitPrice))
		p.NetKilos = ledger.W(dec(netKilos))
		p.NetPounds = ledger.W(dec(netPounds))
		p.Average = ledger.W(dec(average))
		p.Total = ledger.M(dec(total))
		p.DepositAmount = ledger.M(dec(deposit))
		p.DailyNet = ledger.M(dec(dailyNet))
		p.Cumulative = ledger.M(dec(cumulative))
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) LoadDeposits() ([]ledger.DepositRecord, error) {
	rows, err := s.db.Query(`SELECT seq, date, counterparty, agency, amount
		FROM deposits ORDER BY date, seq`)
	if err != nil {
		return nil, fmt.Errorf("cannot query deposits: %w", err)
	}
	defer rows.Close()

	var out []ledger.DepositRecord
	for rows.Next() {
		var d ledger.DepositRecord
		var date, amount string
		if err := rows.Scan(&d.Seq, &date, &d.Counterparty, &d.Agency, &amount); err != nil {
			return nil, fmt.Errorf("cannot scan deposit: %w", err)
		}
		d.Date = ledger.ParseDateLenient(date)
		d.Amount = ledger.M(dec(amount))
		d.Derive()
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) LoadNotes() ([]ledger.DebitNote, error) {
	rows, err := s.db.Query(`SELECT seq, date, rate, real_discount,
		eligible_pounds, possible_discount FROM notes ORDER BY date, seq`)
	if err != nil {
		return nil, fmt.Errorf("cannot query debit notes: %w", err)
	}
	defer rows.Close()

	var out []ledger.DebitNote
	for rows.Next() {
		var n ledger.DebitNote
		var date, rate, real, pounds, possible string
		if err := rows.Scan(&n.Seq, &date, &rate, &real, &pounds, &possible); err != nil {
			return nil, fmt.Errorf("cannot scan debit note: %w", err)
		}
		n.Date = ledger.ParseDateLenient(date)
		n.Rate = dec(rate)
		n.RealDiscount = ledger.M(dec(real))
		n.EligiblePounds = ledger.W(dec(pounds))
		n.PossibleDiscount = ledger.M(dec(possible))
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Store) SavePurchases(rows []ledger.PurchaseRecord) error {
	return s.replace("purchases", func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`INSERT INTO purchases (seq, date, supplier,
			product, units, weight_out, weight_in, doc_type, crates,
			unit_price, net_kilos, net_pounds, average, total, deposit,
			daily_net, cumulative)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, p := range rows {
			if _, err := stmt.Exec(p.Seq, p.Date.String(), p.Supplier,
				p.Product, p.Units, p.WeightOut.Decimal().String(),
				p.WeightIn.Decimal().String(), string(p.DocType), p.Crates,
				p.UnitPrice.Decimal().String(), p.NetKilos.Decimal().String(),
				p.NetPounds.Decimal().String(), p.Average.Decimal().String(),
				p.Total.Decimal().String(), p.DepositAmount.Decimal().String(),
				p.DailyNet.Decimal().String(), p.Cumulative.Decimal().String()); err != nil {
				return fmt.Errorf("purchase %d: %w", p.Seq, err)
			}
		}
		return nil
	})
}

func (s *Store) SaveDeposits(deposits []ledger.DepositRecord) error {
	return s.replace("deposits", func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`INSERT INTO deposits (seq, date,
			counterparty, agency, amount, kind) VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, d := range deposits {
			if _, err := stmt.Exec(d.Seq, d.Date.String(), d.Counterparty,
				d.Agency, d.Amount.Decimal().String(), string(d.Kind)); err != nil {
				return fmt.Errorf("deposit %d: %w", d.Seq, err)
			}
		}
		return nil
	})
}

func (s *Store) SaveNotes(notes []ledger.DebitNote) error {
	return s.replace("notes", func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`INSERT INTO notes (seq, date, rate,
			real_discount, eligible_pounds, possible_discount)
			VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, n := range notes {
			if _, err := stmt.Exec(n.Seq, n.Date.String(), n.Rate.String(),
				n.RealDiscount.Decimal().String(),
				n.EligiblePounds.Decimal().String(),
				n.PossibleDiscount.Decimal().String()); err != nil {
				return fmt.Errorf("debit note %d: %w", n.Seq, err)
			}
		}
		return nil
	})
}

// replace runs a delete-all-then-insert transaction against one table.
func (s *Store) replace(table string, insert func(*sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("cannot begin transaction: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM " + table); err != nil {
		tx.Rollback()
		return fmt.Errorf("cannot clear %s: %w", table, err)
	}
	if err := insert(tx); err != nil {
		tx.Rollback()
		return fmt.Errorf("cannot fill %s: %w", table, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("cannot commit %s: %w", table, err)
	}
	return nil
}

// dec parses a stored decimal column, degrading to zero like the JSONL
// decoder does.
func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
