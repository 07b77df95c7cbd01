// Package index stores a flattened view of a GEDCOM file in SQLite so that
// individuals can be looked up by name and families walked without
// re-parsing the source file.
//
// The driver comes from core/sqlite: pure Go by default, mattn/go-sqlite3
// with the cgo_sqlite build tag.
package index

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"github.com/FocuswithJustin/gedcom/core/errors"
	"github.com/FocuswithJustin/gedcom/core/gedcom"
	"github.com/FocuswithJustin/gedcom/core/sqlite"
	"github.com/FocuswithJustin/gedcom/internal/logging"
)

// Person is one indexed individual.
type Person struct {
	ID         string `json:"id" yaml:"id"`
	Given      string `json:"given,omitempty" yaml:"given,omitempty"`
	Surname    string `json:"surname,omitempty" yaml:"surname,omitempty"`
	Sex        string `json:"sex,omitempty" yaml:"sex,omitempty"`
	BirthDate  string `json:"birth_date,omitempty" yaml:"birth_date,omitempty"`
	BirthPlace string `json:"birth_place,omitempty" yaml:"birth_place,omitempty"`
	DeathDate  string `json:"death_date,omitempty" yaml:"death_date,omitempty"`
	DeathPlace string `json:"death_place,omitempty" yaml:"death_place,omitempty"`
	UID        string `json:"uid,omitempty" yaml:"uid,omitempty"`
}

// Stats counts the rows written by Load.
type Stats struct {
	Individuals int `json:"individuals" yaml:"individuals"`
	Families    int `json:"families" yaml:"families"`
	Children    int `json:"children" yaml:"children"`
}

// Store is an open index database.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens or creates the index at path and ensures the schema exists.
// Use ":memory:" for a throwaway index.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	if err := sqlite.Ping(ctx, db); err != nil {
		db.Close()
		return nil, errors.NewIO("open", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create index schema")
	}
	return &Store{db: db, logger: logging.GetLogger()}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load replaces the index contents with the individuals and families of f
// in a single transaction. The stored digest is File.Digest, so f gains a
// canonical HEAD and a TRLR if it lacked them.
func (s *Store) Load(ctx context.Context, f *gedcom.File) (Stats, error) {
	start := time.Now()
	var stats Stats

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return stats, errors.Wrap(err, "begin load")
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	for _, stmt := range []string{
		"DELETE FROM children",
		"DELETE FROM families",
		"DELETE FROM individuals",
		"DELETE FROM meta",
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return stats, errors.Wrap(err, "clear index")
		}
	}

	for _, ind := range f.Individuals() {
		if err := s.insertIndividual(ctx, tx, ind); err != nil {
			return stats, err
		}
		stats.Individuals++
	}
	for _, fam := range f.Families() {
		n, err := insertFamily(ctx, tx, fam)
		if err != nil {
			return stats, err
		}
		stats.Families++
		stats.Children += n
	}

	digest, err := f.Digest()
	if err != nil {
		return stats, err
	}
	for key, value := range map[string]string{
		"schema_version": schemaVersion,
		"digest":         digest,
		"loaded_at":      time.Now().UTC().Format(time.RFC3339),
	} {
		if _, err := tx.ExecContext(ctx, "INSERT INTO meta (key, value) VALUES (?, ?)", key, value); err != nil {
			return stats, errors.Wrap(err, "write meta")
		}
	}

	if err := tx.Commit(); err != nil {
		return stats, errors.Wrap(err, "commit load")
	}
	s.logger.Debug("index_loaded",
		"individuals", stats.Individuals,
		"families", stats.Families,
		"children", stats.Children,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return stats, nil
}

func (s *Store) insertIndividual(ctx context.Context, tx *sql.Tx, ind *gedcom.Individual) error {
	p := Person{ID: ind.ID(), UID: ind.UID()}
	if name, err := ind.Name(); err == nil {
		p.Given, p.Surname = name.Given, name.Surname
	} else if !errors.Is(err, errors.ErrMissingChild) {
		s.logger.Warn("unindexable name", "individual", ind.ID(), "error", err)
	}
	p.Sex, _ = ind.Sex()
	if birth, err := ind.Birth(); err == nil {
		p.BirthDate, _ = birth.Date()
		p.BirthPlace, _ = birth.Place()
	}
	if death, err := ind.Death(); err == nil {
		p.DeathDate, _ = death.Date()
		p.DeathPlace, _ = death.Place()
	}
	var famc string
	if rec, err := ind.First("FAMC"); err == nil {
		famc = rec.Value
	}

	_, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO individuals
		(id, given, surname, sex, birth_date, birth_place, death_date, death_place, uid, famc)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Given, p.Surname, p.Sex, p.BirthDate, p.BirthPlace, p.DeathDate, p.DeathPlace, p.UID, famc)
	return errors.Wrapf(err, "index individual %s", p.ID)
}

func insertFamily(ctx context.Context, tx *sql.Tx, fam *gedcom.Family) (int, error) {
	var husband, wife, date, place string
	if h, err := fam.Husband(); err == nil {
		husband = h.Value
	}
	if w, err := fam.Wife(); err == nil {
		wife = w.Value
	}
	if m, err := fam.Marriage(); err == nil {
		date, _ = m.Date()
		place, _ = m.Place()
	}

	// A duplicate family id replaces the earlier row and its children.
	if _, err := tx.ExecContext(ctx, "DELETE FROM children WHERE family_id = ?", fam.ID()); err != nil {
		return 0, errors.Wrapf(err, "index family %s", fam.ID())
	}
	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO families
		(id, husband, wife, marriage_date, marriage_place) VALUES (?, ?, ?, ?, ?)`,
		fam.ID(), husband, wife, date, place); err != nil {
		return 0, errors.Wrapf(err, "index family %s", fam.ID())
	}

	children := fam.Children()
	for i, c := range children {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO children (family_id, position, individual_id) VALUES (?, ?, ?)",
			fam.ID(), i, c.Value); err != nil {
			return 0, errors.Wrapf(err, "index family %s", fam.ID())
		}
	}
	return len(children), nil
}

const personColumns = "id, given, surname, sex, birth_date, birth_place, death_date, death_place, uid"

func scanPeople(rows *sql.Rows) ([]Person, error) {
	defer rows.Close()
	var out []Person
	for rows.Next() {
		var p Person
		if err := rows.Scan(&p.ID, &p.Given, &p.Surname, &p.Sex,
			&p.BirthDate, &p.BirthPlace, &p.DeathDate, &p.DeathPlace, &p.UID); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Get returns the individual with the given pointer.
func (s *Store) Get(ctx context.Context, id string) (Person, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+personColumns+" FROM individuals WHERE id = ?", id)
	if err != nil {
		return Person{}, errors.Wrap(err, "get individual")
	}
	people, err := scanPeople(rows)
	if err != nil {
		return Person{}, errors.Wrap(err, "get individual")
	}
	if len(people) == 0 {
		return Person{}, errors.NewNotFound("individual", id)
	}
	return people[0], nil
}

// FindBySurname returns the individuals whose surname matches, ignoring
// case, ordered by given name and id.
func (s *Store) FindBySurname(ctx context.Context, surname string) ([]Person, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+personColumns+" FROM individuals WHERE surname = ? COLLATE NOCASE ORDER BY given, id",
		surname)
	if err != nil {
		return nil, errors.Wrap(err, "find by surname")
	}
	people, err := scanPeople(rows)
	return people, errors.Wrap(err, "find by surname")
}

// ChildrenOf returns the children of a family in CHIL order. Children whose
// pointer has no indexed individual are returned with only ID set.
func (s *Store) ChildrenOf(ctx context.Context, familyID string) ([]Person, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT count(*) FROM families WHERE id = ?", familyID).Scan(&exists)
	if err != nil {
		return nil, errors.Wrap(err, "children of")
	}
	if exists == 0 {
		return nil, errors.NewNotFound("family", familyID)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT c.individual_id,
			coalesce(i.given, ''), coalesce(i.surname, ''), coalesce(i.sex, ''),
			coalesce(i.birth_date, ''), coalesce(i.birth_place, ''),
			coalesce(i.death_date, ''), coalesce(i.death_place, ''), coalesce(i.uid, '')
		FROM children c LEFT JOIN individuals i ON i.id = c.individual_id
		WHERE c.family_id = ? ORDER BY c.position`, familyID)
	if err != nil {
		return nil, errors.Wrap(err, "children of")
	}
	people, err := scanPeople(rows)
	return people, errors.Wrap(err, "children of")
}

// ParentsOf returns the husband and wife of the family named by the
// individual's first FAMC, husband first. Either may be missing.
func (s *Store) ParentsOf(ctx context.Context, id string) ([]Person, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT `+prefixed("p")+`
		FROM individuals c
		JOIN families f ON f.id = c.famc
		JOIN individuals p ON p.id IN (f.husband, f.wife)
		WHERE c.id = ?
		ORDER BY p.id = f.wife`, id)
	if err != nil {
		return nil, errors.Wrap(err, "parents of")
	}
	people, err := scanPeople(rows)
	return people, errors.Wrap(err, "parents of")
}

func prefixed(alias string) string {
	cols := strings.Split(personColumns, ", ")
	for i, c := range cols {
		cols[i] = alias + "." + c
	}
	return strings.Join(cols, ", ")
}

// Meta returns the value stored under key by the last Load, such as
// "digest" or "loaded_at".
func (s *Store) Meta(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM meta WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", errors.NewNotFound("meta", key)
	}
	return value, errors.Wrap(err, "read meta")
}
